package insighting

import (
	"context"

	"github.com/vfg2006/content-ops-api/internal/domain"
)

// TrafficInsighter expõe as consultas de tráfego usadas pelo painel
type TrafficInsighter interface {
	// ListTraffic lista os registros de tráfego paginados, mais recentes primeiro
	ListTraffic(ctx context.Context, filter domain.TrafficFilter) (*domain.Paginated[*domain.TrafficRecordResponse], error)

	// GetDashboard soma as métricas dos registros filtrados
	GetDashboard(ctx context.Context, filter domain.TrafficFilter) (*domain.TrafficDashboard, error)

	// GetTrend agrupa as métricas por dia de publicação
	GetTrend(ctx context.Context, filter domain.TrafficFilter) ([]*domain.TrafficTrendPoint, error)
}

// ImportHistory expõe o histórico de lotes de importação
type ImportHistory interface {
	ListImportRecords(ctx context.Context, page domain.PageRequest) (*domain.Paginated[*domain.ImportRecord], error)
}

type Insighter interface {
	TrafficInsighter
	ImportHistory
}
