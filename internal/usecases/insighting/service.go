package insighting

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/content-ops-api/infrastructure/repository"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"github.com/vfg2006/content-ops-api/pkg/utils"
)

const trendDateLayout = "2006-01-02"

type Service struct {
	trafficRepository repository.TrafficRepository
	importRepository  repository.ImportRecordRepository
}

// NewService cria uma nova instância do serviço de insights de tráfego
func NewService(
	trafficRepo repository.TrafficRepository,
	importRepo repository.ImportRecordRepository,
) Insighter {
	return &Service{
		trafficRepository: trafficRepo,
		importRepository:  importRepo,
	}
}

func (s *Service) ListTraffic(ctx context.Context, filter domain.TrafficFilter) (*domain.Paginated[*domain.TrafficRecordResponse], error) {
	filter.Page = filter.Page.Normalize()

	records, total, err := s.trafficRepository.ListTraffic(ctx, filter)
	if err != nil {
		logrus.Errorf("Erro ao listar tráfego: %v", err)
		return nil, fmt.Errorf("erro ao listar tráfego: %w", err)
	}

	return domain.NewPaginated(records, filter.Page, total), nil
}

func (s *Service) GetDashboard(ctx context.Context, filter domain.TrafficFilter) (*domain.TrafficDashboard, error) {
	dashboard, err := s.trafficRepository.GetDashboard(ctx, filter)
	if err != nil {
		logrus.Errorf("Erro ao agregar tráfego: %v", err)
		return nil, fmt.Errorf("erro ao agregar tráfego: %w", err)
	}

	dashboard.AvgCompletionRate = utils.RoundWithTwoDecimalPlace(dashboard.AvgCompletionRate)

	return dashboard, nil
}

// GetTrend mantém a ordem cronológica devolvida pelo repositório.
// Registros sem data de publicação não entram na série.
func (s *Service) GetTrend(ctx context.Context, filter domain.TrafficFilter) ([]*domain.TrafficTrendPoint, error) {
	rows, err := s.trafficRepository.ListTrendRows(ctx, filter)
	if err != nil {
		logrus.Errorf("Erro ao buscar série de tráfego: %v", err)
		return nil, fmt.Errorf("erro ao buscar série de tráfego: %w", err)
	}

	points := make([]*domain.TrafficTrendPoint, 0)
	byDate := make(map[string]*domain.TrafficTrendPoint)

	for _, row := range rows {
		if row.PublishDate == nil {
			continue
		}

		date := row.PublishDate.Format(trendDateLayout)
		point, ok := byDate[date]
		if !ok {
			point = &domain.TrafficTrendPoint{Date: date}
			byDate[date] = point
			points = append(points, point)
		}

		point.Views += row.Views
		point.Likes += row.Likes
		point.Comments += row.Comments
		point.Shares += row.Shares
	}

	return points, nil
}

func (s *Service) ListImportRecords(ctx context.Context, page domain.PageRequest) (*domain.Paginated[*domain.ImportRecord], error) {
	page = page.Normalize()

	records, total, err := s.importRepository.ListImportRecords(ctx, domain.ImportRecordFilter{
		Type: domain.ImportTypeTraffic,
		Page: page,
	})
	if err != nil {
		logrus.Errorf("Erro ao listar importações: %v", err)
		return nil, fmt.Errorf("erro ao listar importações: %w", err)
	}

	return domain.NewPaginated(records, page, total), nil
}
