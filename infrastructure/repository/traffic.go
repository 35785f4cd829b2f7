package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/content-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/content-ops-api/internal/domain"
)

const (
	trafficTable = "traffic_data"
)

var trafficColumns = []string{
	"t.id", "t.account_id", "t.content_title", "t.content_type", "t.content_url", "t.publish_date", "t.publish_time",
	"t.views", "t.likes", "t.comments", "t.shares", "t.saves", "t.recommends", "t.completion_rate", "t.import_batch", "t.created_at",
	"a.account_name", "a.platform",
}

type TrafficRepository interface {
	CreateTrafficRecord(ctx context.Context, record *domain.TrafficRecord) error
	ListTraffic(ctx context.Context, filter domain.TrafficFilter) ([]*domain.TrafficRecordResponse, int, error)
	GetDashboard(ctx context.Context, filter domain.TrafficFilter) (*domain.TrafficDashboard, error)
	ListTrendRows(ctx context.Context, filter domain.TrafficFilter) ([]*domain.TrafficRecord, error)
}

type trafficRepository struct {
	conn postgres.Queryer
}

func NewTrafficRepository(conn postgres.Queryer) TrafficRepository {
	return &trafficRepository{
		conn: conn,
	}
}

func fromTraffic(columns ...string) squirrel.SelectBuilder {
	return squirrel.
		Select(columns...).
		From(trafficTable + " t").
		Join("accounts a ON a.id = t.account_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *trafficRepository) CreateTrafficRecord(ctx context.Context, record *domain.TrafficRecord) error {
	now := time.Now()

	query, args, err := squirrel.
		Insert(trafficTable).
		Columns(
			"account_id", "content_title", "content_type", "content_url", "publish_date", "publish_time",
			"views", "likes", "comments", "shares", "saves", "recommends", "completion_rate", "import_batch", "created_at",
		).
		Values(
			record.AccountID, record.ContentTitle, record.ContentType, record.ContentURL, record.PublishDate, record.PublishTime,
			record.Views, record.Likes, record.Comments, record.Shares, record.Saves, record.Recommends, record.CompletionRate, record.ImportBatch, now,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&record.ID); err != nil {
		return wrapExecError(err)
	}

	record.CreatedAt = now

	return nil
}

func (r *trafficRepository) ListTraffic(ctx context.Context, filter domain.TrafficFilter) ([]*domain.TrafficRecordResponse, int, error) {
	preds := trafficPredicates(filter)

	countSQL, countArgs, err := where(fromTraffic("COUNT(*)"), preds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar registros de tráfego: %w", err)
	}

	listSQL, listArgs, err := where(fromTraffic(trafficColumns...), preds).
		OrderBy("t.publish_date DESC NULLS LAST", "t.id DESC").
		Limit(filter.Page.Limit()).
		Offset(filter.Page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.TrafficRecordResponse, 0)
	for rows.Next() {
		var rec domain.TrafficRecordResponse
		if err := rows.Scan(
			&rec.ID,
			&rec.AccountID,
			&rec.ContentTitle,
			&rec.ContentType,
			&rec.ContentURL,
			&rec.PublishDate,
			&rec.PublishTime,
			&rec.Views,
			&rec.Likes,
			&rec.Comments,
			&rec.Shares,
			&rec.Saves,
			&rec.Recommends,
			&rec.CompletionRate,
			&rec.ImportBatch,
			&rec.CreatedAt,
			&rec.AccountName,
			&rec.Platform,
		); err != nil {
			return nil, 0, fmt.Errorf("erro ao deserializar o registro: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return records, total, nil
}

func (r *trafficRepository) GetDashboard(ctx context.Context, filter domain.TrafficFilter) (*domain.TrafficDashboard, error) {
	query, args, err := where(fromTraffic(
		"COALESCE(SUM(t.views), 0)",
		"COALESCE(SUM(t.likes), 0)",
		"COALESCE(SUM(t.comments), 0)",
		"COALESCE(SUM(t.shares), 0)",
		"COALESCE(SUM(t.saves), 0)",
		"COALESCE(AVG(t.completion_rate), 0)",
		"COUNT(*)",
	), trafficPredicates(filter)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var d domain.TrafficDashboard
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&d.TotalViews,
		&d.TotalLikes,
		&d.TotalComments,
		&d.TotalShares,
		&d.TotalSaves,
		&d.AvgCompletionRate,
		&d.ContentCount,
	); err != nil {
		return nil, fmt.Errorf("erro ao agregar tráfego: %w", err)
	}

	return &d, nil
}

// ListTrendRows devolve apenas as colunas usadas no agrupamento diário
func (r *trafficRepository) ListTrendRows(ctx context.Context, filter domain.TrafficFilter) ([]*domain.TrafficRecord, error) {
	query, args, err := where(
		fromTraffic("t.publish_date", "t.views", "t.likes", "t.comments", "t.shares"),
		trafficPredicates(filter),
	).
		Where(squirrel.NotEq{"t.publish_date": nil}).
		OrderBy("t.publish_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.TrafficRecord, 0)
	for rows.Next() {
		var rec domain.TrafficRecord
		if err := rows.Scan(&rec.PublishDate, &rec.Views, &rec.Likes, &rec.Comments, &rec.Shares); err != nil {
			return nil, fmt.Errorf("erro ao deserializar o registro: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return records, nil
}
