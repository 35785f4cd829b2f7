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
	importRecordsTable = "import_records"
)

type ImportRecordRepository interface {
	CreateImportRecord(ctx context.Context, record *domain.ImportRecord) error
	ListImportRecords(ctx context.Context, filter domain.ImportRecordFilter) ([]*domain.ImportRecord, int, error)
}

type importRecordRepository struct {
	conn postgres.Queryer
}

func NewImportRecordRepository(conn postgres.Queryer) ImportRecordRepository {
	return &importRecordRepository{
		conn: conn,
	}
}

func (r *importRecordRepository) CreateImportRecord(ctx context.Context, record *domain.ImportRecord) error {
	now := time.Now()

	query, args, err := squirrel.
		Insert(importRecordsTable).
		Columns("type", "file_name", "batch_no", "total_rows", "success_rows", "failed_rows", "status", "error_log", "created_by", "created_at").
		Values(record.Type, record.FileName, record.BatchNo, record.TotalRows, record.SuccessRows, record.FailedRows, record.Status, record.ErrorLog, record.CreatedBy, now).
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

func (r *importRecordRepository) ListImportRecords(ctx context.Context, filter domain.ImportRecordFilter) ([]*domain.ImportRecord, int, error) {
	var preds []squirrel.Sqlizer
	if filter.Type != "" {
		preds = append(preds, squirrel.Eq{"i.type": filter.Type})
	}

	countSQL, countArgs, err := where(
		squirrel.Select("COUNT(*)").From(importRecordsTable+" i").PlaceholderFormat(squirrel.Dollar),
		preds,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar importações: %w", err)
	}

	listSQL, listArgs, err := where(
		squirrel.Select(
			"i.id", "i.type", "i.file_name", "i.batch_no", "i.total_rows", "i.success_rows", "i.failed_rows",
			"i.status", "i.error_log", "i.created_by", "u.name", "i.created_at",
		).
			From(importRecordsTable+" i").
			LeftJoin("users u ON u.id = i.created_by").
			PlaceholderFormat(squirrel.Dollar),
		preds,
	).
		OrderBy("i.created_at DESC").
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

	records := make([]*domain.ImportRecord, 0)
	for rows.Next() {
		var rec domain.ImportRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Type,
			&rec.FileName,
			&rec.BatchNo,
			&rec.TotalRows,
			&rec.SuccessRows,
			&rec.FailedRows,
			&rec.Status,
			&rec.ErrorLog,
			&rec.CreatedBy,
			&rec.CreatorName,
			&rec.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("erro ao deserializar a importação: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return records, total, nil
}
