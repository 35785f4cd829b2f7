package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/content-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/content-ops-api/internal/domain"
)

var budgetColumns = []string{
	"b.id", "b.project_id", "p.name", "b.category", "b.name", "b.planned_amount", "b.used_amount",
	"b.start_date", "b.end_date", "b.alert_rate", "b.status", "b.created_at", "b.updated_at",
}

type BudgetRepository interface {
	GetBudgetByID(ctx context.Context, budgetID int64) (*domain.Budget, error)
	ListBudgets(ctx context.Context, filter domain.BudgetFilter) ([]*domain.Budget, int, error)
	ListActiveBudgets(ctx context.Context) ([]*domain.Budget, error)
	ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]*domain.Expense, error)
}

type budgetRepository struct {
	conn postgres.Queryer
}

func NewBudgetRepository(conn postgres.Queryer) BudgetRepository {
	return &budgetRepository{
		conn: conn,
	}
}

func selectBudgets() squirrel.SelectBuilder {
	return squirrel.
		Select(budgetColumns...).
		From("budgets b").
		LeftJoin("projects p ON p.id = b.project_id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanBudget(row rowScanner) (*domain.Budget, error) {
	var b domain.Budget
	if err := row.Scan(
		&b.ID,
		&b.ProjectID,
		&b.ProjectName,
		&b.Category,
		&b.Name,
		&b.PlannedAmount,
		&b.UsedAmount,
		&b.StartDate,
		&b.EndDate,
		&b.AlertRate,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *budgetRepository) GetBudgetByID(ctx context.Context, budgetID int64) (*domain.Budget, error) {
	query, args, err := selectBudgets().Where(squirrel.Eq{"b.id": budgetID}).ToSql()
	if err != nil {
		return nil, err
	}

	b, err := scanBudget(r.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar orçamento: %w", err)
	}

	return b, nil
}

func (r *budgetRepository) ListBudgets(ctx context.Context, filter domain.BudgetFilter) ([]*domain.Budget, int, error) {
	preds := budgetPredicates(filter)

	countSQL, countArgs, err := where(
		squirrel.Select("COUNT(*)").From("budgets b").PlaceholderFormat(squirrel.Dollar),
		preds,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar orçamentos: %w", err)
	}

	query, args, err := where(selectBudgets(), preds).
		OrderBy("b.created_at DESC").
		Limit(filter.Page.Limit()).
		Offset(filter.Page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	budgets, err := r.queryBudgets(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	return budgets, total, nil
}

// ListActiveBudgets devolve todos os orçamentos com status ativo, sem paginação
func (r *budgetRepository) ListActiveBudgets(ctx context.Context) ([]*domain.Budget, error) {
	query, args, err := selectBudgets().
		Where(squirrel.Eq{"b.status": domain.BudgetStatusActive}).
		OrderBy("b.end_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryBudgets(ctx, query, args)
}

func (r *budgetRepository) queryBudgets(ctx context.Context, query string, args []any) ([]*domain.Budget, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	budgets := make([]*domain.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar o orçamento: %w", err)
		}
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return budgets, nil
}

func (r *budgetRepository) ListExpenses(ctx context.Context, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	query, args, err := where(
		squirrel.
			Select("e.id", "e.project_id", "e.category", "e.amount", "e.description", "e.status", "e.expense_date", "e.created_at").
			From("expenses e").
			PlaceholderFormat(squirrel.Dollar),
		expensePredicates(filter),
	).
		OrderBy("e.expense_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Category, &e.Amount, &e.Description, &e.Status, &e.ExpenseDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a despesa: %w", err)
		}
		expenses = append(expenses, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return expenses, nil
}
