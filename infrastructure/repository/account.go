package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/content-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/content-ops-api/internal/domain"
)

const (
	accountsTable = "accounts a"
)

var accountColumns = []string{
	"a.id", "a.project_id", "p.name", "a.platform", "a.account_name", "a.external_account_id",
	"a.followers", "a.operator_id", "u.name", "a.remark", "a.status", "a.created_at", "a.updated_at",
}

type AccountRepository interface {
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
	FindByPlatformAndName(ctx context.Context, platform domain.Platform, accountName string) (*domain.Account, error)
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, int, error)
	CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.UpdateAccountRequest) error
	DeleteAccount(ctx context.Context, accountID int64) error
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn postgres.Queryer) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) selectAccounts() squirrel.SelectBuilder {
	return squirrel.
		Select(accountColumns...).
		From(accountsTable).
		LeftJoin("projects p ON p.id = a.project_id").
		LeftJoin("users u ON u.id = a.operator_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *accountRepository) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	return r.getAccount(ctx, squirrel.Eq{"a.id": accountID})
}

// FindByPlatformAndName busca a conta pela combinação exata (plataforma, nome).
// Não existe restrição de unicidade nessa combinação; em caso de duplicatas a mais antiga vence.
func (r *accountRepository) FindByPlatformAndName(ctx context.Context, platform domain.Platform, accountName string) (*domain.Account, error) {
	return r.getAccount(ctx, squirrel.Eq{"a.platform": string(platform), "a.account_name": accountName})
}

func (r *accountRepository) getAccount(ctx context.Context, whereClause squirrel.Sqlizer) (*domain.Account, error) {
	accountsSQL, accountsArgs, err := r.selectAccounts().
		Where(whereClause).
		OrderBy("a.id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	acc, err := scanAccount(r.conn.QueryRowContext(ctx, accountsSQL, accountsArgs...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	acc := &domain.Account{}

	if err := row.Scan(
		&acc.ID,
		&acc.ProjectID,
		&acc.ProjectName,
		&acc.Platform,
		&acc.AccountName,
		&acc.ExternalAccountID,
		&acc.Followers,
		&acc.OperatorID,
		&acc.OperatorName,
		&acc.Remark,
		&acc.Status,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return acc, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, int, error) {
	preds := accountPredicates(filter)

	countSQL, countArgs, err := where(
		squirrel.Select("COUNT(*)").From(accountsTable).PlaceholderFormat(squirrel.Dollar),
		preds,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar contas: %w", err)
	}

	accountsSQL, accountsArgs, err := where(r.selectAccounts(), preds).
		OrderBy("a.created_at DESC").
		Limit(filter.Page.Limit()).
		Offset(filter.Page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, accountsSQL, accountsArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, total, nil
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	now := time.Now()

	query, args, err := squirrel.
		Insert("accounts").
		Columns("project_id", "platform", "account_name", "external_account_id", "followers", "operator_id", "remark", "status", "created_at", "updated_at").
		Values(account.ProjectID, string(account.Platform), account.AccountName, account.ExternalAccountID, account.Followers, account.OperatorID, account.Remark, account.Status, now, now).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&account.ID); err != nil {
		return nil, wrapExecError(err)
	}

	account.CreatedAt = now
	account.UpdatedAt = now

	return account, nil
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account *domain.UpdateAccountRequest) error {
	if account.ID == 0 {
		return errors.New("ID is required")
	}

	queryBuilder := squirrel.
		Update("accounts").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": account.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if account.ProjectID != nil {
		queryBuilder = queryBuilder.Set("project_id", *account.ProjectID)
	}

	if account.Platform != nil {
		queryBuilder = queryBuilder.Set("platform", string(*account.Platform))
	}

	if account.AccountName != nil {
		queryBuilder = queryBuilder.Set("account_name", *account.AccountName)
	}

	if account.ExternalAccountID != nil {
		queryBuilder = queryBuilder.Set("external_account_id", *account.ExternalAccountID)
	}

	if account.Followers != nil {
		queryBuilder = queryBuilder.Set("followers", *account.Followers)
	}

	if account.OperatorID != nil {
		queryBuilder = queryBuilder.Set("operator_id", *account.OperatorID)
	}

	if account.Remark != nil {
		queryBuilder = queryBuilder.Set("remark", *account.Remark)
	}

	if account.Status != nil {
		queryBuilder = queryBuilder.Set("status", *account.Status)
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return wrapExecError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *accountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	sqlQuery, args, err := squirrel.
		Delete("accounts").
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return wrapExecError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
