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
	usersTable = "users"
)

var userColumns = []string{
	"id", "username", "password_hash", "name", "phone", "email", "role", "avatar", "status", "created_at", "updated_at",
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.UpdateUserRequest) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	ListUsers(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int, error)
}

type userRepository struct {
	conn postgres.Queryer
}

func NewUserRepository(conn postgres.Queryer) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now()

	usersSQL, usersArgs, err := squirrel.
		Insert(usersTable).
		Columns("username", "password_hash", "name", "phone", "email", "role", "avatar", "status", "created_at", "updated_at").
		Values(user.Username, user.PasswordHash, user.Name, user.Phone, user.Email, string(user.Role), user.Avatar, user.Status, now, now).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	if err := r.conn.QueryRowContext(ctx, usersSQL, usersArgs...).Scan(&user.ID); err != nil {
		return nil, wrapExecError(err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.UpdateUserRequest) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": user.ID})

	if user.Name != nil {
		queryBuilder = queryBuilder.Set("name", *user.Name)
	}

	if user.Phone != nil {
		queryBuilder = queryBuilder.Set("phone", *user.Phone)
	}

	if user.Email != nil {
		queryBuilder = queryBuilder.Set("email", *user.Email)
	}

	if user.Role != nil {
		queryBuilder = queryBuilder.Set("role", string(*user.Role))
	}

	if user.Avatar != nil && *user.Avatar != "" {
		queryBuilder = queryBuilder.Set("avatar", *user.Avatar)
	}

	if user.Status != nil {
		queryBuilder = queryBuilder.Set("status", *user.Status)
	}

	usersSQL, usersArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, usersSQL, usersArgs...)
	if err != nil {
		return wrapExecError(err)
	}

	if rowsAffected, err := result.RowsAffected(); err == nil && rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	usersSQL, usersArgs, err := squirrel.
		Update(usersTable).
		Set("password_hash", passwordHash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, usersSQL, usersArgs...); err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"username": username})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": userID})
}

func (r *userRepository) getUser(ctx context.Context, whereClause squirrel.Sqlizer) (*domain.User, error) {
	usersSQL, usersArgs, err := squirrel.
		Select(userColumns...).
		From(usersTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	user, err := scanUser(r.conn.QueryRowContext(ctx, usersSQL, usersArgs...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Name,
		&user.Phone,
		&user.Email,
		&user.Role,
		&user.Avatar,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListUsers(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int, error) {
	preds := userPredicates(filter)

	countSQL, countArgs, err := where(
		squirrel.Select("COUNT(*)").From(usersTable).PlaceholderFormat(squirrel.Dollar),
		preds,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar usuários: %w", err)
	}

	usersSQL, usersArgs, err := where(
		squirrel.Select(userColumns...).From(usersTable).PlaceholderFormat(squirrel.Dollar),
		preds,
	).
		OrderBy("created_at DESC").
		Limit(filter.Page.Limit()).
		Offset(filter.Page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, usersSQL, usersArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao consultar usuários: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro durante iteração: %w", err)
	}

	return users, total, nil
}
