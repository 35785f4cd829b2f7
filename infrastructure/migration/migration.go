package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/content-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/content-ops-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminUsername        = "admin"
	generatedPasswordLen = 12
	passwordCharacters   = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

// schema cria as tabelas usadas pelos repositórios; idempotente
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(64) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		name          VARCHAR(128) NOT NULL,
		phone         VARCHAR(32),
		email         VARCHAR(255),
		role          VARCHAR(16) NOT NULL DEFAULT 'staff',
		avatar        TEXT,
		status        SMALLINT NOT NULL DEFAULT 1,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id         BIGSERIAL PRIMARY KEY,
		name       VARCHAR(128) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id                  BIGSERIAL PRIMARY KEY,
		project_id          BIGINT REFERENCES projects(id) ON DELETE SET NULL,
		platform            VARCHAR(16) NOT NULL,
		account_name        VARCHAR(255) NOT NULL,
		external_account_id VARCHAR(128),
		followers           INTEGER NOT NULL DEFAULT 0,
		operator_id         BIGINT REFERENCES users(id) ON DELETE SET NULL,
		remark              TEXT,
		status              SMALLINT NOT NULL DEFAULT 1,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// Índice não único: importações concorrentes podem criar a mesma conta duas vezes
	`CREATE INDEX IF NOT EXISTS idx_accounts_platform_name ON accounts (platform, account_name)`,
	`CREATE TABLE IF NOT EXISTS traffic_data (
		id              BIGSERIAL PRIMARY KEY,
		account_id      BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		content_title   TEXT,
		content_type    VARCHAR(64),
		content_url     TEXT,
		publish_date    DATE,
		publish_time    TIMESTAMPTZ,
		views           INTEGER NOT NULL DEFAULT 0,
		likes           INTEGER NOT NULL DEFAULT 0,
		comments        INTEGER NOT NULL DEFAULT 0,
		shares          INTEGER NOT NULL DEFAULT 0,
		saves           INTEGER NOT NULL DEFAULT 0,
		recommends      INTEGER,
		completion_rate NUMERIC(6,2),
		import_batch    VARCHAR(64),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_traffic_account_date ON traffic_data (account_id, publish_date)`,
	`CREATE TABLE IF NOT EXISTS import_records (
		id           BIGSERIAL PRIMARY KEY,
		type         VARCHAR(32) NOT NULL,
		file_name    VARCHAR(255) NOT NULL,
		batch_no     VARCHAR(64) NOT NULL,
		total_rows   INTEGER NOT NULL DEFAULT 0,
		success_rows INTEGER NOT NULL DEFAULT 0,
		failed_rows  INTEGER NOT NULL DEFAULT 0,
		status       VARCHAR(16) NOT NULL,
		error_log    TEXT,
		created_by   BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id             BIGSERIAL PRIMARY KEY,
		project_id     BIGINT REFERENCES projects(id) ON DELETE SET NULL,
		category       VARCHAR(32) NOT NULL,
		name           VARCHAR(128) NOT NULL,
		planned_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		used_amount    NUMERIC(14,2) NOT NULL DEFAULT 0,
		start_date     TIMESTAMPTZ NOT NULL,
		end_date       TIMESTAMPTZ NOT NULL,
		alert_rate     NUMERIC(5,2) NOT NULL DEFAULT 80,
		status         VARCHAR(16) NOT NULL DEFAULT 'active',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id           BIGSERIAL PRIMARY KEY,
		project_id   BIGINT REFERENCES projects(id) ON DELETE SET NULL,
		category     VARCHAR(32) NOT NULL,
		amount       NUMERIC(14,2) NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       VARCHAR(16) NOT NULL,
		expense_date TIMESTAMPTZ NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate aplica o schema e garante um administrador inicial.
// Quando adminPassword é vazio uma senha é gerada e registrada no log uma única vez.
func Migrate(ctx context.Context, conn postgres.Conn, adminPassword string) error {
	startTime := time.Now()
	logrus.Info("Iniciando migração do banco de dados...")

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("erro ao executar o comando %d do schema: %w", i+1, err)
			}
		}

		return seedAdmin(ctx, tx, adminPassword)
	})
	if err != nil {
		return err
	}

	logrus.Infof("Migração concluída em %v", time.Since(startTime))
	return nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, password string) error {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE username = $1`, adminUsername).Scan(&id)
	if err == nil {
		logrus.Info("Usuário administrador já existe, seed ignorado")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("erro ao verificar administrador: %w", err)
	}

	generated := password == ""
	if generated {
		if password, err = gonanoid.Generate(passwordCharacters, generatedPasswordLen); err != nil {
			return fmt.Errorf("erro ao gerar senha do administrador: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, name, role, status) VALUES ($1, $2, $3, $4, $5)`,
		adminUsername, string(hash), "Administrador", string(domain.RoleAdmin), domain.UserStatusActive,
	)
	if err != nil {
		return fmt.Errorf("erro ao criar administrador: %w", err)
	}

	if generated {
		logrus.Warnf("Administrador criado com senha gerada: %s (altere após o primeiro login)", password)
	} else {
		logrus.Info("Administrador criado com a senha configurada")
	}

	return nil
}
