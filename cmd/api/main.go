package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/content-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/content-ops-api/infrastructure/migration"
	"github.com/vfg2006/content-ops-api/infrastructure/repository"
	"github.com/vfg2006/content-ops-api/internal/api"
	"github.com/vfg2006/content-ops-api/internal/config"
	"github.com/vfg2006/content-ops-api/internal/usecases/account"
	"github.com/vfg2006/content-ops-api/internal/usecases/authenticating"
	"github.com/vfg2006/content-ops-api/internal/usecases/budgeting"
	"github.com/vfg2006/content-ops-api/internal/usecases/importing"
	"github.com/vfg2006/content-ops-api/internal/usecases/insighting"
	"github.com/vfg2006/content-ops-api/pkg/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "aplica o schema antes de subir o servidor")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define formato e nível de log com base na configuração
	log.Setup(cfg.App.LogLevel, cfg.App.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if *migrate || cfg.App.AutoMigrate {
		if err := migration.Migrate(ctx, pgConn, cfg.App.AdminPassword); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migração")
		}
	}

	accountRepo := repository.NewAccountRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	trafficRepo := repository.NewTrafficRepository(pgConn)
	importRepo := repository.NewImportRecordRepository(pgConn)
	budgetRepo := repository.NewBudgetRepository(pgConn)

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticating.NewService(userRepo, cfg),
		Accounts:      account.NewService(accountRepo),
		Insights:      insighting.NewService(trafficRepo, importRepo),
		Importer:      importing.NewService(accountRepo, trafficRepo, importRepo),
		Budgets:       budgeting.NewService(budgetRepo),
		DB:            pgConn,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
