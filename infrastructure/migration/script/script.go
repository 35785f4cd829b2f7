package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/vfg2006/content-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/content-ops-api/infrastructure/migration"
	"github.com/vfg2006/content-ops-api/internal/config"
)

func setupLogger() {
	// Configura o logger para incluir data, hora e arquivo
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func main() {
	adminPassword := flag.String("admin-password", "", "senha do administrador inicial (padrão ADMIN_PASSWORD, gerada quando ambos vazios)")
	flag.Parse()

	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()

	log.Println("Conexão com o banco de dados estabelecida com sucesso")

	if err := migration.Migrate(ctx, conn, resolveAdminPassword(*adminPassword, cfg.App)); err != nil {
		log.Fatalf("ERRO na migração: %v", err)
	}

	log.Println("Script de migração finalizado")
}

// resolveAdminPassword prioriza a flag e cai para ADMIN_PASSWORD
func resolveAdminPassword(flagValue string, app config.App) string {
	if flagValue != "" {
		return flagValue
	}
	return app.AdminPassword
}
