package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/diillson/retail-admin-api/internal/adapter/database"
	"github.com/diillson/retail-admin-api/internal/app"
	"github.com/diillson/retail-admin-api/pkg/config"
	"github.com/diillson/retail-admin-api/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	var (
		action       string
		name         string
		configPath   string
		driver       string
		dsn          string
		migrationDir string
	)

	flag.StringVar(&action, "action", "migrate", "Ação (migrate, status, create)")
	flag.StringVar(&name, "name", "", "Nome da migração (apenas para action=create)")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.StringVar(&driver, "driver", "", "Sobrescreve o driver configurado (sqlite, mysql, postgres)")
	flag.StringVar(&dsn, "dsn", "", "Sobrescreve o DSN configurado")
	flag.StringVar(&migrationDir, "dir", "", "Sobrescreve o diretório de migrações")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbConfig := app.DatabaseConfig(cfg.Database)
	if driver != "" {
		dbConfig.Driver = driver
	}
	if dsn != "" {
		dbConfig.DSN = dsn
	}
	if migrationDir != "" {
		dbConfig.MigrationDir = migrationDir
	}
	// A ação decide o que aplicar
	dbConfig.SkipMigrations = true

	ctx := context.Background()

	switch action {
	case "migrate":
		db := open(ctx, dbConfig, logger)
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Fatal("Falha ao aplicar migrações", zap.Error(err))
		}
		logger.Info("Migrações aplicadas com sucesso")

	case "status":
		db := open(ctx, dbConfig, logger)
		defer db.Close()

		if err := db.Migrations().Initialize(ctx); err != nil {
			logger.Fatal("Falha ao preparar tabela de migrações", zap.Error(err))
		}
		applied, err := db.Migrations().Applied(ctx)
		if err != nil {
			logger.Fatal("Falha ao listar migrações", zap.Error(err))
		}
		for _, m := range applied {
			fmt.Printf("%s\t%s\n", m.AppliedAt.Format("2006-01-02 15:04:05"), m.Name)
		}

	case "create":
		if name == "" {
			logger.Fatal("Nome da migração é obrigatório para action=create")
		}

		dir := dbConfig.MigrationDir
		if dir == "" {
			dir = "./migrations"
		}
		manager := database.NewMigrationManager(nil, logger, os.DirFS(dir), dir)
		path, err := manager.CreateMigration(name)
		if err != nil {
			logger.Fatal("Falha ao criar migração", zap.Error(err))
		}

		logger.Info("Migração criada", zap.String("path", path))

	default:
		logger.Fatal("Ação desconhecida", zap.String("action", action))
	}
}

func open(ctx context.Context, cfg database.Config, logger *zap.Logger) *database.Database {
	db, err := database.NewDatabase(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Falha ao inicializar banco de dados", zap.Error(err))
	}
	return db
}
