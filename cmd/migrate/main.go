package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"prompthub.backend/internal/config"
	"prompthub.backend/internal/infrastructure/models"
	"prompthub.backend/pkg/logger"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	logger.Init(cfg.Server.Env)

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return err
	}

	logger.GetLogger().Info("running schema migration",
		zap.String("database", cfg.Database.DBName),
	)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Membership{},
		&models.Category{},
		&models.Project{},
		&models.Prompt{},
		&models.PromptVersion{},
	); err != nil {
		return err
	}

	logger.GetLogger().Info("schema migration complete")
	return nil
}
