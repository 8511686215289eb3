package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"moderation-backend/internal/classifier"
	"moderation-backend/internal/config"
	"moderation-backend/internal/repository"
	"moderation-backend/internal/server"
	"moderation-backend/internal/service"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Moderation store backend, bound once at startup
	var moderationRepo repository.ModerationRepository
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := repository.NewPostgresDB(cfg.Storage.PostgresURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		// Run migrations
		repository.MigrateDB(db, logger)

		moderationRepo = repository.NewPostgresModerationRepository(db, logger)
	case "dynamodb":
		client := repository.NewDynamoDBClient(cfg.Storage.Region, cfg.Storage.AccessKeyID, cfg.Storage.SecretAccessKey)
		moderationRepo = repository.NewDynamoModerationRepository(client, cfg.Storage.Table, logger)
		logger.Info("Using DynamoDB moderation store", zap.String("table", cfg.Storage.Table))
	default:
		moderationRepo = repository.NewMemoryModerationRepository()
		logger.Info("Using in-memory moderation store")
	}

	// Classifier gateway, live or local, chosen once for the process lifetime
	var gateway classifier.Gateway
	if cfg.MockMode() {
		gateway = classifier.NewLocalGateway()
		logger.Info("Classifier running in local mock mode")
	} else {
		gateway = classifier.NewOpenAIGateway(
			cfg.Classifier.APIKey,
			cfg.Classifier.BaseURL,
			cfg.Classifier.Model,
			cfg.Classifier.Temperature,
			time.Duration(cfg.Classifier.TimeoutSeconds)*time.Second,
			logger,
		)
		logger.Info("Classifier running in live mode", zap.String("model", cfg.Classifier.Model))
	}

	// Initialize moderation pipeline
	moderationService := service.NewModerationService(moderationRepo, gateway, logger)

	// Initialize and run the server
	log := logrus.New()
	srv := server.NewServer(cfg, moderationService, log, logger)
	srv.Run(cfg.Server.Port)
}
