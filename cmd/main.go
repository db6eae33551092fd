package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/SupermaxiMarket/pme-freelance-assistant/config"
	"github.com/SupermaxiMarket/pme-freelance-assistant/db"
	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/domain"
	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/handler"
	repo "github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/repository/postgres"
	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/auth/service"
	"github.com/SupermaxiMarket/pme-freelance-assistant/internal/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := db.Migrate(cfg.DBURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	dbPool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)

	var m domain.Mailer
	if cfg.SMTP.Host != "" {
		m = mailer.NewSMTPMailer(cfg.SMTP, logger)
	} else {
		m = mailer.NewLogMailer(logger)
	}

	userService := service.NewUserService(userRepo, tokenService, m, cfg, logger)
	authHandler := handler.NewAuthHandler(userService, tokenService, logger)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	logger.Info("starting auth server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
