package main

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/weienlee/wset/internal/router"
	"github.com/weienlee/wset/internal/validators"
	"github.com/weienlee/wset/pkg/config"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e, logger)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	if err := router.SetupRoutes(e, cfg, db.Postgres, mongoDB, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to set up routes")
	}

	// Start server
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
