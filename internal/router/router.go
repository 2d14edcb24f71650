package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/weienlee/wset/internal/handlers"
	"github.com/weienlee/wset/internal/middleware"
	"github.com/weienlee/wset/internal/models"
	"github.com/weienlee/wset/internal/repositories"
	"github.com/weienlee/wset/internal/store"
	"github.com/weienlee/wset/pkg/config"
)

// SetupMiddleware configures global echo middleware.
func SetupMiddleware(e *echo.Echo, logger zerolog.Logger) {
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
}

// SetupRoutes wires repositories and handlers onto the echo instance.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mongoDB *mongo.Database, logger zerolog.Logger) error {
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		return err
	}

	sessions := middleware.NewSessionManager(cfg.SessionSecret, cfg.Env == "production")

	storyStore := store.NewMongoStoryStore(mongoDB)
	commentStore := store.NewMongoCommentStore(mongoDB)

	userRepo := repositories.NewPostgresUserRepository(pgdb)
	storyRepo := repositories.NewStoryRepository(storyStore, commentStore)
	commentRepo := repositories.NewCommentRepository(commentStore)

	e.GET("/health", handlers.HealthCheck)

	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, sessions)
	authHandler.RegisterAuthRoutes(authGroup)

	api := e.Group("/api")

	storyHandler := handlers.NewStoryHandler(storyRepo, sessions)
	storyHandler.RegisterStoryRoutes(api, cfg.AdminUsers)

	commentHandler := handlers.NewCommentHandler(commentRepo, storyRepo, sessions)
	commentHandler.RegisterCommentRoutes(api)

	logger.Info().Msg("routes configured")
	return nil
}
