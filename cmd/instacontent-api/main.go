package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/instacontent/instacontent-api/internal/config"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/instacontent/instacontent-api/internal/handlers"
	"github.com/instacontent/instacontent-api/internal/logger"
	authmw "github.com/instacontent/instacontent-api/internal/middleware"
	"github.com/instacontent/instacontent-api/internal/services"
	"github.com/instacontent/instacontent-api/internal/validation"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	validate := validation.New()

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	workspaceService := services.NewWorkspaceService(db)
	brandProfileService := services.NewBrandProfileService(db)
	contentService := services.NewContentService(db)
	trendService := services.NewTrendService(db)
	collaborationService := services.NewCollaborationService(db)
	agencyService := services.NewAgencyService(db)
	emailService := services.NewEmailService(cfg.SMTP)

	authHandler := handlers.NewAuthHandler(userService, tokenService, jwtService, validate)
	userHandler := handlers.NewUserHandler(userService, validate)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, userService, validate)
	brandProfileHandler := handlers.NewBrandProfileHandler(brandProfileService, workspaceService, validate)
	contentHandler := handlers.NewContentHandler(contentService, workspaceService, validate)
	trendHandler := handlers.NewTrendHandler(trendService, validate)
	collaborationHandler := handlers.NewCollaborationHandler(collaborationService, contentService, workspaceService)
	agencyHandler := handlers.NewAgencyHandler(cfg, agencyService, workspaceService, userService, emailService, validate)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(authmw.RequestLog(log))

	registerRoutes(app, jwtService,
		authHandler, userHandler, workspaceHandler, brandProfileHandler,
		contentHandler, trendHandler, collaborationHandler, agencyHandler)

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			reaped, err := collaborationService.ReapIdle(context.Background(), cfg.SessionIdleTimeout)
			if err != nil {
				log.Error().Err(err).Msg("failed to reap idle sessions")
				continue
			}
			if reaped > 0 {
				log.Debug().Int64("sessions", reaped).Msg("reaped idle collaboration sessions")
			}
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info().Str("addr", addr).Msg("server starting")
		if err := app.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
}
