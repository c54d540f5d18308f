package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/maxviazov/basketball-team-service/internal/config"
	"github.com/maxviazov/basketball-team-service/internal/handler"
	"github.com/maxviazov/basketball-team-service/internal/live"
	"github.com/maxviazov/basketball-team-service/internal/logger"
	"github.com/maxviazov/basketball-team-service/internal/repository"
	"github.com/maxviazov/basketball-team-service/internal/repository/mongodb"
	"github.com/maxviazov/basketball-team-service/internal/service"
)

func main() {
	// Local development secrets; missing .env is fine in prod.
	_ = godotenv.Load()

	// Load application config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatalf("❌ Mongo connection failed: %v", err)
	}
	defer store.Close(context.Background())

	db := store.Database()
	userRepo := mongodb.NewUserRepository(db)
	teamRepo := mongodb.NewTeamRepository(db)
	playerRepo := mongodb.NewPlayerRepository(db)
	matchRepo := mongodb.NewMatchRepository(db)
	statsRepo := mongodb.NewStatsRepository(db)

	hub := live.NewHub(appLogger)
	go hub.Run(ctx)

	userSvc := service.NewUserService(userRepo, appLogger)
	teamSvc := service.NewTeamService(teamRepo, appLogger)
	playerSvc := service.NewPlayerService(playerRepo, teamRepo, appLogger)
	matchSvc := service.NewMatchService(matchRepo, teamRepo, statsRepo, hub, appLogger)
	statsSvc := service.NewStatsService(statsRepo, matchRepo, hub, appLogger)

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Register(engine, store, userSvc, teamSvc, playerSvc, matchSvc, statsSvc, hub,
		handler.RateLimit{RPS: cfg.RateLimit.RPS, Burst: cfg.RateLimit.Burst})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.Info().Int("port", cfg.App.Port).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("✅ Service stopped")
}
