package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkpost/blog-bff/internal/api"
	"github.com/inkpost/blog-bff/internal/core/guard"
	"github.com/inkpost/blog-bff/internal/core/ports"
	"github.com/inkpost/blog-bff/internal/core/service"
	"github.com/inkpost/blog-bff/internal/infrastructure/config"
	"github.com/inkpost/blog-bff/internal/infrastructure/dataapi"
	redisdb "github.com/inkpost/blog-bff/internal/infrastructure/db/redis"
	"github.com/inkpost/blog-bff/internal/infrastructure/session"
	"github.com/inkpost/blog-bff/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const sweepInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Upstream data API ---
	apiClient := dataapi.New(cfg.DataAPI.BaseURL, cfg.DataAPI.Timeout)

	// --- Session store ---
	var (
		sessions ports.SessionStore
		rdb      *redis.Client
	)
	switch cfg.Session.Backend {
	case "redis":
		rdb, err = redisdb.Open(ctx, redisdb.Config{
			Addr:    cfg.Redis.Addr,
			DB:      cfg.Redis.DB,
			Timeout: cfg.Redis.Timeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cfg.Session.TTL)
	default:
		store := session.NewMemoryStore(cfg.Session.TTL)
		store.StartSweeper(ctx, sweepInterval)
		sessions = store
	}

	// --- Core services ---
	accessGuard := guard.New(sessions)
	orch := service.NewOrchestrator(accessGuard, apiClient, log)
	auth := service.NewAuthService(apiClient, sessions, log)

	e := api.NewRouter(orch, auth, apiClient, rdb, log)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("session_backend", cfg.Session.Backend).
			Str("data_api", cfg.DataAPI.BaseURL).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
