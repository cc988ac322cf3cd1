package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/liketelecom/fieldservice/internal/api"
	"github.com/liketelecom/fieldservice/internal/core/ports"
	"github.com/liketelecom/fieldservice/internal/core/service"
	"github.com/liketelecom/fieldservice/internal/core/state"
	"github.com/liketelecom/fieldservice/internal/infrastructure/calendar"
	"github.com/liketelecom/fieldservice/internal/infrastructure/config"
	mongodb "github.com/liketelecom/fieldservice/internal/infrastructure/db/mongo"
	redisdb "github.com/liketelecom/fieldservice/internal/infrastructure/db/redis"
	"github.com/liketelecom/fieldservice/internal/infrastructure/store"
	"github.com/liketelecom/fieldservice/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		lg := logger.Get()
		lg.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(cfg.LogLevel, cfg.Env == "development")

	byteStore, sessions, cleanup, err := buildStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("storage backend")
	}
	defer cleanup()

	appState := state.New(store.NewSnapshotGateway(byteStore, log), log)
	if err := appState.Hydrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("snapshot hydration")
	}

	cal := calendar.New(cfg.Storage.BlockedDates)

	orderService := service.NewOrderService(appState, cal, log)
	rankingService := service.NewRankingService(appState)
	userService := service.NewUserService(appState, log)
	authService := service.NewAuthService(appState, sessions, cfg.JWTSecret, cfg.SessionTTL, log)

	if err := userService.Bootstrap(ctx, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("bootstrap admin")
	}

	e := api.NewRouter(api.Services{
		Auth:    authService,
		Orders:  orderService,
		Ranking: rankingService,
		Users:   userService,
	}, sessions, byteStore, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Storage.Backend).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// buildStores selects the snapshot backend and session store from config.
// File and Mongo backends pair with in-memory sessions; Redis carries both.
func buildStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.ByteStore, ports.SessionStore, func(), error) {
	switch cfg.Storage.Backend {
	case "redis":
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Storage.Redis.Addr,
			DB:   cfg.Storage.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() { _ = client.Close() }
		return redisdb.NewByteStore(client), redisdb.NewSessionStore(client), cleanup, nil

	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Storage.Mongo.URI,
			Database: cfg.Storage.Mongo.Database,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() { _ = client.Disconnect(context.Background()) }
		return mongodb.NewByteStore(db), store.NewMemorySessionStore(), cleanup, nil

	default:
		fs, err := store.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		return fs, store.NewMemorySessionStore(), func() {}, nil
	}
}
