package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jtrack/tracking-system/internal/adapter/aircanada"
	"github.com/jtrack/tracking-system/internal/adapter/datamyne"
	"github.com/jtrack/tracking-system/internal/adapter/zim"
	"github.com/jtrack/tracking-system/internal/api"
	"github.com/jtrack/tracking-system/internal/core/mapping"
	"github.com/jtrack/tracking-system/internal/core/ports"
	"github.com/jtrack/tracking-system/internal/core/service"
	"github.com/jtrack/tracking-system/internal/infrastructure/config"
	"github.com/jtrack/tracking-system/internal/infrastructure/db/mongo"
	"github.com/jtrack/tracking-system/internal/infrastructure/db/redis"
	"github.com/jtrack/tracking-system/internal/infrastructure/fetch"
	"github.com/jtrack/tracking-system/internal/infrastructure/queue"
	"github.com/jtrack/tracking-system/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage (both optional: the engine degrades to fetch-and-map) ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Warn().Err(err).Msg("mongo unavailable, running without scrape history")
	} else {
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without document cache")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	var cache ports.DocumentCache
	if rdb != nil {
		cache = redis.NewDocumentCache(rdb, cfg.CacheTTL)
	}
	var history ports.HistoryRepository
	if db != nil {
		history = mongo.NewHistoryRepository(db)
	}

	// --- Pipeline ---
	fetcher := fetch.New(map[string]fetch.Endpoint{
		"zim":       {URLTemplate: cfg.Fetch.ZimURL, JSON: true},
		"aircanada": {URLTemplate: cfg.Fetch.AirCanadaURL},
		"datamyne":  {URLTemplate: cfg.Fetch.DatamyneURL, JSON: true},
	}, cfg.Fetch.Timeout, cfg.Fetch.RetryCount)

	assembler := mapping.NewAssembler()
	trackingService := service.NewTrackingService(
		[]ports.SourceAdapter{zim.New(), aircanada.New(), datamyne.New()},
		fetcher, cache, history, assembler, log,
	)

	dispatcher := queue.NewDispatcher(cfg.RefreshWorkers, trackingService, log)
	dispatcher.Start(ctx)
	scheduler := queue.NewScheduler(dispatcher, cfg.RefreshInterval, log)
	scheduler.Start(ctx)

	var authService ports.AuthService
	if cfg.JWTSecret != "" && cfg.AuthClientID != "" {
		authService = service.NewAuthService(cfg.AuthClientID, cfg.AuthClientSecret, cfg.JWTSecret, cfg.TokenTTL)
	}

	e := api.NewRouter(api.RouterDeps{
		Service:     trackingService,
		Assembler:   assembler,
		Refresher:   scheduler,
		AuthService: authService,
		JWTSecret:   cfg.JWTSecret,
		DB:          db,
		Redis:       rdb,
		Log:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("tracking API listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}
