package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/promocheck/api/controllers"
	"github.com/angelmondragon/promocheck/api/routes"
	"github.com/angelmondragon/promocheck/internal/catalog"
	"github.com/angelmondragon/promocheck/internal/checkout"
	"github.com/angelmondragon/promocheck/pkg/config"
	"github.com/angelmondragon/promocheck/pkg/db"
	"github.com/angelmondragon/promocheck/pkg/env"
	"github.com/angelmondragon/promocheck/pkg/logger"
	"github.com/angelmondragon/promocheck/pkg/metrics"
	"github.com/angelmondragon/promocheck/pkg/migrate"
	"github.com/angelmondragon/promocheck/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{
		ServiceName: "api",
		Format:      env.Get(config.EnvLogFormat, config.LogFormatJSON),
	})

	if err := env.LoadDotenv(); err != nil {
		logg.Warn(context.Background(), ".env file could not be read, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Env:         cfg.App.Env,
		Format:      cfg.App.LogFormat,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promoMetrics := metrics.NewPromotionMetrics(registry)

	repo := catalog.NewRepository(dbClient.DB())
	var loader catalog.Loader = repo
	var redisPinger controllers.Pinger
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisPinger = redisClient

		loader, err = catalog.NewCachedLoader(catalog.CachedLoaderParams{
			Next:    repo,
			Cache:   redisClient,
			TTL:     cfg.Promotions.CacheTTL,
			Metrics: promoMetrics,
			Logger:  logg,
		})
		if err != nil {
			logg.Error(ctx, "failed to create promotion cache", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "redis not configured, promotion cache disabled")
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Loader:  loader,
		Metrics: promoMetrics,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:      cfg,
			Logger:      logg,
			DBPinger:    dbClient,
			RedisPinger: redisPinger,
			Checkout:    checkoutService,
			Gatherer:    registry,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(serverCtx, "api server shutdown failed", err)
		}
	}()

	logg.Info(serverCtx, "starting api server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(serverCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(serverCtx, "api server stopped")
}
