package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rjbuenaventura/kusina-pos/api/routes"
	"github.com/rjbuenaventura/kusina-pos/internal/catalog"
	"github.com/rjbuenaventura/kusina-pos/internal/checkout"
	"github.com/rjbuenaventura/kusina-pos/internal/orderapi"
	"github.com/rjbuenaventura/kusina-pos/internal/sessions"
	"github.com/rjbuenaventura/kusina-pos/pkg/config"
	"github.com/rjbuenaventura/kusina-pos/pkg/logger"
	"github.com/rjbuenaventura/kusina-pos/pkg/metrics"
	"github.com/rjbuenaventura/kusina-pos/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "terminal"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: cfg.App.TerminalName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	catalogClient, err := catalog.NewClient(cfg.BackOffice)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	var catalogCache catalog.Cache
	if redisClient != nil {
		catalogCache = redisClient
	}
	catalogProvider, err := catalog.NewProvider(catalogClient, catalogCache, cfg.Catalog.CacheTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog provider", err)
		os.Exit(1)
	}

	orderClient, err := orderapi.NewClient(cfg.BackOffice)
	if err != nil {
		logg.Error(context.Background(), "failed to create order client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	sessionRegistry, err := sessions.NewRegistry(func() (*checkout.Coordinator, error) {
		return checkout.NewCoordinator(orderClient, checkout.Options{
			Metrics:         checkoutMetrics,
			Logger:          logg,
			ConfirmationTTL: cfg.Checkout.ConfirmationTTL,
		})
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session registry", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"terminal": cfg.App.TerminalName,
	})
	logg.Info(ctx, "starting terminal server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, catalogProvider, sessionRegistry, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "terminal server stopped unexpectedly", err)
		os.Exit(1)
	}
}
