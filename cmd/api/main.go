package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/shopfront/api/routes"
	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/persistence"
	"github.com/angelmondragon/shopfront/internal/search"
	"github.com/angelmondragon/shopfront/internal/store"
	"github.com/angelmondragon/shopfront/pkg/config"
	"github.com/angelmondragon/shopfront/pkg/logger"
	"github.com/angelmondragon/shopfront/pkg/metrics"
	"github.com/angelmondragon/shopfront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	kv, err := newBackend(context.Background(), cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap persistence backend", err)
		os.Exit(1)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logg.Error(context.Background(), "error closing persistence backend", err)
		}
	}()

	adapter, err := persistence.NewAdapter(kv, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create persistence adapter", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	storeMetrics := metrics.NewStoreMetrics(registry)

	appStore, err := store.New(store.Params{
		Pricing: store.Pricing{
			TaxRate:               cfg.Cart.TaxRateDecimal(),
			DefaultShippingFee:    cfg.Cart.ShippingFeeDecimal(),
			FreeShippingThreshold: cfg.Cart.FreeShippingThresholdDecimal(),
		},
		Mirror:  adapter,
		Logger:  logg,
		Metrics: storeMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create state store", err)
		os.Exit(1)
	}

	restored, err := adapter.LoadAll(context.Background())
	if err != nil {
		logg.Error(context.Background(), "failed to restore persisted state, starting fresh", err)
	}
	if restored.CartFound {
		appStore.Dispatch(context.Background(), store.RestoreCart{
			Items:       restored.CartItems,
			Discount:    restored.Discount,
			ShippingFee: restored.ShippingFee,
		})
	}
	appStore.Dispatch(context.Background(), store.RestoreWishlist{Items: restored.Wishlist})
	appStore.Dispatch(context.Background(), store.SetViewMode{Mode: restored.Preferences.ViewMode})

	catalogClient, err := catalog.NewClient(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	engine, err := search.NewEngine(search.Params{
		Store:    appStore,
		Remote:   catalogClient,
		Logger:   logg,
		Metrics:  storeMetrics,
		Debounce: cfg.Search.DebounceWindow,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create search engine", err)
		os.Exit(1)
	}
	defer engine.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Persistence.Driver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Store:       appStore,
			Search:      engine,
			Products:    catalogClient,
			ProductGet:  catalogClient,
			Persistence: adapter,
			Catalog:     catalogClient,
			Registry:    registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func newBackend(ctx context.Context, cfg *config.Config) (persistence.KV, error) {
	switch cfg.Persistence.Driver {
	case config.PersistenceDriverSQLite:
		return persistence.NewSQLiteKV(cfg.Persistence.SQLitePath)
	case config.PersistenceDriverMemory:
		return persistence.NewMemoryKV(), nil
	default:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return persistence.NewRedisKV(client)
	}
}
