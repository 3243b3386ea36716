// Command seed loads the demo product catalog straight into the configured
// document store, without a running API. It is a no-op when products exist.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/utafrali/storefront-api/internal/app"
	"github.com/utafrali/storefront-api/internal/config"
	"github.com/utafrali/storefront-api/internal/service"
	"github.com/utafrali/storefront-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(cfg.ServiceName+"-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	store, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn("close document store", slog.String("error", err.Error()))
		}
	}()

	res, err := service.NewCatalogService(store, log).SeedProducts(ctx)
	if err != nil {
		return err
	}

	if !res.Seeded {
		log.Info(res.Message, slog.String("store_driver", cfg.StoreDriver))
		return nil
	}
	log.Info("demo catalog seeded",
		slog.String("store_driver", cfg.StoreDriver),
		slog.Int("count", res.Count),
	)
	return nil
}
