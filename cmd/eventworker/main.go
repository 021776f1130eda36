package main

import (
	"context"
	"log/slog"
	"os"

	"blog/config"
	"blog/internal/delivery"
	"blog/internal/delivery/worker"
	"blog/internal/delivery/worker/handler"
	"blog/internal/errors"
	logs "blog/internal/infra/log"
	"blog/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	repo, err := injectRepo(cfg.Store.Driver)
	if err != nil {
		slog.Error("Unsupported store driver", slog.String("driver", cfg.Store.Driver), slog.Any("error", err))
		os.Exit(1)
	}

	fx.New(
		fx.Supply(cfg),
		fx.Provide(logs.New),
		repo,
		fx.Provide(handler.NewPushHandler),
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(
			startServer,
		),
	).Run()
}

// errMemoryStore is returned for the memory driver: the worker runs in its own
// process and would never see the users and posts held by the API.
var errMemoryStore = errors.New("event worker needs a shared store; set store.driver to postgres")

func injectRepo(driver string) (fx.Option, error) {
	switch driver {
	case config.StoreDriverPostgres:
		return postgres.Module, nil
	case config.StoreDriverMemory:
		return nil, errMemoryStore
	default:
		return nil, errors.Errorf("unknown store driver %q", driver)
	}
}

func startServer(params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(context.Background()); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
