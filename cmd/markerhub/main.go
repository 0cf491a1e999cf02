// Command markerhub catalogs GitHub repositories that contain a marker file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/markerhub/internal/adapters/driven/config/file"
	snapshotfile "github.com/custodia-labs/markerhub/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/markerhub/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/markerhub/internal/adapters/driving/cli"
	"github.com/custodia-labs/markerhub/internal/connectors/github"
	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
	"github.com/custodia-labs/markerhub/internal/core/ports/driving"
	"github.com/custodia-labs/markerhub/internal/core/services"
	"github.com/custodia-labs/markerhub/internal/logger"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Failed to load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *sqlite.Store
	defer func() {
		if store != nil {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close history store: %v", err)
			}
		}
	}()

	cli.SetVersion(version)
	cli.SetSetup(func(configPath string) (*cli.Services, error) {
		configStore, err := openConfigStore(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config: %w", err)
		}

		store, err = sqlite.NewStore("")
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		return buildServices(ctx, os.Getenv, configStore, store.RunStore(), clock.New()), nil
	})

	if err := cli.Command().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func openConfigStore(path string) (*file.ConfigStore, error) {
	if path != "" {
		return file.OpenConfigStore(path)
	}
	return file.NewConfigStore("")
}

func buildServices(
	ctx context.Context,
	getenv func(string) string,
	configStore driven.ConfigStore,
	runs driven.RunStore,
	clk driven.Clock,
) *cli.Services {
	return &cli.Services{
		Token:   getenv(envToken),
		History: services.NewHistoryService(runs),

		Settings: envSettings{
			SettingsService: services.NewSettingsService(configStore),
			getenv:          getenv,
		},

		Collectors: func(cfg domain.CollectorConfig, progress driving.ProgressFunc) (driving.Collector, error) {
			client, err := github.NewClient(ctx, github.ConfigFromCollector(cfg))
			if err != nil {
				return nil, err
			}
			orchestrator, err := services.NewCollectionOrchestrator(
				cfg, client, snapshotfile.NewSnapshotStore(cfg.OutputPath), runs, clk, progress)
			if err != nil {
				return nil, err
			}
			return orchestrator, nil
		},

		Quotas: func(cfg domain.CollectorConfig) (driving.QuotaService, error) {
			client, err := github.NewClient(ctx, github.ConfigFromCollector(cfg))
			if err != nil {
				return nil, err
			}
			return client, nil
		},

		Schedulers: func(spec string, collector driving.Collector, onResult func(domain.RunResult)) (driving.Scheduler, error) {
			scheduler, err := services.NewScheduler(spec, collector, runs, onResult)
			if err != nil {
				return nil, err
			}
			return scheduler, nil
		},

		Catalog: func(path string) driving.CatalogService {
			return services.NewCatalogService(snapshotfile.NewSnapshotStore(path))
		},
	}
}
