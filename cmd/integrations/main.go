// Command integrations connects third-party data sources through the
// integrations backend and previews their data.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/vectorshift/integrations-cli/internal/adapters/driven/backend"
	"github.com/vectorshift/integrations-cli/internal/adapters/driven/config/file"
	"github.com/vectorshift/integrations-cli/internal/adapters/driven/config/memory"
	"github.com/vectorshift/integrations-cli/internal/adapters/driven/popup"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/cli"
	"github.com/vectorshift/integrations-cli/internal/config"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
	"github.com/vectorshift/integrations-cli/internal/core/services"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetWiring(&cli.Wiring{
		OpenStore: openStore,
		Build:     build,
	})

	if err := cli.Execute(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

// openStore opens the TOML config file. Without an explicit path and no
// user config directory, settings are kept in memory for this run.
func openStore(path string) (driven.ConfigStore, error) {
	if path == "" {
		if _, err := file.DefaultPath(); err != nil {
			logger.Warn("no config directory (%v), settings will not persist", err)
			return memory.NewConfigStore(nil), nil
		}
	}
	return file.NewConfigStore(path)
}

// build assembles the services from resolved configuration.
func build(cfg config.Config) (*cli.Runtime, error) {
	client, err := backend.NewClient(backend.Options{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.RequestTimeout,
		RateLimit: backend.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit,
			BurstSize:         cfg.RateBurst,
		},
	})
	if err != nil {
		return nil, err
	}

	mode, err := popup.ParseMode(cfg.Popup.Mode)
	if err != nil {
		return nil, err
	}

	loader := services.NewDataLoader(client, cfg.RawPreviewLimit)
	opts := services.SessionOptions{
		PollInterval: cfg.PollInterval,
		PopupTimeout: cfg.Popup.Timeout,
	}

	return &cli.Runtime{
		Config:  cfg,
		Backend: client,
		Loader:  loader,
		NewPopups: func(out io.Writer) (driven.PopupOpener, error) {
			return popup.New(mode, cfg.Popup.Command, out)
		},
		NewRegistry: func(popups driven.PopupOpener) driving.IntegrationRegistry {
			return services.NewRegistry(
				services.NewProviderAdapterFactory(client, popups),
				loader,
				cfg.SessionContext(),
				opts,
			)
		},
	}, nil
}
