// Package cli provides the cobra command tree for the integrations binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vectorshift/integrations-cli/internal/config"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// Global flags.
var (
	verbose    bool
	configPath string
	backendURL string
)

// Runtime holds the services a command runs against.
type Runtime struct {
	Config  config.Config
	Backend driven.IntegrationBackend
	Loader  driving.DataLoader

	// NewPopups creates the popup opener. User-facing text goes to out.
	NewPopups func(out io.Writer) (driven.PopupOpener, error)

	// NewRegistry creates a registry whose adapters open windows with popups.
	NewRegistry func(popups driven.PopupOpener) driving.IntegrationRegistry
}

// Wiring connects the command tree to concrete adapters.
type Wiring struct {
	// OpenStore opens the config file at path, or the default file when empty.
	OpenStore func(path string) (driven.ConfigStore, error)

	// Build creates the runtime from resolved configuration.
	Build func(cfg config.Config) (*Runtime, error)
}

// wiring is installed by SetWiring before Execute.
var wiring *Wiring

// SetWiring installs the adapters used by every command.
func SetWiring(w *Wiring) {
	wiring = w
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "integrations",
	Short: "Connect Airtable, Notion and HubSpot and preview their data",
	Long: `integrations drives the OAuth connection flow for third-party data sources
through the integrations backend, then loads and previews the objects each
source exposes.

The backend holds the OAuth client secrets and performs the token exchange.
This tool opens the authorization page, waits for you to close it, collects
the credentials the backend stored and asks the backend for the data.

Examples:
  integrations providers
  integrations connect hubspot --user alice --org acme
  integrations connect notion --load
  integrations load airtable --credentials @creds.json
  integrations tui`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "log requests and state transitions to stderr")
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/integrations/config.toml)")
	flags.StringVar(&backendURL, "backend-url", "", "integrations backend base URL")
}

// Execute runs the command tree.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openStore opens the config file named by --config.
func openStore() (driven.ConfigStore, error) {
	if wiring == nil || wiring.OpenStore == nil {
		return nil, errors.New("config store not configured")
	}
	return wiring.OpenStore(configPath)
}

// loadRuntime resolves configuration and builds the services. Flags are
// applied last so they win over the file and the environment.
func loadRuntime() (*Runtime, error) {
	if wiring == nil || wiring.Build == nil {
		return nil, errors.New("services not configured")
	}

	store, err := openStore()
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg, err := config.Load(config.LoadOptions{Store: store})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(backendURL) != "" {
		cfg.BackendURL = strings.TrimSpace(backendURL)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	logger.Debug("config: backend %s, popup mode %s", cfg.BackendURL, cfg.Popup.Mode)

	return wiring.Build(cfg)
}
