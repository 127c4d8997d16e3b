package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/vectorshift/integrations-cli/internal/adapters/driven/popup"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

// tuiLogName is the verbose log written while the TUI owns the terminal.
const tuiLogName = "integrations-tui.log"

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Fill in the user and organisation, pick an integration and connect. Once
connected, load the integration's data to browse it.

Controls:
  tab/shift+tab  Move between fields
  ←/→            Pick an integration
  c              Connect
  d              Close the authorization window
  y              Copy the authorization URL
  L              Load data
  x              Clear data
  ?              Toggle help
  q              Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	if !isTerminal(os.Stdin) {
		return errors.New("tui requires an interactive terminal; use connect and load instead")
	}

	// Verbose output would corrupt the alternate screen.
	if logger.IsVerbose() {
		path := filepath.Join(os.TempDir(), tuiLogName)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
		defer logger.SetOutput(os.Stderr)
		cmd.PrintErrf("Logging to %s\n", path)
	}

	// The form shows the authorization URL, so openers stay quiet.
	popups, err := rt.NewPopups(io.Discard)
	if err != nil {
		return err
	}
	reg := rt.NewRegistry(popups)
	defer reg.Close()

	app, err := tui.NewApp(&tui.Ports{
		Registry:  reg,
		Clipboard: popup.CopyToClipboard,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
