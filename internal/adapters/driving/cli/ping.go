package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the integrations backend is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		if err := rt.Backend.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("backend %s unreachable: %w", rt.Config.BackendURL, err)
		}
		cmd.Printf("Backend %s is up\n", rt.Config.BackendURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
