package cli

import (
	"github.com/spf13/cobra"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported integrations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, p := range domain.AllProviders() {
			cmd.Printf("%-10s /integrations/%s\n", p, p.Slug())
		}
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
