package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vectorshift/integrations-cli/internal/config"
	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show or change settings stored in the config file.

Environment variables prefixed INTEGRATIONS_ (for example
INTEGRATIONS_BACKEND_URL or INTEGRATIONS_POPUP_MODE) override the file.`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List resolved settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		cfg, err := config.Load(config.LoadOptions{Store: store})
		if err != nil {
			return err
		}
		for _, key := range config.Keys() {
			value, _ := cfg.Get(key)
			source := "default"
			if _, ok := store.Get(key); ok {
				source = "file"
			}
			cmd.Printf("%-18s = %-30s (%s)\n", key, value, source)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one resolved setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		cfg, err := config.Load(config.LoadOptions{Store: store})
		if err != nil {
			return err
		}
		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		cmd.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting in the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value, err := config.ParseValue(key, args[1])
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		previous, existed := store.Get(key)
		if err := store.Set(key, value); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		// Reject values that leave the file unusable.
		if _, err := config.Load(config.LoadOptions{Store: store, SkipEnv: true}); err != nil {
			if rerr := restore(store, key, previous, existed); rerr != nil {
				return fmt.Errorf("%w (restore failed: %v)", err, rerr)
			}
			return err
		}
		cmd.Printf("%s = %v\n", key, value)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting from the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isKnownKey(args[0]) {
			return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, args[0])
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		if err := store.Unset(args[0]); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		cmd.Printf("%s reset to default\n", args[0])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		cmd.Println(store.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configUnsetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func isKnownKey(key string) bool {
	for _, k := range config.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func restore(store driven.ConfigStore, key string, previous any, existed bool) error {
	if existed {
		return store.Set(key, previous)
	}
	return store.Unset(key)
}
