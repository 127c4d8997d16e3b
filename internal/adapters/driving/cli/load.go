package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

var loadCredentials string

var loadCmd = &cobra.Command{
	Use:   "load <provider>",
	Short: "Load a provider's objects with existing credentials",
	Long: `Post credentials to the provider's load endpoint and print the result.

A list of objects is shown as a table of type, name and parent. Any other
response is shown as a truncated JSON preview.

--credentials accepts inline JSON, @file to read a file, or - for stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadCredentials, "credentials", "", "credentials JSON, @file or - (required)")
	_ = loadCmd.MarkFlagRequired("credentials")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	provider, err := domain.ParseProviderName(args[0])
	if err != nil {
		return err
	}

	raw, err := readCredentials(loadCredentials, cmd.InOrStdin())
	if err != nil {
		return err
	}
	cred := domain.NewCredential(raw)

	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	ds, err := rt.Loader.Load(cmd.Context(), provider, cred)
	if err != nil {
		return domain.Notice{
			Kind:     domain.ErrLoadRequestFailed,
			Provider: provider,
			Message:  domain.UserMessage(err, fmt.Sprintf("Could not load %s data: %v", provider, err)),
		}
	}
	printDataset(cmd.OutOrStdout(), ds)
	return nil
}

// readCredentials resolves the --credentials argument into JSON bytes.
func readCredentials(arg string, stdin io.Reader) ([]byte, error) {
	arg = strings.TrimSpace(arg)

	var raw []byte
	var err error
	switch {
	case arg == "":
		return nil, fmt.Errorf("%w: --credentials is empty", domain.ErrInvalidInput)
	case arg == "-":
		raw, err = io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		raw, err = os.ReadFile(strings.TrimPrefix(arg, "@"))
	default:
		raw = []byte(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if !json.Valid(raw) {
		return nil, errors.Join(domain.ErrInvalidInput, errors.New("credentials must be valid JSON"))
	}
	return raw, nil
}
