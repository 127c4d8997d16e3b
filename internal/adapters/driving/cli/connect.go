package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
)

// connect flags.
var (
	connectUser            string
	connectOrg             string
	connectShowCredentials bool
	connectLoad            bool
)

var connectCmd = &cobra.Command{
	Use:   "connect <provider>",
	Short: "Authorize a provider through the backend",
	Long: `Run the OAuth flow for a provider.

The backend returns an authorization URL which is opened in a popup window.
Complete the authorization there, then close the window (or press Enter
here). The credentials the backend stored are then retrieved.

Providers: airtable, notion, hubspot.`,
	Args: cobra.ExactArgs(1),
	RunE: runConnect,
}

func init() {
	connectCmd.Flags().StringVar(&connectUser, "user", "", "user id (default from config)")
	connectCmd.Flags().StringVar(&connectOrg, "org", "", "organisation id (default from config)")
	connectCmd.Flags().BoolVar(&connectShowCredentials, "show-credentials", false, "print the retrieved credentials")
	connectCmd.Flags().BoolVar(&connectLoad, "load", false, "load the provider's objects once connected")
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	provider, err := domain.ParseProviderName(args[0])
	if err != nil {
		return err
	}

	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	popups, err := rt.NewPopups(out)
	if err != nil {
		return err
	}
	reg := rt.NewRegistry(popups)
	defer reg.Close()

	if cmd.Flags().Changed("user") {
		if err := reg.UpdateSessionContext("user_id", connectUser); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("org") {
		if err := reg.UpdateSessionContext("org_id", connectOrg); err != nil {
			return err
		}
	}
	if err := reg.SelectProvider(provider); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	dismiss := make(chan struct{}, 1)
	go dismissOnEnter(ctx, cmd.InOrStdin(), dismiss)

	sc := reg.SessionContext()
	cmd.Printf("Connecting %s as %s (org %s)\n", provider, sc.UserID, sc.OrgID)

	next, err := reg.Connect(ctx)
	if err != nil {
		return err
	}
	if err := drive(ctx, cmd, reg, next, dismiss); err != nil {
		return err
	}
	if reg.State() != domain.StateConnected {
		return fmt.Errorf("%s: authorization did not complete", provider)
	}

	cmd.Printf("%s connected\n", provider)
	if connectShowCredentials {
		cred, _ := reg.Parameters().Credentials()
		printCredential(out, cred)
	}
	if !connectLoad {
		return nil
	}

	next, err = reg.Load(ctx)
	if err != nil {
		return err
	}
	if err := drive(ctx, cmd, reg, next, nil); err != nil {
		return err
	}
	printDataset(out, reg.Dataset())
	return nil
}

// drive runs commands sequentially, feeding each completion back into the
// registry, and returns the first notice raised as an error. A signal on
// dismiss closes the current popup; one received before the popup opens is
// applied once it does.
func drive(
	ctx context.Context,
	cmd *cobra.Command,
	reg driving.IntegrationRegistry,
	next driving.Cmd,
	dismiss <-chan struct{},
) error {
	state := reg.State()
	pending := false
	for next != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-dismiss:
			pending = true
		default:
		}
		if pending && reg.DismissPopup() {
			pending = false
		}

		next = reg.Update(next())

		if notices := reg.Notices(); len(notices) > 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			return notices[0]
		}
		if s := reg.State(); s != state {
			state = s
			if s == domain.StateAwaitingClosure {
				cmd.Println("Waiting for the authorization window to close (press Enter once done)")
			}
		}
	}
	return ctx.Err()
}

// dismissOnEnter signals dismiss for each line read from in. It returns at
// EOF, or on the first line read after ctx is done.
func dismissOnEnter(ctx context.Context, in io.Reader, dismiss chan<- struct{}) {
	if in == nil {
		return
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		select {
		case dismiss <- struct{}{}:
		default:
		}
	}
}
