package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/vectorshift/integrations-cli/internal/adapters/driven/config/file"
	"github.com/vectorshift/integrations-cli/internal/config"
	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
	"github.com/vectorshift/integrations-cli/internal/core/services"
)

// stubWindow implements domain.PopupWindow.
type stubWindow struct {
	closed atomic.Bool
}

func (w *stubWindow) Closed() bool { return w.closed.Load() }

func (w *stubWindow) Close() error {
	w.closed.Store(true)
	return nil
}

// stubPopups opens windows the user closes immediately, unless keepOpen
// is set.
type stubPopups struct {
	err      error
	keepOpen bool
	urls     []string
	windows  []*stubWindow
}

func (p *stubPopups) Open(_ context.Context, url, _ string) (domain.PopupWindow, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.urls = append(p.urls, url)
	w := &stubWindow{}
	w.closed.Store(!p.keepOpen)
	p.windows = append(p.windows, w)
	return w, nil
}

// stubBackend implements driven.IntegrationBackend.
type stubBackend struct {
	authorizeErr error
	credential   string
	loadBody     string
	loadErr      error
	pingErr      error

	sessions []domain.SessionContext
	slugs    []string
	loaded   []string
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		credential: `{"access_token":"tok-123","workspace_id":"w1"}`,
		loadBody: `[{"id":"1","type":"Database","name":"Tasks","parent_path_or_name":"Workspace"},
			{"id":"2","type":"Page","name":"Roadmap","parent_path_or_name":"Tasks"}]`,
	}
}

func (b *stubBackend) Authorize(_ context.Context, slug string, sc domain.SessionContext) (string, error) {
	b.slugs = append(b.slugs, slug)
	b.sessions = append(b.sessions, sc)
	if b.authorizeErr != nil {
		return "", b.authorizeErr
	}
	return "https://auth.example.com/" + slug, nil
}

func (b *stubBackend) Credentials(_ context.Context, _ string, _ domain.SessionContext) (domain.Credential, error) {
	return domain.NewCredential([]byte(b.credential)), nil
}

func (b *stubBackend) Load(_ context.Context, slug string, cred domain.Credential) ([]byte, error) {
	b.slugs = append(b.slugs, slug)
	b.loaded = append(b.loaded, cred.JSON())
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return []byte(b.loadBody), nil
}

func (b *stubBackend) Ping(context.Context) error { return b.pingErr }

// testEnv wires the command tree to stubs and a config file in a temp dir.
type testEnv struct {
	backend *stubBackend
	popups  *stubPopups
	cfgPath string
	cfg     config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		backend: newStubBackend(),
		popups:  &stubPopups{},
		cfgPath: filepath.Join(t.TempDir(), "config.toml"),
	}

	SetWiring(&Wiring{
		OpenStore: func(string) (driven.ConfigStore, error) {
			return file.NewConfigStore(env.cfgPath)
		},
		Build: func(cfg config.Config) (*Runtime, error) {
			env.cfg = cfg
			loader := services.NewDataLoader(env.backend, cfg.RawPreviewLimit)
			return &Runtime{
				Config:  cfg,
				Backend: env.backend,
				Loader:  loader,
				NewPopups: func(io.Writer) (driven.PopupOpener, error) {
					return env.popups, nil
				},
				NewRegistry: func(popups driven.PopupOpener) driving.IntegrationRegistry {
					return services.NewRegistry(
						services.NewProviderAdapterFactory(env.backend, popups),
						loader,
						cfg.SessionContext(),
						services.SessionOptions{Sleep: func(time.Duration) {}},
					)
				},
			}, nil
		},
	})
	t.Cleanup(func() { SetWiring(nil) })
	return env
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func requireOutput(t *testing.T, out string, err error, want ...string) {
	t.Helper()
	require.NoError(t, err, out)
	for _, w := range want {
		require.Contains(t, out, w)
	}
}
