package services

import (
	"context"
	"fmt"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driving.IntegrationRegistry = (*Registry)(nil)

// Registry maps the selected provider to a live AuthSession and owns the
// state shared by the form: session context, integration parameters and
// the loaded dataset.
//
// Only the current session may mutate the parameters. Completions from a
// session that was replaced by SelectProvider are dropped in Update.
type Registry struct {
	factory driving.ProviderAdapterFactory
	loader  driving.DataLoader
	opts    SessionOptions

	selected   domain.ProviderName
	session    *AuthSession
	sessionCtx domain.SessionContext
	params     domain.IntegrationParameters

	dataset *domain.LoadedDataset
	loading bool
	loadGen uint64

	notices []domain.Notice
}

// NewRegistry creates a registry with no provider selected.
func NewRegistry(
	factory driving.ProviderAdapterFactory,
	loader driving.DataLoader,
	sessionCtx domain.SessionContext,
	opts SessionOptions,
) *Registry {
	return &Registry{
		factory:    factory,
		loader:     loader,
		opts:       opts,
		sessionCtx: sessionCtx,
	}
}

// Providers returns the selectable providers in display order.
func (r *Registry) Providers() []domain.ProviderName {
	return domain.AllProviders()
}

// SelectProvider discards the current session and starts a fresh one for name.
// An empty name deselects. Selecting the current provider again is a no-op.
func (r *Registry) SelectProvider(name domain.ProviderName) error {
	if name != "" && !name.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownProvider, name)
	}
	if name == r.selected && (name == "" || r.session != nil) {
		return nil
	}

	var next *AuthSession
	if name != "" {
		adapter, err := r.factory(name)
		if err != nil {
			return fmt.Errorf("failed to create %s adapter: %w", name, err)
		}
		next = NewAuthSession(adapter, r.opts)
	}

	if r.session != nil {
		r.session.Close()
	}
	r.selected = name
	r.session = next
	r.params.Reset()
	r.dataset = nil
	r.loading = false
	r.loadGen++

	if next != nil {
		logger.Debug("registry: selected %s (session %s)", name, next.ID())
	} else {
		logger.Debug("registry: provider deselected")
	}
	return nil
}

// Selected returns the selected provider, if any.
func (r *Registry) Selected() (domain.ProviderName, bool) {
	return r.selected, r.selected != ""
}

// SessionContext returns the current user and organisation.
func (r *Registry) SessionContext() domain.SessionContext {
	return r.sessionCtx
}

// UpdateSessionContext edits one field. A connect already in progress keeps
// the values it started with.
func (r *Registry) UpdateSessionContext(field, value string) error {
	updated, err := r.sessionCtx.WithField(field, value)
	if err != nil {
		return err
	}
	r.sessionCtx = updated
	return nil
}

// State returns the authorization state of the current session.
func (r *Registry) State() domain.SessionState {
	if r.session == nil {
		return domain.StateIdle
	}
	return r.session.State()
}

// Session returns the current session, or nil when no provider is selected.
func (r *Registry) Session() *AuthSession {
	return r.session
}

// AuthorizationURL returns the URL of the open popup, if any.
func (r *Registry) AuthorizationURL() string {
	if r.session == nil {
		return ""
	}
	return r.session.AuthorizationURL()
}

// DismissPopup closes the current session's popup on the user's behalf.
// Windows of superseded sessions are never targeted.
func (r *Registry) DismissPopup() bool {
	if r.session == nil {
		return false
	}
	return r.session.DismissPopup()
}

// Connect starts the authorization flow with a copy of the session context.
func (r *Registry) Connect(ctx context.Context) (driving.Cmd, error) {
	if r.session == nil {
		return nil, domain.ErrNoProviderSelected
	}
	return r.session.Connect(ctx, r.sessionCtx)
}

// Parameters returns the integration parameters.
func (r *Registry) Parameters() domain.IntegrationParameters {
	return r.params
}

// CanLoad reports whether credentials are set.
func (r *Registry) CanLoad() bool {
	return r.params.HasCredentials()
}

// Load requests the connected provider's objects. Issuing a new load
// supersedes any load still in flight.
func (r *Registry) Load(ctx context.Context) (driving.Cmd, error) {
	provider, _ := r.params.Type()
	cred, ok := r.params.Credentials()
	if !ok || r.session == nil {
		return nil, domain.ErrNoCredentials
	}
	if ctx == nil {
		ctx = context.Background()
	}

	r.loadGen++
	r.loading = true

	loader, id, gen := r.loader, r.session.ID(), r.loadGen
	return func() driving.Msg {
		dataset, err := loader.Load(ctx, provider, cred)
		return DatasetLoaded{Session: id, Generation: gen, Dataset: dataset, Err: err}
	}, nil
}

// Loading reports whether a load is in flight.
func (r *Registry) Loading() bool {
	return r.loading
}

// Clear discards the loaded dataset. It is safe to call repeatedly.
func (r *Registry) Clear() {
	r.dataset = nil
}

// Dataset returns the loaded dataset, or nil.
func (r *Registry) Dataset() *domain.LoadedDataset {
	return r.dataset
}

// Update routes a completion message to the current session and applies
// its outcome. It returns the follow-up command, if any.
func (r *Registry) Update(msg driving.Msg) driving.Cmd {
	if msg == nil {
		return nil
	}
	if r.session == nil || msg.SessionID() != r.session.ID() {
		logger.Debug("registry: dropping %T from superseded session %s", msg, msg.SessionID())
		discardStale(msg)
		return nil
	}

	if loaded, ok := msg.(DatasetLoaded); ok {
		r.onDatasetLoaded(loaded)
		return nil
	}

	result := r.session.Update(msg)
	if result.Notice != nil {
		r.raise(*result.Notice)
	}
	if result.Connected {
		r.params.Merge(r.session.Provider(), result.Credential)
		logger.Info("%s connected", r.session.Provider())
	}
	return result.Next
}

func (r *Registry) onDatasetLoaded(msg DatasetLoaded) {
	if msg.Generation != r.loadGen {
		logger.Debug("registry: dropping stale load %d (current %d)", msg.Generation, r.loadGen)
		return
	}
	r.loading = false

	if msg.Err != nil {
		r.raise(*newNotice(domain.ErrLoadRequestFailed, r.selected, msg.Err))
		return
	}
	r.dataset = msg.Dataset
}

func (r *Registry) raise(n domain.Notice) {
	logger.Warn("%s: %s", n.Provider, n.Message)
	r.notices = append(r.notices, n)
}

// Notices drains pending user-visible notifications.
func (r *Registry) Notices() []domain.Notice {
	notices := r.notices
	r.notices = nil
	return notices
}

// Close tears down the current session.
func (r *Registry) Close() {
	if r.session != nil {
		r.session.Close()
	}
}
