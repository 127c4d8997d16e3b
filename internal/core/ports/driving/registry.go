package driving

import (
	"context"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// IntegrationRegistry maps the chosen provider to its adapter and owns the
// shared form state: the session context, the integration parameters and the
// loaded dataset. All methods must be called from a single UI loop.
type IntegrationRegistry interface {
	// Providers returns the selectable providers in display order.
	Providers() []domain.ProviderName

	// SelectProvider discards the current session and starts a fresh one for name.
	// Integration parameters and the loaded dataset are reset.
	SelectProvider(name domain.ProviderName) error

	// Selected returns the selected provider, if any.
	Selected() (domain.ProviderName, bool)

	// SessionContext returns the current user and organisation.
	SessionContext() domain.SessionContext

	// UpdateSessionContext edits one field. The change applies to the next connect.
	UpdateSessionContext(field, value string) error

	// State returns the authorization state of the current session.
	State() domain.SessionState

	// AuthorizationURL returns the URL of the open popup, if any.
	AuthorizationURL() string

	// DismissPopup marks the current session's popup closed on the user's
	// behalf. It reports false when no popup is open.
	DismissPopup() bool

	// Connect starts the authorization flow for the selected provider.
	Connect(ctx context.Context) (Cmd, error)

	// Parameters returns the integration parameters.
	Parameters() domain.IntegrationParameters

	// CanLoad reports whether the data loader is available.
	CanLoad() bool

	// Load requests the connected provider's objects.
	Load(ctx context.Context) (Cmd, error)

	// Loading reports whether a load is in flight.
	Loading() bool

	// Clear discards the loaded dataset.
	Clear()

	// Dataset returns the loaded dataset, or nil.
	Dataset() *domain.LoadedDataset

	// Update applies a completion message and returns the follow-up command.
	// Messages from superseded sessions are ignored.
	Update(msg Msg) Cmd

	// Notices drains pending user-visible notifications.
	Notices() []domain.Notice

	// Close tears down the current session.
	Close()
}
