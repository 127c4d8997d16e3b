package driving

import (
	"context"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// ProviderAdapter is the uniform capability contract every integration
// implements. Variants differ only in the backend endpoint they address.
type ProviderAdapter interface {
	// Provider returns the integration this adapter serves.
	Provider() domain.ProviderName

	// Authorize requests an authorization URL and opens a popup at it.
	// Errors wrap domain.ErrAuthorizationRequestFailed or domain.ErrPopupBlocked.
	Authorize(ctx context.Context, session domain.SessionContext) (*domain.AuthorizationHandle, error)

	// RetrieveCredentials fetches the credential produced by the OAuth callback.
	// Errors wrap domain.ErrCredentialRetrievalFailed.
	RetrieveCredentials(ctx context.Context, session domain.SessionContext) (domain.Credential, error)
}

// ProviderAdapterFactory creates a fresh adapter for a provider.
type ProviderAdapterFactory func(provider domain.ProviderName) (ProviderAdapter, error)
