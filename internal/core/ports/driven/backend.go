package driven

import (
	"context"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// IntegrationBackend is the HTTP backend that performs OAuth token exchange
// and provider data fetching. Every method addresses one provider by its
// endpoint slug ("airtable", "notion", "hubspot").
type IntegrationBackend interface {
	// Authorize requests the provider authorization URL for the session.
	Authorize(ctx context.Context, slug string, session domain.SessionContext) (string, error)

	// Credentials retrieves the credential stored by the backend after the
	// OAuth callback. An empty credential is returned as-is, not as an error.
	Credentials(ctx context.Context, slug string, session domain.SessionContext) (domain.Credential, error)

	// Load fetches the provider objects using cred and returns the raw JSON body.
	Load(ctx context.Context, slug string, cred domain.Credential) ([]byte, error)

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
}
