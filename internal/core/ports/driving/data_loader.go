package driving

import (
	"context"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// DataLoader requests normalized objects for a connected provider.
type DataLoader interface {
	// Load sends the credential to the provider's load endpoint and
	// classifies the response. Errors wrap domain.ErrLoadRequestFailed.
	Load(ctx context.Context, provider domain.ProviderName, cred domain.Credential) (*domain.LoadedDataset, error)
}
