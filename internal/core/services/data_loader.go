package services

import (
	"context"
	"fmt"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

// Ensure DataLoader implements the interface.
var _ driving.DataLoader = (*DataLoader)(nil)

// DataLoader fetches a connected provider's objects and decides once how
// they are displayed.
type DataLoader struct {
	backend      driven.IntegrationBackend
	previewLimit int
}

// NewDataLoader creates a loader. previewLimit caps the raw preview in
// characters; zero or less uses domain.DefaultRawPreviewLimit.
func NewDataLoader(backend driven.IntegrationBackend, previewLimit int) *DataLoader {
	if previewLimit <= 0 {
		previewLimit = domain.DefaultRawPreviewLimit
	}
	return &DataLoader{backend: backend, previewLimit: previewLimit}
}

// Load posts cred to the provider's load endpoint and classifies the body.
func (l *DataLoader) Load(
	ctx context.Context,
	provider domain.ProviderName,
	cred domain.Credential,
) (*domain.LoadedDataset, error) {
	if !provider.IsValid() {
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrLoadRequestFailed, domain.ErrUnknownProvider, provider)
	}
	if cred.IsEmpty() {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadRequestFailed, domain.ErrNoCredentials)
	}

	logger.Debug("%s: loading objects", provider)
	body, err := l.backend.Load(ctx, provider.Slug(), cred)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadRequestFailed, err)
	}

	dataset, err := domain.DecodeDataset(body, l.previewLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadRequestFailed, err)
	}

	switch dataset.Kind {
	case domain.DatasetTable:
		logger.Debug("%s: loaded %d objects", provider, len(dataset.Rows))
	default:
		logger.Debug("%s: loaded %s preview (truncated=%t)", provider, dataset.Kind, dataset.Truncated)
	}
	return dataset, nil
}
