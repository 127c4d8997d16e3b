package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

// Ensure ProviderAdapter implements the interface.
var _ driving.ProviderAdapter = (*ProviderAdapter)(nil)

// ProviderAdapter is the single implementation of driving.ProviderAdapter.
// Providers differ only by the endpoint slug the backend is addressed with.
type ProviderAdapter struct {
	provider domain.ProviderName
	backend  driven.IntegrationBackend
	popups   driven.PopupOpener
}

// NewProviderAdapter creates an adapter for provider.
func NewProviderAdapter(
	provider domain.ProviderName,
	backend driven.IntegrationBackend,
	popups driven.PopupOpener,
) (*ProviderAdapter, error) {
	if !provider.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, provider)
	}
	return &ProviderAdapter{
		provider: provider,
		backend:  backend,
		popups:   popups,
	}, nil
}

// NewProviderAdapterFactory returns a factory creating adapters that share
// one backend and popup opener.
func NewProviderAdapterFactory(
	backend driven.IntegrationBackend,
	popups driven.PopupOpener,
) driving.ProviderAdapterFactory {
	return func(provider domain.ProviderName) (driving.ProviderAdapter, error) {
		return NewProviderAdapter(provider, backend, popups)
	}
}

// Provider returns the integration this adapter serves.
func (a *ProviderAdapter) Provider() domain.ProviderName {
	return a.provider
}

// Authorize requests the authorization URL and opens a popup at it.
func (a *ProviderAdapter) Authorize(
	ctx context.Context,
	session domain.SessionContext,
) (*domain.AuthorizationHandle, error) {
	slug := a.provider.Slug()
	logger.Debug("%s: requesting authorization URL (user=%s org=%s)", a.provider, session.UserID, session.OrgID)

	authURL, err := a.backend.Authorize(ctx, slug, session)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthorizationRequestFailed, err)
	}
	authURL = strings.TrimSpace(authURL)
	if authURL == "" {
		return nil, fmt.Errorf("%w: backend returned an empty URL", domain.ErrAuthorizationRequestFailed)
	}

	window, err := a.popups.Open(ctx, authURL, fmt.Sprintf("%s Authorization", a.provider))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPopupBlocked, err)
	}

	return &domain.AuthorizationHandle{
		Provider: a.provider,
		URL:      authURL,
		Window:   window,
	}, nil
}

// RetrieveCredentials fetches the credential stored by the OAuth callback.
// An empty payload is a failure: the user closed the popup before finishing.
func (a *ProviderAdapter) RetrieveCredentials(
	ctx context.Context,
	session domain.SessionContext,
) (domain.Credential, error) {
	logger.Debug("%s: retrieving credentials", a.provider)

	cred, err := a.backend.Credentials(ctx, a.provider.Slug(), session)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("%w: %w", domain.ErrCredentialRetrievalFailed, err)
	}
	if cred.IsEmpty() {
		return domain.Credential{}, fmt.Errorf("%w: %s returned no credentials",
			domain.ErrCredentialRetrievalFailed, a.provider)
	}
	return cred, nil
}
