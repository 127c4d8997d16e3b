package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// mockBackend is a testify mock of driven.IntegrationBackend.
type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) Authorize(ctx context.Context, slug string, session domain.SessionContext) (string, error) {
	args := m.Called(ctx, slug, session)
	return args.String(0), args.Error(1)
}

func (m *mockBackend) Credentials(ctx context.Context, slug string, session domain.SessionContext) (domain.Credential, error) {
	args := m.Called(ctx, slug, session)
	return args.Get(0).(domain.Credential), args.Error(1)
}

func (m *mockBackend) Load(ctx context.Context, slug string, cred domain.Credential) ([]byte, error) {
	args := m.Called(ctx, slug, cred)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func (m *mockBackend) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestNewProviderAdapter_RejectsUnknownProvider(t *testing.T) {
	_, err := NewProviderAdapter("Dropbox", &mockBackend{}, &fakePopups{})
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestProviderAdapter_VariantsDifferOnlyBySlug(t *testing.T) {
	for _, provider := range domain.AllProviders() {
		t.Run(provider.String(), func(t *testing.T) {
			ctx := context.Background()
			session := domain.SessionContext{UserID: "u", OrgID: "o"}
			backend := &mockBackend{}
			backend.On("Authorize", ctx, provider.Slug(), session).Return("https://auth.example.com", nil).Once()
			backend.On("Credentials", ctx, provider.Slug(), session).
				Return(domain.NewCredential([]byte(`{"t":1}`)), nil).Once()
			popups := &fakePopups{}

			adapter, err := NewProviderAdapterFactory(backend, popups)(provider)
			require.NoError(t, err)
			assert.Equal(t, provider, adapter.Provider())

			handle, err := adapter.Authorize(ctx, session)
			require.NoError(t, err)
			assert.Equal(t, provider, handle.Provider)
			assert.Equal(t, "https://auth.example.com", handle.URL)
			assert.Same(t, popups.last(), handle.Window)
			assert.Equal(t, provider.String()+" Authorization", popups.lastTitle)

			cred, err := adapter.RetrieveCredentials(ctx, session)
			require.NoError(t, err)
			assert.False(t, cred.IsEmpty())

			backend.AssertExpectations(t)
		})
	}
}

func TestProviderAdapter_AuthorizeErrors(t *testing.T) {
	ctx := context.Background()
	session := domain.DefaultSessionContext()

	t.Run("backend error", func(t *testing.T) {
		backend := &mockBackend{}
		backendErr := &domain.BackendError{StatusCode: 500, Detail: "Missing client id"}
		backend.On("Authorize", ctx, "notion", session).Return("", backendErr)
		popups := &fakePopups{}
		adapter, err := NewProviderAdapter(domain.ProviderNotion, backend, popups)
		require.NoError(t, err)

		_, err = adapter.Authorize(ctx, session)
		assert.ErrorIs(t, err, domain.ErrAuthorizationRequestFailed)
		var be *domain.BackendError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "Missing client id", be.Detail)
		assert.Empty(t, popups.windows, "no popup without a URL")
	})

	t.Run("empty url", func(t *testing.T) {
		backend := &mockBackend{}
		backend.On("Authorize", ctx, "notion", session).Return("  ", nil)
		adapter, err := NewProviderAdapter(domain.ProviderNotion, backend, &fakePopups{})
		require.NoError(t, err)

		_, err = adapter.Authorize(ctx, session)
		assert.ErrorIs(t, err, domain.ErrAuthorizationRequestFailed)
	})

	t.Run("popup blocked", func(t *testing.T) {
		backend := &mockBackend{}
		backend.On("Authorize", ctx, "notion", session).Return("https://auth.example.com", nil)
		adapter, err := NewProviderAdapter(domain.ProviderNotion, backend, &fakePopups{err: errors.New("no browser")})
		require.NoError(t, err)

		_, err = adapter.Authorize(ctx, session)
		assert.ErrorIs(t, err, domain.ErrPopupBlocked)
		assert.NotErrorIs(t, err, domain.ErrAuthorizationRequestFailed)
	})
}

func TestProviderAdapter_RetrieveCredentialsErrors(t *testing.T) {
	ctx := context.Background()
	session := domain.DefaultSessionContext()

	t.Run("backend error", func(t *testing.T) {
		backend := &mockBackend{}
		backend.On("Credentials", ctx, "hubspot", session).
			Return(domain.Credential{}, &domain.BackendError{StatusCode: 400, Detail: "No credentials found."})
		adapter, err := NewProviderAdapter(domain.ProviderHubSpot, backend, &fakePopups{})
		require.NoError(t, err)

		_, err = adapter.RetrieveCredentials(ctx, session)
		assert.ErrorIs(t, err, domain.ErrCredentialRetrievalFailed)
		assert.Equal(t, "No credentials found.", domain.UserMessage(err, ""))
	})

	t.Run("empty payload", func(t *testing.T) {
		backend := &mockBackend{}
		backend.On("Credentials", ctx, "hubspot", session).
			Return(domain.NewCredential([]byte(`null`)), nil)
		adapter, err := NewProviderAdapter(domain.ProviderHubSpot, backend, &fakePopups{})
		require.NoError(t, err)

		cred, err := adapter.RetrieveCredentials(ctx, session)
		assert.ErrorIs(t, err, domain.ErrCredentialRetrievalFailed)
		assert.True(t, cred.IsEmpty())
	})
}
