package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

func TestDataLoader_Table(t *testing.T) {
	ctx := context.Background()
	cred := domain.NewCredential([]byte(`{"token":"abc"}`))
	backend := &mockBackend{}
	backend.On("Load", ctx, "airtable", cred).
		Return([]byte(`[{"type":"table","name":"Tasks","parent_path_or_name":"Base1"}]`), nil)

	ds, err := NewDataLoader(backend, 0).Load(ctx, domain.ProviderAirtable, cred)
	require.NoError(t, err)
	assert.Equal(t, domain.DatasetTable, ds.Kind)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "Tasks", ds.Rows[0].Object.Name)
	backend.AssertExpectations(t)
}

func TestDataLoader_RawUsesPreviewLimit(t *testing.T) {
	ctx := context.Background()
	cred := domain.NewCredential([]byte(`{"token":"abc"}`))
	backend := &mockBackend{}
	backend.On("Load", ctx, "notion", mock.Anything).
		Return([]byte(`{"results":"`+strings.Repeat("a", 100)+`"}`), nil)

	ds, err := NewDataLoader(backend, 20).Load(ctx, domain.ProviderNotion, cred)
	require.NoError(t, err)
	assert.Equal(t, domain.DatasetRaw, ds.Kind)
	assert.Len(t, ds.Raw, 20)
	assert.True(t, ds.Truncated)
}

func TestDataLoader_Errors(t *testing.T) {
	ctx := context.Background()
	cred := domain.NewCredential([]byte(`{"token":"abc"}`))

	t.Run("backend error keeps detail", func(t *testing.T) {
		backend := &mockBackend{}
		backend.On("Load", ctx, "hubspot", cred).
			Return(nil, &domain.BackendError{StatusCode: 401, Detail: "Unauthorized"})

		_, err := NewDataLoader(backend, 0).Load(ctx, domain.ProviderHubSpot, cred)
		assert.ErrorIs(t, err, domain.ErrLoadRequestFailed)
		assert.Equal(t, "Unauthorized", domain.UserMessage(err, ""))
	})

	t.Run("malformed body", func(t *testing.T) {
		backend := &mockBackend{}
		backend.On("Load", ctx, "hubspot", cred).Return([]byte(`<html>`), nil)

		_, err := NewDataLoader(backend, 0).Load(ctx, domain.ProviderHubSpot, cred)
		assert.ErrorIs(t, err, domain.ErrLoadRequestFailed)
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	})

	t.Run("transport error", func(t *testing.T) {
		backend := &mockBackend{}
		backend.On("Load", ctx, "hubspot", cred).Return(nil, errors.New("connection reset"))

		_, err := NewDataLoader(backend, 0).Load(ctx, domain.ProviderHubSpot, cred)
		assert.ErrorIs(t, err, domain.ErrLoadRequestFailed)
	})

	t.Run("no credentials", func(t *testing.T) {
		backend := &mockBackend{}
		_, err := NewDataLoader(backend, 0).Load(ctx, domain.ProviderHubSpot, domain.Credential{})
		assert.ErrorIs(t, err, domain.ErrNoCredentials)
		backend.AssertNotCalled(t, "Load", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewDataLoader(&mockBackend{}, 0).Load(ctx, "Dropbox", cred)
		assert.ErrorIs(t, err, domain.ErrUnknownProvider)
	})
}
