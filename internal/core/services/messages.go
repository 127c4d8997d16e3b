package services

import (
	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

// discardStale closes the popup carried by a completion that will never be
// applied, so a superseded attempt cannot leave a window behind.
func discardStale(msg driving.Msg) {
	m, ok := msg.(AuthorizeCompleted)
	if !ok || m.Handle == nil || m.Handle.Window == nil {
		return
	}
	if err := m.Handle.Window.Close(); err != nil {
		logger.Debug("closing superseded popup: %v", err)
	}
}

// AuthorizeCompleted carries the result of requesting the authorization URL
// and opening the popup.
type AuthorizeCompleted struct {
	Session string
	Attempt uint64
	Handle  *domain.AuthorizationHandle
	Err     error
}

// SessionID implements driving.Msg.
func (m AuthorizeCompleted) SessionID() string { return m.Session }

// PopupPolled is one tick of the popup liveness timer.
type PopupPolled struct {
	Session string
	Attempt uint64
}

// SessionID implements driving.Msg.
func (m PopupPolled) SessionID() string { return m.Session }

// CredentialsRetrieved carries the result of the credential fetch.
type CredentialsRetrieved struct {
	Session    string
	Attempt    uint64
	Credential domain.Credential
	Err        error
}

// SessionID implements driving.Msg.
func (m CredentialsRetrieved) SessionID() string { return m.Session }

// DatasetLoaded carries the result of a data load.
type DatasetLoaded struct {
	Session    string
	Generation uint64
	Dataset    *domain.LoadedDataset
	Err        error
}

// SessionID implements driving.Msg.
func (m DatasetLoaded) SessionID() string { return m.Session }
