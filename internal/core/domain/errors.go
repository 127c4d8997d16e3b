package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownProvider indicates a provider name outside the supported set.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrNoProviderSelected indicates an action that needs a selected provider.
	ErrNoProviderSelected = errors.New("no provider selected")

	// ErrNoCredentials indicates the data loader was used before a connection.
	ErrNoCredentials = errors.New("no credentials: connect a provider first")

	// ErrMalformedResponse indicates the backend returned a body that is not JSON.
	ErrMalformedResponse = errors.New("malformed backend response")

	// Session Errors.

	// ErrSessionBusy indicates a backend call for this session is in flight.
	ErrSessionBusy = errors.New("authorization already in progress")

	// ErrAlreadyConnected indicates the session reached its terminal state.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrSessionClosed indicates the session was superseded by another provider.
	ErrSessionClosed = errors.New("session closed")

	// User-visible failures. Each is raised at the operation boundary that
	// issued the async call and is never retried automatically.

	// ErrAuthorizationRequestFailed indicates the backend did not return an authorization URL.
	ErrAuthorizationRequestFailed = errors.New("authorization request failed")

	// ErrPopupBlocked indicates the authorization window could not be opened.
	ErrPopupBlocked = errors.New("authorization window blocked")

	// ErrCredentialRetrievalFailed indicates the backend returned no usable credentials.
	ErrCredentialRetrievalFailed = errors.New("credential retrieval failed")

	// ErrLoadRequestFailed indicates the backend load request failed.
	ErrLoadRequestFailed = errors.New("load request failed")
)

// BackendError is an error response from the integrations backend.
type BackendError struct {
	StatusCode int
	// Detail is the "detail" field of the JSON error body, if any.
	Detail string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// UserMessage derives the text shown to the user for err. The backend detail
// is surfaced verbatim when present; otherwise fallback is used.
func UserMessage(err error, fallback string) string {
	var backendErr *BackendError
	if errors.As(err, &backendErr) && backendErr.Detail != "" {
		return backendErr.Detail
	}
	if fallback != "" {
		return fallback
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
