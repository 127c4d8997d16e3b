package services

import (
	"errors"
	"fmt"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// fallbackMessage is shown when the backend gave no detail.
func fallbackMessage(kind error, provider domain.ProviderName) string {
	switch {
	case errors.Is(kind, domain.ErrAuthorizationRequestFailed):
		return fmt.Sprintf("%s auth error", provider)
	case errors.Is(kind, domain.ErrPopupBlocked):
		return fmt.Sprintf("Could not open the %s authorization window", provider)
	case errors.Is(kind, domain.ErrCredentialRetrievalFailed):
		return fmt.Sprintf("Could not retrieve %s credentials", provider)
	case errors.Is(kind, domain.ErrLoadRequestFailed):
		return fmt.Sprintf("Could not load %s data", provider)
	default:
		return fmt.Sprintf("%s: unexpected error", provider)
	}
}

// newNotice converts an operation failure into a user-visible notification.
func newNotice(kind error, provider domain.ProviderName, err error) *domain.Notice {
	return &domain.Notice{
		Kind:     kind,
		Provider: provider,
		Message:  domain.UserMessage(err, fallbackMessage(kind, provider)),
	}
}
