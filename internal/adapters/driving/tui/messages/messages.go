// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewForm is the integration form.
	ViewForm ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewForm:
		return "form"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Integration carries a registry completion back into the UI loop.
type Integration struct {
	Msg driving.Msg
}

// ProviderSelected is sent when the provider picker changes.
// An empty Provider deselects.
type ProviderSelected struct {
	Provider domain.ProviderName
}

// SessionFieldChanged is sent when the user or organisation input is edited.
type SessionFieldChanged struct {
	Field string
	Value string
}

// ConnectRequested asks to start the authorization flow.
type ConnectRequested struct{}

// LoadRequested asks to load the connected provider's objects.
type LoadRequested struct{}

// ClearRequested asks to discard the loaded dataset.
type ClearRequested struct{}

// DismissRequested asks to close the open authorization window.
type DismissRequested struct{}

// CopyURLRequested asks to copy the authorization URL to the clipboard.
type CopyURLRequested struct{}

// ClipboardCopied reports the outcome of a copy.
type ClipboardCopied struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
