// Package popup opens authorization windows for the OAuth flow.
package popup

import (
	"fmt"
	"io"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
)

// Mode selects how authorization windows are opened.
type Mode = domain.PopupMode

const (
	ModeBrowser = domain.PopupModeBrowser
	ModeCommand = domain.PopupModeCommand
	ModeManual  = domain.PopupModeManual
)

// ParseMode resolves a mode name. An empty name means ModeBrowser.
func ParseMode(s string) (Mode, error) {
	return domain.ParsePopupMode(s)
}

// New creates the opener for mode. command is only used by ModeCommand.
func New(mode Mode, command string, out io.Writer) (driven.PopupOpener, error) {
	switch mode {
	case ModeBrowser, "":
		return NewBrowserOpener(out), nil
	case ModeCommand:
		return NewCommandOpener(command)
	case ModeManual:
		return NewManualOpener(out), nil
	default:
		return nil, fmt.Errorf("%w: unknown popup mode %q", domain.ErrInvalidInput, mode)
	}
}
