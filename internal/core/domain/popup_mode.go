package domain

import (
	"fmt"
	"strings"
)

// PopupMode selects how authorization windows are opened.
type PopupMode string

const (
	// PopupModeBrowser opens the system browser.
	PopupModeBrowser PopupMode = "browser"
	// PopupModeCommand runs a configured program and watches it exit.
	PopupModeCommand PopupMode = "command"
	// PopupModeManual prints the URL only.
	PopupModeManual PopupMode = "manual"
)

// ParsePopupMode resolves a mode name case-insensitively.
// An empty name means PopupModeBrowser.
func ParsePopupMode(s string) (PopupMode, error) {
	switch PopupMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PopupModeBrowser:
		return PopupModeBrowser, nil
	case PopupModeCommand:
		return PopupModeCommand, nil
	case PopupModeManual:
		return PopupModeManual, nil
	default:
		return "", fmt.Errorf("%w: unknown popup mode %q (want browser, command or manual)", ErrInvalidInput, s)
	}
}
