package tui

import "errors"

// ErrMissingRegistry is returned when the integration registry is not provided.
var ErrMissingRegistry = errors.New("tui: integration registry is required")

// ErrNoPopup is shown when there is no authorization window to act on.
var ErrNoPopup = errors.New("no authorization window is open")

// ErrClipboardUnavailable is shown when no clipboard is configured.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")
