// Package tui provides an interactive terminal user interface for connecting
// integrations. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
)

// Ports aggregates what the TUI drives.
type Ports struct {
	// Registry owns the integration form state.
	Registry driving.IntegrationRegistry

	// Clipboard copies text to the system clipboard. Optional.
	Clipboard func(text string) error
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Registry == nil {
		return ErrMissingRegistry
	}
	return nil
}
