// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#6366F1"), // Indigo
		Secondary:  lipgloss.Color("#38BDF8"), // Sky
		Foreground: lipgloss.Color("#E2E8F0"),
		Muted:      lipgloss.Color("#64748B"),
		Success:    lipgloss.Color("#4ADE80"),
		Warning:    lipgloss.Color("#FACC15"),
		Error:      lipgloss.Color("#F87171"),
		Border:     lipgloss.Color("#334155"),
		Bar:        lipgloss.Color("#0F172A"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title   lipgloss.Style
	Label   lipgloss.Style
	Normal  lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Field frames an unfocused input; FocusedField a focused one.
	Field        lipgloss.Style
	FocusedField lipgloss.Style

	// Option is an unselected provider; SelectedOption the chosen one.
	Option         lipgloss.Style
	SelectedOption lipgloss.Style

	// Badge marks a connected integration.
	Badge lipgloss.Style

	Panel     lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	field := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return &Styles{
		theme: theme,

		Title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Label:   lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Width(14),
		Normal:  lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		Field:        field,
		FocusedField: field.BorderForeground(theme.Primary),

		Option: lipgloss.NewStyle().Foreground(theme.Muted).Padding(0, 1),
		SelectedOption: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Bar).
			Background(theme.Success).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// ForState returns the style used to render a session state.
func (s *Styles) ForState(state domain.SessionState) lipgloss.Style {
	switch state {
	case domain.StateConnected:
		return s.Success
	case domain.StateFailed:
		return s.Error
	case domain.StateConnecting, domain.StateAwaitingClosure, domain.StateFetchingCredentials:
		return s.Warning
	default:
		return s.Muted
	}
}
