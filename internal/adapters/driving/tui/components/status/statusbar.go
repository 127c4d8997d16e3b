// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/keymap"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/styles"
	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// Level classifies the bar message.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Bar shows the session state, the latest notice and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   domain.SessionState
	message string
	level   Level
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  domain.StateIdle,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	state := s.styles.ForState(s.state).Render(s.state.String())
	if s.message == "" {
		return state
	}
	if s.level == LevelError {
		return state + " " + s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
	}
	return state + " " + s.styles.Normal.Render(s.message)
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the displayed session state.
func (s *Bar) SetState(state domain.SessionState) {
	s.state = state
}

// State returns the displayed session state.
func (s *Bar) State() domain.SessionState {
	return s.state
}

// SetMessage shows an informational message.
func (s *Bar) SetMessage(message string) {
	s.message = message
	s.level = LevelInfo
}

// SetError shows an error message.
func (s *Bar) SetError(message string) {
	s.message = message
	s.level = LevelError
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// Level returns the level of the current message.
func (s *Bar) Level() Level {
	return s.level
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear removes the message.
func (s *Bar) Clear() {
	s.message = ""
	s.level = LevelInfo
}
