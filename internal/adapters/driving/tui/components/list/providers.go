// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/messages"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/styles"
	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// noneLabel is shown for the "no provider" option.
const noneLabel = "None"

// ProviderPicker is a horizontal single-choice list of providers. Index 0
// is the empty choice.
type ProviderPicker struct {
	options  []domain.ProviderName
	selected int
	focused  bool
	styles   *styles.Styles
}

// NewProviderPicker creates a picker over providers with nothing selected.
func NewProviderPicker(s *styles.Styles, providers []domain.ProviderName) *ProviderPicker {
	if s == nil {
		s = styles.DefaultStyles()
	}

	options := make([]domain.ProviderName, 0, len(providers)+1)
	options = append(options, "")
	options = append(options, providers...)

	return &ProviderPicker{
		options: options,
		styles:  s,
	}
}

// Init initialises the picker.
func (p *ProviderPicker) Init() tea.Cmd {
	return nil
}

// Update moves the selection with left/right and emits ProviderSelected
// when it changes. Keys are ignored while unfocused.
func (p *ProviderPicker) Update(msg tea.Msg) (*ProviderPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}

	before := p.selected
	switch keyMsg.String() {
	case "left", "h":
		p.MovePrev()
	case "right", "l":
		p.MoveNext()
	}
	if p.selected == before {
		return p, nil
	}

	selected := p.Selected()
	return p, func() tea.Msg {
		return messages.ProviderSelected{Provider: selected}
	}
}

// View renders the options on one line.
func (p *ProviderPicker) View() string {
	parts := make([]string, 0, len(p.options))
	for i, opt := range p.options {
		label := string(opt)
		if opt == "" {
			label = noneLabel
		}
		if i == p.selected {
			parts = append(parts, p.styles.SelectedOption.Render(label))
		} else {
			parts = append(parts, p.styles.Option.Render(label))
		}
	}

	frame := p.styles.Field
	if p.focused {
		frame = p.styles.FocusedField
	}
	return p.styles.Label.Render("Integration") + frame.Render(strings.Join(parts, " "))
}

// Selected returns the chosen provider, or "" for none.
func (p *ProviderPicker) Selected() domain.ProviderName {
	return p.options[p.selected]
}

// Select moves to name without emitting a message. Unknown names are ignored.
func (p *ProviderPicker) Select(name domain.ProviderName) {
	for i, opt := range p.options {
		if opt == name {
			p.selected = i
			return
		}
	}
}

// MovePrev selects the previous option, stopping at the first.
func (p *ProviderPicker) MovePrev() {
	if p.selected > 0 {
		p.selected--
	}
}

// MoveNext selects the next option, stopping at the last.
func (p *ProviderPicker) MoveNext() {
	if p.selected < len(p.options)-1 {
		p.selected++
	}
}

// Focus gives the picker keyboard focus.
func (p *ProviderPicker) Focus() {
	p.focused = true
}

// Blur removes keyboard focus.
func (p *ProviderPicker) Blur() {
	p.focused = false
}

// Focused reports whether the picker has focus.
func (p *ProviderPicker) Focused() bool {
	return p.focused
}
