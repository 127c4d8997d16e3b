// Package form provides the integration form: session fields, provider
// picker and the connect/load actions.
package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/components/input"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/components/list"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/keymap"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/messages"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/styles"
	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// Snapshot is the registry state the form renders.
type Snapshot struct {
	Provider domain.ProviderName
	State    domain.SessionState
	URL      string
	CanLoad  bool
	Loading  bool
	Params   domain.IntegrationParameters
}

// Focus identifies the focused form element.
type Focus int

const (
	FocusUser Focus = iota
	FocusOrg
	FocusProvider
	FocusActions
	focusCount
)

// View is the integration form.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	user    *input.Field
	org     *input.Field
	picker  *list.ProviderPicker
	spinner spinner.Model
	focus   Focus
	snap    Snapshot
	width   int
}

// NewView creates the form pre-filled with sc.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	sc domain.SessionContext,
	providers []domain.ProviderName,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Warning

	return &View{
		styles:  s,
		keymap:  km,
		user:    input.NewField(s, "User", sc.UserID),
		org:     input.NewField(s, "Organization", sc.OrgID),
		picker:  list.NewProviderPicker(s, providers),
		spinner: sp,
		width:   80,
	}
}

// Init focuses the first field and starts the spinner.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.setFocus(FocusUser), v.user.Init(), v.spinner.Tick)
}

// Update handles key presses and spinner ticks.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}

	// Cursor blink and other input messages.
	var cmd tea.Cmd
	switch v.focus {
	case FocusUser:
		v.user, cmd = v.user.Update(msg)
	case FocusOrg:
		v.org, cmd = v.org.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keymap.Next):
		return v.setFocus((v.focus + 1) % focusCount)
	case key.Matches(msg, v.keymap.Prev):
		return v.setFocus((v.focus + focusCount - 1) % focusCount)
	}

	switch v.focus {
	case FocusUser:
		return v.editField(v.user, "user_id", msg)
	case FocusOrg:
		return v.editField(v.org, "org_id", msg)
	case FocusProvider:
		var cmd tea.Cmd
		if v.picker, cmd = v.picker.Update(msg); cmd != nil {
			return cmd
		}
	}
	return v.action(msg)
}

// editField forwards msg to f and reports the new value when it changed.
func (v *View) editField(f *input.Field, name string, msg tea.KeyMsg) tea.Cmd {
	before := f.Value()
	_, cmd := f.Update(msg)
	after := f.Value()
	if after == before {
		return cmd
	}
	return tea.Batch(cmd, func() tea.Msg {
		return messages.SessionFieldChanged{Field: name, Value: after}
	})
}

// action maps an action key to its request message.
func (v *View) action(msg tea.KeyMsg) tea.Cmd {
	var req tea.Msg
	switch {
	case key.Matches(msg, v.keymap.Connect):
		req = messages.ConnectRequested{}
	case key.Matches(msg, v.keymap.Load):
		req = messages.LoadRequested{}
	case key.Matches(msg, v.keymap.Clear):
		req = messages.ClearRequested{}
	case key.Matches(msg, v.keymap.Dismiss):
		req = messages.DismissRequested{}
	case key.Matches(msg, v.keymap.CopyURL):
		req = messages.CopyURLRequested{}
	default:
		return nil
	}
	return func() tea.Msg { return req }
}

func (v *View) setFocus(f Focus) tea.Cmd {
	v.focus = f
	v.user.Blur()
	v.org.Blur()
	v.picker.Blur()

	switch f {
	case FocusUser:
		return v.user.Focus()
	case FocusOrg:
		return v.org.Focus()
	case FocusProvider:
		v.picker.Focus()
	}
	return nil
}

// Focus returns the focused element.
func (v *View) Focus() Focus {
	return v.focus
}

// Typing reports whether a text field has focus, so single-letter keys
// belong to the field.
func (v *View) Typing() bool {
	return v.focus == FocusUser || v.focus == FocusOrg
}

// SetSnapshot replaces the rendered registry state.
func (v *View) SetSnapshot(snap Snapshot) {
	v.snap = snap
	v.picker.Select(snap.Provider)
}

// Snapshot returns the rendered registry state.
func (v *View) Snapshot() Snapshot {
	return v.snap
}

// SetDimensions sets the available width.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
	v.user.SetWidth(width / 2)
	v.org.SetWidth(width / 2)
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Integrations"))
	b.WriteString("\n\n")
	b.WriteString(v.user.View())
	b.WriteString("\n")
	b.WriteString(v.org.View())
	b.WriteString("\n")
	b.WriteString(v.picker.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderConnection())
	b.WriteString("\n")
	b.WriteString(v.renderActions())
	return b.String()
}

func (v *View) renderConnection() string {
	if v.snap.Provider == "" {
		return v.styles.Muted.Render("Pick an integration to connect.")
	}

	var lines []string
	switch v.snap.State {
	case domain.StateConnected:
		lines = append(lines, v.styles.Badge.Render(fmt.Sprintf("%s Connected", v.snap.Provider)))
	case domain.StateConnecting:
		lines = append(lines, v.spinner.View()+" Requesting authorization...")
	case domain.StateAwaitingClosure:
		lines = append(lines,
			v.spinner.View()+" Complete the authorization window, then close it.",
			v.styles.Muted.Render(v.snap.URL))
	case domain.StateFetchingCredentials:
		lines = append(lines, v.spinner.View()+" Retrieving credentials...")
	default:
		lines = append(lines, v.styles.ForState(v.snap.State).Render(fmt.Sprintf("Connect to %s", v.snap.Provider)))
	}

	if provider, ok := v.snap.Params.Type(); ok && v.snap.Params.HasCredentials() {
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("type: %s  credentials: received", provider)))
	}
	if v.snap.Loading {
		lines = append(lines, v.spinner.View()+" Loading data...")
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderActions() string {
	connect := v.snap.Provider != "" && v.snap.State.CanConnect()
	load := v.snap.CanLoad && !v.snap.Loading
	popup := v.snap.State == domain.StateAwaitingClosure

	items := []string{
		v.renderAction(v.keymap.Connect, connect),
		v.renderAction(v.keymap.Dismiss, popup),
		v.renderAction(v.keymap.CopyURL, popup),
		v.renderAction(v.keymap.Load, load),
		v.renderAction(v.keymap.Clear, true),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func (v *View) renderAction(b key.Binding, enabled bool) string {
	h := b.Help()
	label := fmt.Sprintf("[%s] %s  ", h.Key, h.Desc)
	if !enabled {
		return v.styles.Muted.Render(label)
	}
	return v.styles.Normal.Render(label)
}
