package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/components/status"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/keymap"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/messages"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/styles"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/views/data"
	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/views/form"
	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
)

// formHeight is the number of lines the form takes above the data view.
const formHeight = 16

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// registry is ports.Registry.
	registry driving.IntegrationRegistry

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	formView  *form.View
	dataView  *data.View
	statusBar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	reg := ports.Registry

	a := &App{
		ports:       ports,
		registry:    reg,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		formView:    form.NewView(s, km, reg.SessionContext(), reg.Providers()),
		dataView:    data.NewView(s),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewForm,
	}
	a.sync()
	return a, nil
}

// WithContext sets the context passed to connect and load.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("integrations"),
		a.formView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ProviderSelected:
		if err := a.registry.SelectProvider(msg.Provider); err != nil {
			a.fail(err)
		} else {
			a.statusBar.Clear()
		}
		a.sync()
		return a, nil

	case messages.SessionFieldChanged:
		if err := a.registry.UpdateSessionContext(msg.Field, msg.Value); err != nil {
			a.fail(err)
		}
		return a, nil

	case messages.ConnectRequested:
		cmd, err := a.registry.Connect(a.ctx)
		if err != nil {
			a.fail(err)
		} else {
			a.statusBar.Clear()
		}
		a.sync()
		return a, wrap(cmd)

	case messages.LoadRequested:
		cmd, err := a.registry.Load(a.ctx)
		if err != nil {
			a.fail(err)
		}
		a.sync()
		return a, wrap(cmd)

	case messages.ClearRequested:
		a.registry.Clear()
		a.sync()
		return a, nil

	case messages.DismissRequested:
		if !a.registry.DismissPopup() {
			a.fail(ErrNoPopup)
		}
		return a, nil

	case messages.CopyURLRequested:
		return a, a.copyURL()

	case messages.ClipboardCopied:
		if msg.Err != nil {
			a.fail(fmt.Errorf("copy failed: %w", msg.Err))
		} else {
			a.statusBar.SetMessage("Authorization URL copied")
		}
		return a, nil

	case messages.Integration:
		next := a.registry.Update(msg.Msg)
		a.sync()
		return a, wrap(next)

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Spinner ticks and cursor blinks.
	var cmd tea.Cmd
	a.formView, cmd = a.formView.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		if key.Matches(msg, a.keymap.Back) || key.Matches(msg, a.keymap.Help) {
			a.currentView = messages.ViewForm
			return nil
		}
		if key.Matches(msg, a.keymap.Quit) {
			return tea.Quit
		}
		return nil
	}

	if !a.formView.Typing() {
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return tea.Quit
		case key.Matches(msg, a.keymap.Help):
			a.currentView = messages.ViewHelp
			return nil
		case key.Matches(msg, a.keymap.Up), key.Matches(msg, a.keymap.Down):
			var cmd tea.Cmd
			a.dataView, cmd = a.dataView.Update(msg)
			return cmd
		}
	}

	var cmd tea.Cmd
	a.formView, cmd = a.formView.Update(msg)
	return cmd
}

func (a *App) copyURL() tea.Cmd {
	url := a.registry.AuthorizationURL()
	if url == "" {
		a.fail(ErrNoPopup)
		return nil
	}
	if a.ports.Clipboard == nil {
		a.fail(ErrClipboardUnavailable)
		return nil
	}
	clip := a.ports.Clipboard
	return func() tea.Msg {
		return messages.ClipboardCopied{Err: clip(url)}
	}
}

// fail records err and shows it in the status bar.
func (a *App) fail(err error) {
	a.err = err
	a.statusBar.SetError(userText(err))
}

// userText returns the text shown for err.
func userText(err error) string {
	var notice domain.Notice
	if errors.As(err, &notice) {
		return notice.Message
	}
	return err.Error()
}

// sync copies registry state into the views and surfaces notices.
func (a *App) sync() {
	provider, _ := a.registry.Selected()
	a.formView.SetSnapshot(form.Snapshot{
		Provider: provider,
		State:    a.registry.State(),
		URL:      a.registry.AuthorizationURL(),
		CanLoad:  a.registry.CanLoad(),
		Loading:  a.registry.Loading(),
		Params:   a.registry.Parameters(),
	})
	a.dataView.SetDataset(a.registry.Dataset())
	a.statusBar.SetState(a.registry.State())

	for _, n := range a.registry.Notices() {
		a.fail(n)
	}
}

// wrap adapts a registry command to Bubbletea.
func wrap(cmd driving.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.Integration{Msg: cmd()}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			a.formView.View(),
			"",
			a.dataView.View(),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("Action keys apply when the integration picker or actions row has focus.\n[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.formView.SetDimensions(width, height)
	a.dataView.SetDimensions(width, height-formHeight)
	a.statusBar.SetWidth(width)
}
