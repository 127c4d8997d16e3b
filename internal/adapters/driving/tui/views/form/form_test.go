package form

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/messages"
	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

func newForm() *View {
	v := NewView(nil, nil, domain.DefaultSessionContext(), domain.AllProviders())
	v.setFocus(FocusUser)
	return v
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and returns the first message that arrives promptly.
// Batches are expanded; cursor blink ticks are abandoned.
func collect(cmd tea.Cmd) tea.Msg {
	msgs := drain(cmd)
	if len(msgs) == 0 {
		return nil
	}
	return msgs[0]
}

func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func TestNewView_PrefillsSessionContext(t *testing.T) {
	v := newForm()

	view := v.View()
	assert.Contains(t, view, domain.DefaultUserID)
	assert.Contains(t, view, domain.DefaultOrgID)
	assert.Contains(t, view, "Pick an integration")
}

func TestView_TabCyclesFocus(t *testing.T) {
	v := newForm()

	order := []Focus{FocusOrg, FocusProvider, FocusActions, FocusUser}
	for _, want := range order {
		v.Update(tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, want, v.Focus())
	}
}

func TestView_ShiftTabGoesBack(t *testing.T) {
	v := newForm()

	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})

	assert.Equal(t, FocusActions, v.Focus())
	assert.False(t, v.Typing())
}

func TestView_TypingEmitsFieldChange(t *testing.T) {
	v := newForm()

	_, cmd := v.Update(runes("!"))

	assert.Contains(t, drain(cmd), messages.SessionFieldChanged{Field: "user_id", Value: domain.DefaultUserID + "!"})
	assert.True(t, v.Typing())
}

func TestView_OrgFieldChange(t *testing.T) {
	v := newForm()
	v.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, cmd := v.Update(runes("2"))

	assert.Contains(t, drain(cmd), messages.SessionFieldChanged{Field: "org_id", Value: domain.DefaultOrgID + "2"})
}

func TestView_ActionKeysIgnoredWhileTyping(t *testing.T) {
	v := newForm()

	v.Update(runes("c"))

	assert.Equal(t, domain.DefaultUserID+"c", v.user.Value())
}

func TestView_ActionKeys(t *testing.T) {
	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"c", messages.ConnectRequested{}},
		{"L", messages.LoadRequested{}},
		{"x", messages.ClearRequested{}},
		{"d", messages.DismissRequested{}},
		{"y", messages.CopyURLRequested{}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := newForm()
			v.setFocus(FocusActions)

			_, cmd := v.Update(runes(tt.key))

			assert.Equal(t, tt.want, collect(cmd))
		})
	}
}

func TestView_PickerEmitsSelection(t *testing.T) {
	v := newForm()
	v.setFocus(FocusProvider)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRight})

	assert.Equal(t, messages.ProviderSelected{Provider: domain.ProviderAirtable}, collect(cmd))
}

func TestView_UnboundKeyOnActionsIsNoop(t *testing.T) {
	v := newForm()
	v.setFocus(FocusActions)

	_, cmd := v.Update(runes("z"))

	assert.Nil(t, cmd)
}

func TestView_SnapshotRendering(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{"idle", Snapshot{Provider: domain.ProviderNotion}, "Connect to Notion"},
		{"connecting", Snapshot{Provider: domain.ProviderNotion, State: domain.StateConnecting}, "Requesting authorization"},
		{"awaiting", Snapshot{
			Provider: domain.ProviderNotion,
			State:    domain.StateAwaitingClosure,
			URL:      "https://auth.example.com/x",
		}, "https://auth.example.com/x"},
		{"fetching", Snapshot{Provider: domain.ProviderNotion, State: domain.StateFetchingCredentials}, "Retrieving credentials"},
		{"connected", Snapshot{Provider: domain.ProviderHubSpot, State: domain.StateConnected}, "HubSpot Connected"},
		{"loading", Snapshot{Provider: domain.ProviderHubSpot, State: domain.StateConnected, Loading: true}, "Loading data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newForm()
			v.SetSnapshot(tt.snap)

			assert.Contains(t, v.View(), tt.want)
			assert.Equal(t, tt.snap.Provider, v.picker.Selected())
		})
	}
}

func TestView_ShowsReceivedCredentialsWithoutSecret(t *testing.T) {
	v := newForm()
	var params domain.IntegrationParameters
	params.Merge(domain.ProviderAirtable, domain.NewCredential([]byte(`{"access_token":"secret"}`)))

	v.SetSnapshot(Snapshot{Provider: domain.ProviderAirtable, State: domain.StateConnected, Params: params, CanLoad: true})

	view := v.View()
	assert.Contains(t, view, "credentials: received")
	assert.NotContains(t, view, "secret")
}
