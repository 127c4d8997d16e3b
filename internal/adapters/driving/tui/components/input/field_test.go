package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/styles"
)

func TestNewField(t *testing.T) {
	f := NewField(styles.DefaultStyles(), "User", "TestUser")

	require.NotNil(t, f)
	assert.Equal(t, "TestUser", f.Value())
	assert.Equal(t, "User", f.Label())
	assert.False(t, f.Focused())
}

func TestNewField_NilStyles(t *testing.T) {
	f := NewField(nil, "Org", "")

	require.NotNil(t, f)
	assert.NotNil(t, f.styles)
}

func TestField_Init(t *testing.T) {
	f := NewField(nil, "User", "")

	assert.NotNil(t, f.Init())
}

func TestField_UpdateTypesWhenFocused(t *testing.T) {
	f := NewField(nil, "User", "")
	f.Focus()

	updated, _ := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, f, updated)
	assert.Equal(t, "a", f.Value())
}

func TestField_UpdateIgnoredWhenBlurred(t *testing.T) {
	f := NewField(nil, "User", "x")

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, "x", f.Value())
}

func TestField_View(t *testing.T) {
	f := NewField(nil, "Organization", "TestOrg")

	view := f.View()

	assert.Contains(t, view, "Organization")
	assert.Contains(t, view, "TestOrg")
}

func TestField_FocusBlur(t *testing.T) {
	f := NewField(nil, "User", "")

	f.Focus()
	assert.True(t, f.Focused())

	f.Blur()
	assert.False(t, f.Focused())
}

func TestField_SetWidth(t *testing.T) {
	f := NewField(nil, "User", "")

	f.SetWidth(100)
	assert.Equal(t, 100, f.Width())
	assert.Equal(t, 80, f.textinput.Width)

	f.SetWidth(10)
	assert.Equal(t, 12, f.textinput.Width)
}
