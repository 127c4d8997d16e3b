package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_FocusBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Next.Keys(), "tab")
	assert.Contains(t, km.Next.Keys(), "enter")
	assert.Contains(t, km.Prev.Keys(), "shift+tab")
}

func TestDefaultKeyMap_ProviderBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Left.Keys(), "left")
	assert.Contains(t, km.Right.Keys(), "right")
}

func TestDefaultKeyMap_ActionBindingsAreDistinct(t *testing.T) {
	km := DefaultKeyMap()

	seen := map[string]string{}
	for _, b := range km.ActionHelp() {
		for _, k := range b.Keys() {
			prev, dup := seen[k]
			assert.False(t, dup, "key %q bound to %s and %s", k, prev, b.Help().Desc)
			seen[k] = b.Help().Desc
		}
	}
	assert.NotContains(t, seen, "l", "load must not shadow provider navigation")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 3)
	assert.Equal(t, km.Quit, bindings[2])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	assert.Len(t, bindings[1], 3) // Connect, Dismiss, CopyURL
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("c", km.Connect))
	assert.True(t, Matches("L", km.Load))
	assert.True(t, Matches("k", km.Up))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("l", km.Load))
	assert.False(t, Matches("down", km.Up))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Next", km.Next},
		{"Prev", km.Prev},
		{"Connect", km.Connect},
		{"Load", km.Load},
		{"Clear", km.Clear},
		{"Dismiss", km.Dismiss},
		{"CopyURL", km.CopyURL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
