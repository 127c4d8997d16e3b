package data

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

func decode(t *testing.T, body string) *domain.LoadedDataset {
	t.Helper()
	ds, err := domain.DecodeDataset([]byte(body), 20)
	require.NoError(t, err)
	return ds
}

func TestView_EmptyByDefault(t *testing.T) {
	v := NewView(nil)

	assert.Contains(t, v.View(), "No data loaded.")
	assert.Equal(t, -1, v.SelectedRow())
}

func TestView_Table(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(100, 10)

	v.SetDataset(decode(t, `[
		{"type":"Database","name":"Tasks","parent_path_or_name":"Workspace"},
		{"type":"Page","name":"Roadmap","parent_path_or_name":"Tasks"}
	]`))

	view := v.View()
	assert.Contains(t, view, "Type")
	assert.Contains(t, view, "Tasks")
	assert.Contains(t, view, "Roadmap")
	assert.Contains(t, view, "2 object(s)")
	assert.Equal(t, 0, v.SelectedRow())
}

func TestView_TableNavigation(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(100, 10)
	v.SetDataset(decode(t, `[{"name":"a"},{"name":"b"},{"name":"c"}]`))

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, 2, v.SelectedRow())
}

func TestView_SameDatasetKeepsCursor(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(100, 10)
	ds := decode(t, `[{"name":"a"},{"name":"b"}]`)
	v.SetDataset(ds)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	v.SetDataset(ds)

	assert.Equal(t, 1, v.SelectedRow())
}

func TestView_EmptyArray(t *testing.T) {
	v := NewView(nil)

	v.SetDataset(decode(t, `[]`))

	assert.Contains(t, v.View(), "No objects returned.")
	assert.Equal(t, -1, v.SelectedRow())
}

func TestView_RawPreview(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(100, 10)

	v.SetDataset(decode(t, `{"results":[1,2,3],"next":"cursor-abcdefghijklmnop"}`))

	view := v.View()
	assert.Contains(t, view, `{"results"`)
	assert.Contains(t, view, "Preview truncated.")
}

func TestView_ClearResets(t *testing.T) {
	v := NewView(nil)
	v.SetDataset(decode(t, `[{"name":"a"}]`))

	v.SetDataset(nil)

	assert.Nil(t, v.Dataset())
	assert.Contains(t, v.View(), "No data loaded.")
}

func TestView_SetDimensionsClampsHeight(t *testing.T) {
	v := NewView(nil)

	v.SetDimensions(40, -5)

	assert.Equal(t, minHeight, v.height)
}
