// Package data renders a loaded dataset as a table or a raw JSON preview.
package data

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vectorshift/integrations-cli/internal/adapters/driving/tui/styles"
	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// minHeight is the smallest table or preview height.
const minHeight = 3

// View displays the dataset.
type View struct {
	styles  *styles.Styles
	table   table.Model
	preview viewport.Model
	dataset *domain.LoadedDataset
	width   int
	height  int
}

// NewView creates an empty data view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Foreground(s.Theme().Secondary).Bold(true)
	ts.Selected = ts.Selected.Foreground(s.Theme().Foreground).Background(s.Theme().Primary)
	t.SetStyles(ts)

	return &View{
		styles:  s,
		table:   t,
		preview: viewport.New(80, 10),
		width:   80,
		height:  10,
	}
}

// columns splits width between type, name and parent.
func columns(width int) []table.Column {
	w := width - 8
	if w < 30 {
		w = 30
	}
	return []table.Column{
		{Title: "Type", Width: w / 5},
		{Title: "Name", Width: w * 2 / 5},
		{Title: "Parent", Width: w - w/5 - w*2/5},
	}
}

// SetDataset replaces the displayed data. Passing the dataset already shown
// keeps the cursor and scroll position.
func (v *View) SetDataset(ds *domain.LoadedDataset) {
	if ds == v.dataset {
		return
	}
	v.dataset = ds

	if ds == nil {
		v.table.SetRows(nil)
		v.preview.SetContent("")
		return
	}

	switch ds.Kind {
	case domain.DatasetTable:
		rows := make([]table.Row, 0, len(ds.Rows))
		for _, r := range ds.Rows {
			rows = append(rows, table.Row{r.Object.Type, r.Object.Name, r.Object.ParentPathOrName})
		}
		v.table.SetRows(rows)
		v.table.GotoTop()
	case domain.DatasetRaw:
		v.preview.SetContent(ds.Raw)
		v.preview.GotoTop()
	}
}

// Dataset returns the displayed dataset.
func (v *View) Dataset() *domain.LoadedDataset {
	return v.dataset
}

// SelectedRow returns the cursor row, or -1 when no table is shown.
func (v *View) SelectedRow() int {
	if v.dataset == nil || v.dataset.Kind != domain.DatasetTable || len(v.dataset.Rows) == 0 {
		return -1
	}
	return v.table.Cursor()
}

// Update scrolls the table or preview.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if v.dataset == nil {
		return v, nil
	}

	var cmd tea.Cmd
	switch v.dataset.Kind {
	case domain.DatasetTable:
		v.table, cmd = v.table.Update(msg)
	case domain.DatasetRaw:
		v.preview, cmd = v.preview.Update(msg)
	}
	return v, cmd
}

// SetDimensions sizes the view.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = max(height, minHeight)

	v.table.SetColumns(columns(width))
	v.table.SetWidth(width)
	v.table.SetHeight(v.height)
	v.preview.Width = width
	v.preview.Height = v.height
}

// View renders the dataset.
func (v *View) View() string {
	if v.dataset.IsEmpty() {
		return v.styles.Muted.Render("No data loaded.")
	}

	var b strings.Builder
	switch v.dataset.Kind {
	case domain.DatasetTable:
		if len(v.dataset.Rows) == 0 {
			return v.styles.Muted.Render("No objects returned.")
		}
		b.WriteString(v.table.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d object(s)", len(v.dataset.Rows))))
	case domain.DatasetRaw:
		b.WriteString(v.styles.Panel.Render(v.preview.View()))
		if v.dataset.Truncated {
			b.WriteString("\n")
			b.WriteString(v.styles.Warning.Render("Preview truncated."))
		}
	}
	return b.String()
}
