package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// datasetColumns are the displayed object fields.
var datasetColumns = []string{"Type", "Name", "Parent"}

// printDataset renders a loaded dataset as a table or a raw preview.
func printDataset(w io.Writer, ds *domain.LoadedDataset) {
	if ds.IsEmpty() {
		fmt.Fprintln(w, "No data loaded.")
		return
	}

	switch ds.Kind {
	case domain.DatasetTable:
		if len(ds.Rows) == 0 {
			fmt.Fprintln(w, "No objects returned.")
			return
		}
		rows := make([][]string, 0, len(ds.Rows))
		for _, row := range ds.Rows {
			rows = append(rows, []string{row.Object.Type, row.Object.Name, row.Object.ParentPathOrName})
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(datasetColumns...).
			Rows(rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		fmt.Fprintln(w, t.String())
		fmt.Fprintf(w, "%d object(s)\n", len(ds.Rows))
	case domain.DatasetRaw:
		fmt.Fprintln(w, ds.Raw)
		if ds.Truncated {
			fmt.Fprintln(w, "(preview truncated)")
		}
	}
}

// printCredential writes the credential JSON, indented and coloured on a terminal.
func printCredential(w io.Writer, cred domain.Credential) {
	out := pretty.Pretty([]byte(cred.JSON()))
	if isTerminal(w) {
		out = pretty.Color(out, nil)
	}
	fmt.Fprint(w, string(out))
}

// isTerminal reports whether v is an interactive terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
