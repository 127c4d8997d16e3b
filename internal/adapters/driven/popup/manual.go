package popup

import (
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
)

// Ensure ManualOpener implements the interface.
var _ driven.PopupOpener = (*ManualOpener)(nil)

// ManualOpener prints the URL for the user to open themselves and, when a
// clipboard is available, copies it there.
type ManualOpener struct {
	out  io.Writer
	copy func(string) error
}

// NewManualOpener creates an opener that writes to out.
func NewManualOpener(out io.Writer) *ManualOpener {
	return &ManualOpener{out: out, copy: CopyToClipboard}
}

// Open never fails: printing the URL cannot be blocked.
func (o *ManualOpener) Open(_ context.Context, url, title string) (domain.PopupWindow, error) {
	if o.out != nil {
		fmt.Fprintf(o.out, "%s: open this URL in a browser:\n  %s\n", title, url)
		if o.copy != nil && o.copy(url) == nil {
			fmt.Fprintln(o.out, "(copied to clipboard)")
		}
	}
	return newWindow(url, nil), nil
}

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}
