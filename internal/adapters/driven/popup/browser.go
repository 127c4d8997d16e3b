package popup

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

// Ensure BrowserOpener implements the interface.
var _ driven.PopupOpener = (*BrowserOpener)(nil)

// Launcher starts a browser at url without waiting for it.
type Launcher func(url string) error

// BrowserOpener opens the authorization URL in the system browser.
// A browser tab cannot be watched from here, so the window counts as closed
// once the user dismisses it from the terminal.
type BrowserOpener struct {
	launch Launcher
	out    io.Writer
}

// NewBrowserOpener creates an opener using the platform browser launcher.
// The URL is also written to out so it can be opened by hand.
func NewBrowserOpener(out io.Writer) *BrowserOpener {
	return &BrowserOpener{launch: OpenBrowser, out: out}
}

// NewBrowserOpenerWithLauncher creates an opener with a custom launcher.
func NewBrowserOpenerWithLauncher(launch Launcher, out io.Writer) *BrowserOpener {
	return &BrowserOpener{launch: launch, out: out}
}

// Open launches the browser. A launcher failure means the popup was blocked.
func (o *BrowserOpener) Open(_ context.Context, url, title string) (domain.PopupWindow, error) {
	if err := o.launch(url); err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	logger.Debug("popup: opened %q in browser", title)

	if o.out != nil {
		fmt.Fprintf(o.out, "%s opened in your browser. If nothing appeared, visit:\n  %s\n", title, url)
	}
	return newWindow(url, nil), nil
}

// OpenBrowser opens the default browser to the given URL.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the launcher; it exits as soon as the browser has the URL.
	go func() { _ = cmd.Wait() }() //nolint:errcheck // launcher exit status is irrelevant
	return nil
}
