package popup

import (
	"sync"
	"sync/atomic"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// Ensure Window implements the interface.
var _ domain.PopupWindow = (*Window)(nil)

// Dismisser is implemented by windows the user closes from the terminal.
type Dismisser = domain.PopupDismisser

// Window is a popup whose closure is observed without blocking.
type Window struct {
	url     string
	closed  atomic.Bool
	done    chan struct{}
	once    sync.Once
	onClose func() error
}

func newWindow(url string, onClose func() error) *Window {
	return &Window{
		url:     url,
		done:    make(chan struct{}),
		onClose: onClose,
	}
}

// URL returns the address the window was opened at.
func (w *Window) URL() string {
	return w.url
}

// Closed reports whether the window is gone.
func (w *Window) Closed() bool {
	return w.closed.Load()
}

// Done is closed once the window is gone.
func (w *Window) Done() <-chan struct{} {
	return w.done
}

// Dismiss marks the window closed by the user.
func (w *Window) Dismiss() {
	w.markClosed()
}

// Close closes the window. Calling it more than once is safe.
func (w *Window) Close() error {
	var err error
	if !w.Closed() && w.onClose != nil {
		err = w.onClose()
	}
	w.markClosed()
	return err
}

func (w *Window) markClosed() {
	w.once.Do(func() {
		w.closed.Store(true)
		close(w.done)
	})
}
