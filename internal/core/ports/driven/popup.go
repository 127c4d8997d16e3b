package driven

import (
	"context"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
)

// PopupOpener opens an authorization window.
// Open must return promptly: it presents the URL and does not wait for the
// user to finish. A returned error means the window could not be opened.
type PopupOpener interface {
	Open(ctx context.Context, url, title string) (domain.PopupWindow, error)
}
