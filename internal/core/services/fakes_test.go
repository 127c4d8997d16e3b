package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
)

// --- Fakes shared by the services tests ---

// fakeWindow implements domain.PopupWindow.
type fakeWindow struct {
	url        string
	closed     atomic.Bool
	closeCalls int
}

func (w *fakeWindow) Closed() bool { return w.closed.Load() }

func (w *fakeWindow) Close() error {
	w.closeCalls++
	w.closed.Store(true)
	return nil
}

// dismiss simulates the user closing the window.
func (w *fakeWindow) dismiss() { w.closed.Store(true) }

// fakePopups implements driven.PopupOpener.
type fakePopups struct {
	err         error
	closeOnOpen bool
	windows     []*fakeWindow
	lastTitle   string
}

func (p *fakePopups) Open(_ context.Context, url, title string) (domain.PopupWindow, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.lastTitle = title
	w := &fakeWindow{url: url}
	if p.closeOnOpen {
		w.dismiss()
	}
	p.windows = append(p.windows, w)
	return w, nil
}

func (p *fakePopups) last() *fakeWindow {
	if len(p.windows) == 0 {
		return nil
	}
	return p.windows[len(p.windows)-1]
}

// fakeBackend implements driven.IntegrationBackend.
type fakeBackend struct {
	authorizeURL string
	authorizeErr error
	credential   domain.Credential
	credErr      error
	loadBody     []byte
	loadErr      error
	pingErr      error

	authorizeCalls int
	credCalls      int
	loadCalls      int
	slugs          []string
	sessions       []domain.SessionContext
	loadedCreds    []string
}

func (b *fakeBackend) Authorize(_ context.Context, slug string, session domain.SessionContext) (string, error) {
	b.authorizeCalls++
	b.slugs = append(b.slugs, slug)
	b.sessions = append(b.sessions, session)
	if b.authorizeErr != nil {
		return "", b.authorizeErr
	}
	return b.authorizeURL, nil
}

func (b *fakeBackend) Credentials(_ context.Context, slug string, session domain.SessionContext) (domain.Credential, error) {
	b.credCalls++
	b.slugs = append(b.slugs, slug)
	b.sessions = append(b.sessions, session)
	if b.credErr != nil {
		return domain.Credential{}, b.credErr
	}
	return b.credential, nil
}

func (b *fakeBackend) Load(_ context.Context, slug string, cred domain.Credential) ([]byte, error) {
	b.loadCalls++
	b.slugs = append(b.slugs, slug)
	b.loadedCreds = append(b.loadedCreds, cred.JSON())
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return b.loadBody, nil
}

func (b *fakeBackend) Ping(_ context.Context) error {
	return b.pingErr
}

func newFakes() (*fakeBackend, *fakePopups) {
	return &fakeBackend{authorizeURL: "https://auth.example.com/authorize?state=abc"}, &fakePopups{}
}

// testSessionOptions never sleeps between polls.
func testSessionOptions() SessionOptions {
	return SessionOptions{Sleep: func(time.Duration) {}}
}

// drive runs cmd and feeds every resulting message back into r until no
// follow-up command remains. maxSteps guards against an open popup.
func drive(r *Registry, cmd driving.Cmd, maxSteps int) int {
	steps := 0
	for cmd != nil && steps < maxSteps {
		cmd = r.Update(cmd())
		steps++
	}
	return steps
}
