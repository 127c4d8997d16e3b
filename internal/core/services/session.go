package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driving"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

// DefaultPollInterval is how often the popup is checked for closure.
const DefaultPollInterval = 250 * time.Millisecond

// SessionOptions tunes an AuthSession.
type SessionOptions struct {
	// PollInterval is the popup liveness check interval. Defaults to DefaultPollInterval.
	PollInterval time.Duration

	// PopupTimeout treats the popup as closed once it has been open this long.
	// Zero waits indefinitely.
	PopupTimeout time.Duration

	// Sleep blocks for one poll interval. Defaults to time.Sleep.
	Sleep func(time.Duration)

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (o SessionOptions) withDefaults() SessionOptions {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// SessionResult tells the owner of a session what to do after an update.
type SessionResult struct {
	// Next is the follow-up command, or nil.
	Next driving.Cmd

	// Connected is true exactly once, on the update that reached StateConnected.
	Connected bool

	// Credential is the retrieved payload when Connected is true.
	Credential domain.Credential

	// Notice is set when the update surfaced a failure to the user.
	Notice *domain.Notice
}

// AuthSession tracks one adapter instance through the authorization
// lifecycle: idle, connecting, awaiting popup closure, fetching credentials,
// then connected or failed.
//
// A session is driven from a single UI loop. Backend calls and poll ticks are
// returned as commands; their results come back through Update tagged with
// the session ID and the connect attempt that issued them. Results for an
// older attempt are dropped, so only one poll timer is ever live and
// credentials are fetched at most once per connect.
type AuthSession struct {
	id      string
	adapter driving.ProviderAdapter
	opts    SessionOptions

	state   domain.SessionState
	attempt uint64
	ctx     context.Context
	session domain.SessionContext

	handle   *domain.AuthorizationHandle
	openedAt time.Time
	closed   bool
}

// NewAuthSession creates an idle session for adapter.
func NewAuthSession(adapter driving.ProviderAdapter, opts SessionOptions) *AuthSession {
	return &AuthSession{
		id:      uuid.NewString(),
		adapter: adapter,
		opts:    opts.withDefaults(),
		state:   domain.StateIdle,
		ctx:     context.Background(),
	}
}

// ID returns the session identifier carried by every message it issues.
func (s *AuthSession) ID() string {
	return s.id
}

// Provider returns the provider served by the session's adapter.
func (s *AuthSession) Provider() domain.ProviderName {
	return s.adapter.Provider()
}

// State returns the current lifecycle state.
func (s *AuthSession) State() domain.SessionState {
	return s.state
}

// Attempt returns the number of connect actions started so far.
func (s *AuthSession) Attempt() uint64 {
	return s.attempt
}

// AuthorizationURL returns the URL of the popup while it is open.
func (s *AuthSession) AuthorizationURL() string {
	if s.handle == nil || s.state != domain.StateAwaitingClosure {
		return ""
	}
	return s.handle.URL
}

// Window returns the open popup window, or nil.
func (s *AuthSession) Window() domain.PopupWindow {
	if s.handle == nil {
		return nil
	}
	return s.handle.Window
}

// Connect starts a new attempt using a snapshot of session.
// From AwaitingClosure the open popup is abandoned and its timer invalidated.
func (s *AuthSession) Connect(ctx context.Context, session domain.SessionContext) (driving.Cmd, error) {
	switch {
	case s.closed:
		return nil, domain.ErrSessionClosed
	case s.state == domain.StateConnected:
		return nil, domain.ErrAlreadyConnected
	case !s.state.CanConnect():
		return nil, domain.ErrSessionBusy
	}

	if s.state == domain.StateAwaitingClosure {
		logger.Debug("%s: restarting connect, abandoning popup of attempt %d", s.Provider(), s.attempt)
		s.closeWindow()
	}

	if ctx == nil {
		ctx = context.Background()
	}
	s.attempt++
	s.ctx = ctx
	s.session = session
	s.handle = nil
	s.transition(domain.StateConnecting)

	adapter, attempt, id := s.adapter, s.attempt, s.id
	return func() driving.Msg {
		handle, err := adapter.Authorize(ctx, session)
		return AuthorizeCompleted{Session: id, Attempt: attempt, Handle: handle, Err: err}
	}, nil
}

// Update applies a completion message issued by this session.
func (s *AuthSession) Update(msg driving.Msg) SessionResult {
	if s.closed || msg.SessionID() != s.id {
		discardStale(msg)
		return SessionResult{}
	}

	switch msg := msg.(type) {
	case AuthorizeCompleted:
		return s.onAuthorized(msg)
	case PopupPolled:
		return s.onPolled(msg)
	case CredentialsRetrieved:
		return s.onCredentials(msg)
	}
	return SessionResult{}
}

func (s *AuthSession) onAuthorized(msg AuthorizeCompleted) SessionResult {
	if msg.Attempt != s.attempt || s.state != domain.StateConnecting {
		discardStale(msg)
		return SessionResult{}
	}

	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrPopupBlocked) {
			s.transition(domain.StateFailed)
			return SessionResult{Notice: newNotice(domain.ErrPopupBlocked, s.Provider(), msg.Err)}
		}
		s.transition(domain.StateIdle)
		return SessionResult{Notice: newNotice(domain.ErrAuthorizationRequestFailed, s.Provider(), msg.Err)}
	}

	s.handle = msg.Handle
	s.openedAt = s.opts.Now()
	s.transition(domain.StateAwaitingClosure)
	return SessionResult{Next: s.pollCmd()}
}

func (s *AuthSession) onPolled(msg PopupPolled) SessionResult {
	if msg.Attempt != s.attempt || s.state != domain.StateAwaitingClosure {
		return SessionResult{}
	}

	if !s.popupGone() {
		return SessionResult{Next: s.pollCmd()}
	}

	// The popup closing is not proof the user finished; credentials are
	// requested regardless and an empty answer fails the attempt.
	s.transition(domain.StateFetchingCredentials)

	adapter, attempt, id := s.adapter, s.attempt, s.id
	ctx, session := s.ctx, s.session
	return SessionResult{Next: func() driving.Msg {
		cred, err := adapter.RetrieveCredentials(ctx, session)
		return CredentialsRetrieved{Session: id, Attempt: attempt, Credential: cred, Err: err}
	}}
}

func (s *AuthSession) onCredentials(msg CredentialsRetrieved) SessionResult {
	if msg.Attempt != s.attempt || s.state != domain.StateFetchingCredentials {
		return SessionResult{}
	}

	s.handle = nil
	if msg.Err != nil || msg.Credential.IsEmpty() {
		err := msg.Err
		if err == nil {
			err = domain.ErrCredentialRetrievalFailed
		}
		s.transition(domain.StateFailed)
		return SessionResult{Notice: newNotice(domain.ErrCredentialRetrievalFailed, s.Provider(), err)}
	}

	s.transition(domain.StateConnected)
	return SessionResult{Connected: true, Credential: msg.Credential}
}

// popupGone reports whether the popup is closed, unreachable or timed out.
func (s *AuthSession) popupGone() bool {
	if s.handle == nil || s.handle.Window == nil {
		return true
	}
	if s.handle.Window.Closed() {
		return true
	}
	if s.opts.PopupTimeout > 0 && s.opts.Now().Sub(s.openedAt) >= s.opts.PopupTimeout {
		logger.Warn("%s: popup open for %s, treating as closed", s.Provider(), s.opts.PopupTimeout)
		s.closeWindow()
		return true
	}
	return false
}

// pollCmd schedules the next liveness check for the current attempt.
func (s *AuthSession) pollCmd() driving.Cmd {
	sleep, interval := s.opts.Sleep, s.opts.PollInterval
	id, attempt := s.id, s.attempt
	return func() driving.Msg {
		sleep(interval)
		return PopupPolled{Session: id, Attempt: attempt}
	}
}

// DismissPopup marks the open popup closed on the user's behalf, so the
// next poll moves on to credential retrieval. It reports false when no
// popup is open.
func (s *AuthSession) DismissPopup() bool {
	if s.closed || s.state != domain.StateAwaitingClosure {
		return false
	}
	w := s.Window()
	if w == nil || w.Closed() {
		return false
	}
	if d, ok := w.(domain.PopupDismisser); ok {
		d.Dismiss()
		return true
	}
	if err := w.Close(); err != nil {
		logger.Debug("%s: closing popup: %v", s.Provider(), err)
		return false
	}
	return true
}

// Close tears the session down. Messages it issued earlier are ignored from now on.
func (s *AuthSession) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.closeWindow()
	logger.Debug("%s: session %s closed in state %s", s.Provider(), s.id, s.state)
}

// Closed reports whether the session was torn down.
func (s *AuthSession) Closed() bool {
	return s.closed
}

func (s *AuthSession) closeWindow() {
	if s.handle == nil || s.handle.Window == nil {
		return
	}
	if err := s.handle.Window.Close(); err != nil {
		logger.Debug("%s: closing popup: %v", s.Provider(), err)
	}
}

func (s *AuthSession) transition(next domain.SessionState) {
	if !s.state.CanTransition(next) {
		logger.Warn("%s: illegal transition %s -> %s ignored", s.Provider(), s.state, next)
		return
	}
	logger.Transition(string(s.Provider()), s.state, next)
	s.state = next
}
