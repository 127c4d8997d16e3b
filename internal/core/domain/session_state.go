package domain

// SessionState is the lifecycle state of one provider authorization session.
type SessionState int

const (
	// StateIdle is the initial state; connect is allowed.
	StateIdle SessionState = iota
	// StateConnecting means the authorization URL is being requested.
	StateConnecting
	// StateAwaitingClosure means the popup is open and being polled.
	StateAwaitingClosure
	// StateFetchingCredentials means the popup closed and credentials are being retrieved.
	StateFetchingCredentials
	// StateConnected is terminal for the session.
	StateConnected
	// StateFailed allows a retry on the next connect.
	StateFailed
)

// transitions lists the legal successor states for each state.
var transitions = map[SessionState][]SessionState{
	StateIdle:                {StateConnecting},
	StateConnecting:          {StateAwaitingClosure, StateIdle, StateFailed},
	StateAwaitingClosure:     {StateFetchingCredentials, StateConnecting},
	StateFetchingCredentials: {StateConnected, StateFailed},
	StateConnected:           nil,
	StateFailed:              {StateConnecting},
}

// String returns the state name used in logs and the UI.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateAwaitingClosure:
		return "awaiting_closure"
	case StateFetchingCredentials:
		return "fetching_credentials"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CanTransition reports whether moving from s to next is legal.
func (s SessionState) CanTransition(next SessionState) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanConnect reports whether a connect action may start from this state.
// AwaitingClosure is included: reconnecting abandons the open popup.
func (s SessionState) CanConnect() bool {
	return s == StateIdle || s == StateFailed || s == StateAwaitingClosure
}

// IsBusy reports whether a backend call is in flight.
func (s SessionState) IsBusy() bool {
	return s == StateConnecting || s == StateFetchingCredentials
}
