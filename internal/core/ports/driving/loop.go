package driving

// Msg is the completion of a Cmd, delivered back to the UI loop.
// Every Msg names the authorization session that issued it so results
// from a superseded session can be recognised and dropped.
type Msg interface {
	SessionID() string
}

// Cmd is blocking work run off the UI loop. It returns the Msg to feed back
// into IntegrationRegistry.Update. A nil Cmd means there is nothing to do.
type Cmd func() Msg
