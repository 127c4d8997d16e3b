package domain

// Notice is a user-visible notification raised when an operation fails.
type Notice struct {
	// Kind is one of the user-visible failure sentinels, e.g. ErrPopupBlocked.
	Kind error
	// Provider is the provider the failing operation belonged to.
	Provider ProviderName
	// Message is the text shown to the user.
	Message string
}

// Error implements error so a Notice can be returned from CLI commands.
func (n Notice) Error() string {
	return n.Message
}

// Unwrap exposes Kind to errors.Is.
func (n Notice) Unwrap() error {
	return n.Kind
}
