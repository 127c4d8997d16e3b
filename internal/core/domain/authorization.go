package domain

// PopupWindow is a window opened at an authorization URL.
// Closed must not block; it reports true once the window is closed or can
// no longer be reached.
type PopupWindow interface {
	Closed() bool
	Close() error
}

// PopupDismisser is implemented by windows the user can mark closed from
// the terminal when the window itself cannot be observed.
type PopupDismisser interface {
	Dismiss()
}

// AuthorizationHandle is the result of a successful authorize call.
type AuthorizationHandle struct {
	Provider ProviderName
	// URL is the provider authorization URL returned by the backend.
	URL string
	// Window is the popup opened at URL.
	Window PopupWindow
}
