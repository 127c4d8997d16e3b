package driven

// ConfigStore provides access to persisted configuration.
// Keys use dot notation for nested tables, e.g. "popup.mode".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// Keys returns every stored key in sorted order.
	Keys() []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Unset removes a key. The change is persisted immediately.
	Unset(key string) error

	// Path returns where the configuration is stored.
	Path() string
}
