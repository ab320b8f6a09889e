package driven

// ConfigStore holds flat dot-separated settings ("search.per_provider").
// Typed getters return the zero value for a missing or mistyped key.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// Set stores value and persists the store.
	Set(key string, value any) error

	// Delete removes key and persists the store. Deleting a missing key
	// is not an error.
	Delete(key string) error

	// Save persists the current values.
	Save() error

	// Load replaces the current values with the persisted ones.
	Load() error

	// Keys returns every stored key in sorted order.
	Keys() []string

	// Path describes where the values are persisted.
	Path() string
}
