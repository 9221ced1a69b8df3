package domain

// KeyValueStore is the durable local storage used for small client state.
// Values are lists of strings; ordering is not preserved meaningfully.
type KeyValueStore interface {
	// GetStrings returns the list stored under key, false if absent
	GetStrings(key string) ([]string, bool)
	// SaveStrings replaces the list stored under key
	SaveStrings(key string, values []string) error
	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error

	Close() error
}
