package storage

import "context"

// Backend is the capability set a physical key/value store must expose. It is
// the only contract through which the facade talks to a platform store; all
// keys at this level are physical (prefixed) keys and all values are JSON
// bytes.
//
// Backends have no notion of namespaces, so enumeration always fetches the
// whole store via ListAll and the caller filters by prefix.
type Backend interface {
	// Type returns a short description of the backend for diagnostics.
	Type() string

	// Get returns the value stored under key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear deletes exactly the given keys, never the whole store; other
	// namespaces may share the physical store.
	Clear(ctx context.Context, keys []string) error

	// ListAll returns every key/value pair in the physical store.
	ListAll(ctx context.Context) (map[string][]byte, error)
}
