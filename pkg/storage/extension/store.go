// Package extension adapts a completion-callback key/value store, the idiom
// of browser-extension storage areas, to the storage.Backend contract.
//
// The platform store never returns errors: it reports them through a side
// channel that is only meaningful while one of its callbacks is running. The
// Adapter inspects that channel after every call and converts it into an
// ordinary error result, so a platform failure is never left unhandled.
package extension

// CallbackStore is the contract of the underlying platform store. Callbacks
// are invoked exactly once per operation; implementations decide on which
// goroutine.
type CallbackStore interface {
	// Get fetches the given keys; absent keys are omitted from items.
	// A nil keys slice fetches the entire store.
	Get(keys []string, fn func(items map[string][]byte))

	// Set stores all given items.
	Set(items map[string][]byte, fn func())

	// Remove deletes the given keys.
	Remove(keys []string, fn func())

	// LastError reports the platform error of the operation whose callback
	// is currently running, or nil. It is only meaningful inside a
	// callback.
	LastError() error
}
