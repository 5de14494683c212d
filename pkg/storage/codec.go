package storage

import "strings"

// keyCodec maps logical keys to the prefixed physical keys sent to the
// backend. The prefix is fixed for the lifetime of a Service, so the mapping
// is a bijection within one namespace.
type keyCodec struct {
	prefix string
}

// toPhysical derives the physical key for a logical key. An empty logical key
// is rejected before it can ever reach a backend.
func (c keyCodec) toPhysical(logical string) (string, error) {
	if logical == "" {
		return "", &ValidationError{Key: logical, Reason: "empty key"}
	}
	return c.prefix + logical, nil
}

// toLogical recovers the logical key from a physical key. Returns false for
// keys belonging to a different namespace, which is how enumeration results
// are filtered to the owning prefix.
func (c keyCodec) toLogical(physical string) (string, bool) {
	if !strings.HasPrefix(physical, c.prefix) {
		return "", false
	}
	logical := strings.TrimPrefix(physical, c.prefix)
	if logical == "" {
		return "", false
	}
	return logical, true
}
