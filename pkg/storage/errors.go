package storage

import "fmt"

// ValidationError reports a logical key that was rejected before any backend
// call was made.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid key %q: %s", e.Key, e.Reason)
}

// BackendError reports a failure of the physical store for a single operation.
// Whether it propagates to the caller depends on the operation: reads and
// enumeration degrade to "no value", writes and removals surface it.
type BackendError struct {
	Op  string
	Key string
	Err error
}

func (e *BackendError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s failed for key '%s': %v", e.Op, e.Key, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
