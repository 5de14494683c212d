// Package storage provides the namespaced key/value persistence layer shared
// by the application features.
//
// A Service composes a key codec, a write-through memory cache and a Backend
// into one contract with two operation families: the asynchronous family
// (Get, Set, Remove, Clear, Keys) which is authoritative and talks to the
// backend, and the synchronous family (GetSync, SetSync) which is served from
// the cache and never blocks on the backend. The synchronous reads may be
// stale or absent; callers that need freshness must use Get.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// Service is the storage facade consumed by the rest of the application. All
// keys are logical keys; the configured prefix keeps multiple features or
// instances from colliding on one physical store.
//
// Safe for concurrent use. The cache is private to the instance: two Services
// sharing a prefix on the same backend do not share a cache and can observe
// mutual staleness.
type Service struct {
	backend Backend
	codec   keyCodec
	cache   *memCache
	log     logrus.FieldLogger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger overrides the logger used for backend error reporting.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) { s.log = log }
}

// New creates a storage Service over the given backend. Every key is stored
// under the given prefix; an empty prefix claims the whole key space.
func New(backend Backend, prefix string, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		codec:   keyCodec{prefix: prefix},
		cache:   newMemCache(),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the underlying physical store.
func (s *Service) Backend() Backend {
	return s.backend
}

// Prefix returns the namespace prefix of this instance.
func (s *Service) Prefix() string {
	return s.codec.prefix
}

// Get reads a value through the backend and refreshes the cache on success.
// A backend failure is logged and degrades to nil: most callers treat a
// missing and an errored read identically and fall back to defaults. The
// returned error is non-nil only for an invalid key.
func (s *Service) Get(ctx context.Context, key string) (interface{}, error) {
	physical, err := s.codec.toPhysical(key)
	if err != nil {
		return nil, err
	}

	raw, err := s.backend.Get(ctx, physical)
	if err != nil {
		s.logBackendError("get", key, err)
		return nil, nil
	}
	if raw == nil {
		// Authoritative absence also clears any stale cached value.
		s.cache.evict(physical)
		return nil, nil
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		s.logBackendError("get", key, err)
		return nil, nil
	}

	s.cache.write(physical, value)
	return value, nil
}

// GetSync returns the last cached value for key without touching the backend.
// It returns nil when the key was never read or written through this
// instance, even if the backend holds a value.
func (s *Service) GetSync(key string) interface{} {
	physical, err := s.codec.toPhysical(key)
	if err != nil {
		return nil
	}
	value, ok := s.cache.read(physical)
	if !ok {
		return nil
	}
	return value
}

// Set persists a value. The cache is written before the backend call is
// issued so synchronous readers immediately observe the writer's intent; a
// backend failure is logged and returned, since silently losing a write would
// corrupt later reads.
func (s *Service) Set(ctx context.Context, key string, value interface{}) error {
	physical, raw, err := s.encode(key, value)
	if err != nil {
		return err
	}

	s.cache.write(physical, value)

	if err := s.backend.Set(ctx, physical, raw); err != nil {
		berr := &BackendError{Op: "set", Key: key, Err: err}
		s.logBackendError("set", key, err)
		return berr
	}
	return nil
}

// SetSync writes the cache synchronously and issues the backend write without
// waiting for completion. Backend failures are logged and never surfaced:
// this is an explicit best-effort mode for call sites that cannot block, and
// it trades away the delivery guarantee of Set. New call sites should prefer
// Set unless they genuinely cannot wait.
func (s *Service) SetSync(key string, value interface{}) error {
	physical, raw, err := s.encode(key, value)
	if err != nil {
		return err
	}

	s.cache.write(physical, value)

	go func() {
		if err := s.backend.Set(context.Background(), physical, raw); err != nil {
			s.logBackendError("setSync", key, err)
		}
	}()
	return nil
}

// Remove deletes a key from the cache and the backend. Removing an absent key
// succeeds; a backend failure is logged and returned.
func (s *Service) Remove(ctx context.Context, key string) error {
	physical, err := s.codec.toPhysical(key)
	if err != nil {
		return err
	}

	s.cache.evict(physical)

	if err := s.backend.Remove(ctx, physical); err != nil {
		s.logBackendError("remove", key, err)
		return &BackendError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// Clear removes every key owned by this instance's prefix and nothing else;
// other namespaces sharing the physical store are untouched.
func (s *Service) Clear(ctx context.Context) error {
	all, err := s.backend.ListAll(ctx)
	if err != nil {
		s.logBackendError("clear", "", err)
		return &BackendError{Op: "clear", Err: err}
	}

	var owned []string
	for physical := range all {
		if _, ok := s.codec.toLogical(physical); ok {
			owned = append(owned, physical)
		}
	}

	s.cache.evictAll()

	if len(owned) == 0 {
		return nil
	}
	if err := s.backend.Clear(ctx, owned); err != nil {
		s.logBackendError("clear", "", err)
		return &BackendError{Op: "clear", Err: err}
	}
	return nil
}

// Keys enumerates the logical keys owned by this instance, in no particular
// order. Enumeration is best-effort: a backend failure is logged and yields
// an empty slice.
func (s *Service) Keys(ctx context.Context) []string {
	all, err := s.backend.ListAll(ctx)
	if err != nil {
		s.logBackendError("keys", "", err)
		return []string{}
	}

	keys := make([]string, 0, len(all))
	for physical := range all {
		if logical, ok := s.codec.toLogical(physical); ok {
			keys = append(keys, logical)
		}
	}
	return keys
}

// GetString reads a value and coerces it to a string.
func (s *Service) GetString(ctx context.Context, key string) (string, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return cast.ToString(value), nil
}

// GetInt reads a value and coerces it to an int. JSON numbers decode as
// float64; coercion absorbs the difference.
func (s *Service) GetInt(ctx context.Context, key string) (int, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return cast.ToInt(value), nil
}

// GetBool reads a value and coerces it to a bool.
func (s *Service) GetBool(ctx context.Context, key string) (bool, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return cast.ToBool(value), nil
}

// GetStringSync is the cache-only variant of GetString.
func (s *Service) GetStringSync(key string) string {
	return cast.ToString(s.GetSync(key))
}

// GetIntSync is the cache-only variant of GetInt.
func (s *Service) GetIntSync(key string) int {
	return cast.ToInt(s.GetSync(key))
}

// GetBoolSync is the cache-only variant of GetBool.
func (s *Service) GetBoolSync(key string) bool {
	return cast.ToBool(s.GetSync(key))
}

// GetAs reads a value and decodes it into T via a JSON round trip. Absence
// and degraded reads yield the zero value with found=false.
func GetAs[T any](ctx context.Context, s *Service, key string) (T, bool, error) {
	var out T

	value, err := s.Get(ctx, key)
	if err != nil || value == nil {
		return out, false, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return out, false, fmt.Errorf("failed to re-encode value for key '%s': %w", key, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("failed to decode value for key '%s': %w", key, err)
	}
	return out, true, nil
}

func (s *Service) encode(key string, value interface{}) (physical string, raw []byte, err error) {
	physical, err = s.codec.toPhysical(key)
	if err != nil {
		return "", nil, err
	}
	raw, err = json.Marshal(value)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode value for key '%s': %w", key, err)
	}
	return physical, raw, nil
}

// logBackendError reports a caught backend error with the operation and the
// logical key. Logging never blocks or fails the calling operation.
func (s *Service) logBackendError(op, key string, err error) {
	s.log.WithField("op", op).WithField("key", key).WithError(err).
		Errorf("Storage backend %s failed", s.backend.Type())
}
