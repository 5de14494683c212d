// Package memory provides the synchronous in-process backend. It is the
// web-platform analogue of a localStorage-like store and the default backend
// in tests.
package memory

import (
	"context"
	"sync"

	"github.com/daily-spark/quote-store/pkg/storage"
)

// Store is an in-memory storage.Backend. Values are copied on the way in and
// out so callers cannot alias the stored bytes.
type Store struct {
	mu    sync.RWMutex
	items map[string][]byte
}

var _ storage.Backend = (*Store)(nil)

// New creates an empty in-memory backend.
func New() *Store {
	return &Store{
		items: map[string][]byte{},
	}
}

func (s *Store) Type() string {
	return "memory"
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

func (s *Store) Clear(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.items, key)
	}
	return nil
}

func (s *Store) ListAll(_ context.Context) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make(map[string][]byte, len(s.items))
	for key, value := range s.items {
		all[key] = append([]byte(nil), value...)
	}
	return all, nil
}

// Len returns the number of stored keys across all namespaces.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
