// Package file provides a storage.Backend that keeps one file per key under
// a root directory.
package file

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/daily-spark/quote-store/pkg/storage"
)

// Store persists values as flat files. Physical keys are path-escaped so
// prefixes like "app:" or keys containing slashes stay within the root
// directory.
type Store struct {
	dir string
}

var _ storage.Backend = (*Store)(nil)

// New creates a file backend rooted at dir, creating it when missing.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("empty store directory")
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create store dir '%s': %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Type() string {
	return fmt.Sprintf("file(%s)", s.dir)
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.pathFor(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key '%s': %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if err := os.WriteFile(s.pathFor(key), value, 0600); err != nil {
		return fmt.Errorf("failed to write key '%s': %w", key, err)
	}
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	err := os.Remove(s.pathFor(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key '%s': %w", key, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := s.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListAll(_ context.Context) (map[string][]byte, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list store dir '%s': %w", s.dir, err)
	}

	all := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		key, err := url.PathUnescape(entry.Name())
		if err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read key '%s': %w", key, err)
		}
		all[key] = data
	}
	return all, nil
}

func (s *Store) pathFor(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}
