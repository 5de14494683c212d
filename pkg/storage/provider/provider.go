// Package provider constructs storage backends from declarative specs, so a
// deployment picks its platform store through configuration rather than code.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/daily-spark/quote-store/pkg/storage"
	"github.com/daily-spark/quote-store/pkg/storage/extension"
	"github.com/daily-spark/quote-store/pkg/storage/file"
	"github.com/daily-spark/quote-store/pkg/storage/memory"
	"github.com/daily-spark/quote-store/pkg/storage/sqlite"
)

// Provider knows how to validate and construct one backend kind.
type Provider interface {
	Validate(spec BackendSpec) error
	NewBackend(ctx context.Context, spec BackendSpec) (storage.Backend, error)
}

var providers = map[string]Provider{}
var providerMu = sync.RWMutex{}

// Register a backend provider under a BackendSpec field name. Panics when the
// name is already taken.
func Register(name string, provider Provider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	if _, exists := providers[name]; exists {
		panic(fmt.Errorf("storage backend %q already registered", name))
	}
	providers[name] = provider
}

// NewBackend creates the backend selected by the spec.
func NewBackend(ctx context.Context, spec BackendSpec) (storage.Backend, error) {
	name, err := backendName(spec)
	if err != nil {
		return nil, err
	}

	providerMu.RLock()
	provider, ok := providers[name]
	providerMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no registered storage backend %q", name)
	}

	if err := provider.Validate(spec); err != nil {
		return nil, fmt.Errorf("invalid %q backend spec: %w", name, err)
	}

	backend, err := provider.NewBackend(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create %q backend: %w", name, err)
	}
	return backend, nil
}

// NewService creates a storage service for the spec: the selected backend
// under the configured namespace prefix.
func NewService(ctx context.Context, spec *Spec, opts ...storage.Option) (*storage.Service, error) {
	if spec == nil {
		return nil, fmt.Errorf("no storage spec provided")
	}
	backend, err := NewBackend(ctx, spec.Backend)
	if err != nil {
		return nil, err
	}
	return storage.New(backend, spec.Prefix, opts...), nil
}

// backendName resolves the registry key from the single set field of the
// spec, using its JSON encoding rather than reflection.
func backendName(spec BackendSpec) (string, error) {
	specBytes, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal backend spec: %w", err)
	}

	specMap := map[string]interface{}{}
	if err := json.Unmarshal(specBytes, &specMap); err != nil {
		return "", fmt.Errorf("failed to unmarshal backend spec: %w", err)
	}
	if len(specMap) != 1 {
		return "", fmt.Errorf("exactly one storage backend required, found %d", len(specMap))
	}

	for name := range specMap {
		return name, nil
	}
	return "", fmt.Errorf("no storage backend configured")
}

type memoryProvider struct{}

func (memoryProvider) Validate(BackendSpec) error {
	return nil
}

func (memoryProvider) NewBackend(_ context.Context, _ BackendSpec) (storage.Backend, error) {
	return memory.New(), nil
}

type fileProvider struct{}

func (fileProvider) Validate(spec BackendSpec) error {
	if spec.File.Dir == "" {
		return fmt.Errorf("empty .File.Dir")
	}
	return nil
}

func (fileProvider) NewBackend(_ context.Context, spec BackendSpec) (storage.Backend, error) {
	return file.New(spec.File.Dir)
}

type sqliteProvider struct{}

func (sqliteProvider) Validate(spec BackendSpec) error {
	if spec.SQLite.Path == "" {
		return fmt.Errorf("empty .SQLite.Path")
	}
	return nil
}

func (sqliteProvider) NewBackend(_ context.Context, spec BackendSpec) (storage.Backend, error) {
	return sqlite.New(spec.SQLite.Path)
}

type extensionProvider struct{}

func (extensionProvider) Validate(BackendSpec) error {
	return nil
}

func (extensionProvider) NewBackend(_ context.Context, _ BackendSpec) (storage.Backend, error) {
	return extension.NewAdapter(extension.NewLoopStore()), nil
}

func init() {
	Register("memory", memoryProvider{})
	Register("file", fileProvider{})
	Register("sqlite", sqliteProvider{})
	Register("extension", extensionProvider{})
}
