package provider_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daily-spark/quote-store/pkg/storage/provider"
)

func TestNewBackendSelectsBySpec(t *testing.T) {
	testCtx := context.Background()

	tests := []struct {
		name     string
		spec     provider.BackendSpec
		wantType string
	}{
		{name: "memory", spec: provider.BackendSpec{Memory: &provider.MemorySpec{}}, wantType: "memory"},
		{name: "extension", spec: provider.BackendSpec{Extension: &provider.ExtensionSpec{}}, wantType: "extension"},
	}

	for _, tt := range tests {
		ttp := tt
		t.Run(ttp.name, func(t *testing.T) {
			backend, err := provider.NewBackend(testCtx, ttp.spec)
			require.NoError(t, err)
			assert.Equal(t, ttp.wantType, backend.Type())
		})
	}
}

func TestNewBackendFileAndSQLite(t *testing.T) {
	testCtx := context.Background()

	fileBackend, err := provider.NewBackend(testCtx, provider.BackendSpec{
		File: &provider.FileSpec{Dir: t.TempDir()},
	})
	require.NoError(t, err)
	assert.Contains(t, fileBackend.Type(), "file(")

	sqliteBackend, err := provider.NewBackend(testCtx, provider.BackendSpec{
		SQLite: &provider.SQLiteSpec{Path: filepath.Join(t.TempDir(), "store.db")},
	})
	require.NoError(t, err)
	assert.Contains(t, sqliteBackend.Type(), "sqlite(")
}

func TestNewBackendRejectsBadSpecs(t *testing.T) {
	testCtx := context.Background()

	// No backend selected.
	_, err := provider.NewBackend(testCtx, provider.BackendSpec{})
	assert.Error(t, err)

	// More than one backend selected.
	_, err = provider.NewBackend(testCtx, provider.BackendSpec{
		Memory: &provider.MemorySpec{},
		File:   &provider.FileSpec{Dir: t.TempDir()},
	})
	assert.Error(t, err)

	// Selected but invalid.
	_, err = provider.NewBackend(testCtx, provider.BackendSpec{
		File: &provider.FileSpec{},
	})
	assert.Error(t, err)

	_, err = provider.NewBackend(testCtx, provider.BackendSpec{
		SQLite: &provider.SQLiteSpec{},
	})
	assert.Error(t, err)
}

func TestNewService(t *testing.T) {
	testCtx := context.Background()

	service, err := provider.NewService(testCtx, &provider.Spec{
		Prefix:  "app:",
		Backend: provider.BackendSpec{Memory: &provider.MemorySpec{}},
	})
	require.NoError(t, err)
	assert.Equal(t, "app:", service.Prefix())

	require.NoError(t, service.Set(testCtx, "theme", "dark"))
	assert.Equal(t, "dark", service.GetSync("theme"))

	_, err = provider.NewService(testCtx, nil)
	assert.Error(t, err)
}
