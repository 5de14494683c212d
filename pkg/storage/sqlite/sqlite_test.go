package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daily-spark/quote-store/pkg/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	testCtx := context.Background()
	store := newTestStore(t)

	value, err := store.Get(testCtx, "missing")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, store.Set(testCtx, "app:theme", []byte(`"dark"`)))
	value, err = store.Get(testCtx, "app:theme")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"dark"`), value)

	// Upsert overwrites.
	require.NoError(t, store.Set(testCtx, "app:theme", []byte(`"light"`)))
	value, err = store.Get(testCtx, "app:theme")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"light"`), value)

	require.NoError(t, store.Remove(testCtx, "app:theme"))
	value, err = store.Get(testCtx, "app:theme")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestStoreClearAndListAll(t *testing.T) {
	testCtx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(testCtx, "ns1:a", []byte(`1`)))
	require.NoError(t, store.Set(testCtx, "ns1:b", []byte(`2`)))
	require.NoError(t, store.Set(testCtx, "ns2:c", []byte(`3`)))

	all, err := store.ListAll(testCtx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, store.Clear(testCtx, []string{"ns1:a", "ns1:b"}))
	require.NoError(t, store.Clear(testCtx, nil))

	all, err = store.ListAll(testCtx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, "ns2:c")
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	testCtx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	store, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(testCtx, "app:streak", []byte(`7`)))
	require.NoError(t, store.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get(testCtx, "app:streak")
	require.NoError(t, err)
	assert.Equal(t, []byte(`7`), value)
}
