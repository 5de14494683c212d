package extension_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daily-spark/quote-store/pkg/storage"
	"github.com/daily-spark/quote-store/pkg/storage/extension"
	"github.com/daily-spark/quote-store/pkg/storage/memory"
)

func newTestAdapter(t *testing.T) *extension.Adapter {
	loop := extension.NewLoopStore()
	t.Cleanup(loop.Close)
	return extension.NewAdapter(loop)
}

func TestAdapterRoundTrip(t *testing.T) {
	testCtx := context.Background()
	adapter := newTestAdapter(t)

	value, err := adapter.Get(testCtx, "missing")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, adapter.Set(testCtx, "app:theme", []byte(`"dark"`)))
	value, err = adapter.Get(testCtx, "app:theme")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"dark"`), value)

	require.NoError(t, adapter.Remove(testCtx, "app:theme"))
	value, err = adapter.Get(testCtx, "app:theme")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestAdapterListAllAndClear(t *testing.T) {
	testCtx := context.Background()
	adapter := newTestAdapter(t)

	require.NoError(t, adapter.Set(testCtx, "ns1:a", []byte(`1`)))
	require.NoError(t, adapter.Set(testCtx, "ns1:b", []byte(`2`)))
	require.NoError(t, adapter.Set(testCtx, "ns2:c", []byte(`3`)))

	all, err := adapter.ListAll(testCtx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, adapter.Clear(testCtx, []string{"ns1:a", "ns1:b"}))

	all, err = adapter.ListAll(testCtx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, "ns2:c")
}

// faultyStore reports a platform error through the side channel for every
// operation, the way the extension runtime does.
type faultyStore struct {
	err error
}

func (s *faultyStore) Get(_ []string, fn func(items map[string][]byte)) {
	go fn(map[string][]byte{})
}

func (s *faultyStore) Set(_ map[string][]byte, fn func()) {
	go fn()
}

func (s *faultyStore) Remove(_ []string, fn func()) {
	go fn()
}

func (s *faultyStore) LastError() error {
	return s.err
}

func TestAdapterHarvestsSideChannelErrors(t *testing.T) {
	testCtx := context.Background()
	platformErr := fmt.Errorf("QUOTA_BYTES exceeded")
	adapter := extension.NewAdapter(&faultyStore{err: platformErr})

	_, err := adapter.Get(testCtx, "app:theme")
	assert.ErrorIs(t, err, platformErr)

	assert.ErrorIs(t, adapter.Set(testCtx, "app:theme", []byte(`"dark"`)), platformErr)
	assert.ErrorIs(t, adapter.Remove(testCtx, "app:theme"), platformErr)
	assert.ErrorIs(t, adapter.Clear(testCtx, []string{"app:theme"}), platformErr)

	_, err = adapter.ListAll(testCtx)
	assert.ErrorIs(t, err, platformErr)
}

func TestAdapterHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A store that never invokes its callbacks.
	adapter := extension.NewAdapter(deadStore{})

	_, err := adapter.Get(ctx, "app:theme")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, adapter.Set(ctx, "app:theme", []byte(`1`)), context.Canceled)
}

type deadStore struct{}

func (deadStore) Get(_ []string, _ func(items map[string][]byte)) {}
func (deadStore) Set(_ map[string][]byte, _ func())               {}
func (deadStore) Remove(_ []string, _ func())                     {}
func (deadStore) LastError() error                                { return nil }

// The facade behaves identically over the callback adapter and the plain
// synchronous backend.
func TestFacadeOverCallbackBackend(t *testing.T) {
	testCtx := context.Background()
	loop := extension.NewLoopStore()
	t.Cleanup(loop.Close)

	extStore := storage.New(extension.NewAdapter(loop), "app:")
	memStore := storage.New(memory.New(), "app:")

	for _, store := range []*storage.Service{extStore, memStore} {
		require.NoError(t, store.Set(testCtx, "streak", 7))
		assert.Equal(t, 7, store.GetSync("streak"))

		value, err := store.Get(testCtx, "streak")
		require.NoError(t, err)
		assert.Equal(t, float64(7), value)

		assert.ElementsMatch(t, []string{"streak"}, store.Keys(testCtx))
	}
}
