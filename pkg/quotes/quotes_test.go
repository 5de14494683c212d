package quotes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daily-spark/quote-store/pkg/quotes"
	"github.com/daily-spark/quote-store/pkg/storage"
	"github.com/daily-spark/quote-store/pkg/storage/memory"
)

func newTestLibrary() (*quotes.Library, *storage.Service) {
	store := storage.New(memory.New(), "quotes:")
	return quotes.NewLibrary(store), store
}

func TestAddAndGet(t *testing.T) {
	testCtx := context.Background()
	library, _ := newTestLibrary()

	added, err := library.Add(testCtx, quotes.Quote{Text: "Carpe diem", Author: "Horace"})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.False(t, added.AddedAt.IsZero())

	got, err := library.Get(testCtx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Carpe diem", got.Text)
	assert.Equal(t, "Horace", got.Author)

	missing, err := library.Get(testCtx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAddRejectsEmptyText(t *testing.T) {
	testCtx := context.Background()
	library, _ := newTestLibrary()

	_, err := library.Add(testCtx, quotes.Quote{Text: "   "})
	assert.Error(t, err)
}

func TestListAndRemove(t *testing.T) {
	testCtx := context.Background()
	library, _ := newTestLibrary()

	first, err := library.Add(testCtx, quotes.Quote{Text: "one"})
	require.NoError(t, err)
	_, err = library.Add(testCtx, quotes.Quote{Text: "two"})
	require.NoError(t, err)

	listed, err := library.List(testCtx)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	require.NoError(t, library.Remove(testCtx, first.ID))
	listed, err = library.List(testCtx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, "two", listed[0].Text)
}

func TestCurrent(t *testing.T) {
	testCtx := context.Background()
	library, _ := newTestLibrary()

	current, err := library.Current(testCtx)
	require.NoError(t, err)
	assert.Nil(t, current)

	added, err := library.Add(testCtx, quotes.Quote{Text: "Carpe diem"})
	require.NoError(t, err)

	assert.Error(t, library.SetCurrent(testCtx, "nope"))
	require.NoError(t, library.SetCurrent(testCtx, added.ID))

	current, err = library.Current(testCtx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, added.ID, current.ID)

	// The marker and quote were just written, so the cache-only variant
	// sees them without a backend call.
	sync := library.CurrentSync()
	require.NotNil(t, sync)
	assert.Equal(t, added.ID, sync.ID)
}

func TestLibrariesAreNamespaced(t *testing.T) {
	testCtx := context.Background()
	backend := memory.New()
	mine := quotes.NewLibrary(storage.New(backend, "mine:"))
	theirs := quotes.NewLibrary(storage.New(backend, "theirs:"))

	_, err := mine.Add(testCtx, quotes.Quote{Text: "mine only"})
	require.NoError(t, err)

	listed, err := theirs.List(testCtx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestImportPack(t *testing.T) {
	testCtx := context.Background()
	library, _ := newTestLibrary()

	pack := []byte(`
name: starter
quotes:
  - text: "Carpe diem"
    author: Horace
    tags: [latin, classic]
  - text: "Stay hungry"
  - text: ""
`)

	count, err := library.ImportPack(testCtx, pack)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	listed, err := library.List(testCtx)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	_, err = library.ImportPack(testCtx, []byte(`name: empty`))
	assert.Error(t, err)

	_, err = library.ImportPack(testCtx, []byte(`{not yaml`))
	assert.Error(t, err)
}
