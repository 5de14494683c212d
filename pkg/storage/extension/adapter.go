package extension

import (
	"context"

	"github.com/daily-spark/quote-store/pkg/storage"
)

// Adapter exposes a CallbackStore as a storage.Backend, turning each
// completion callback into an awaitable result.
type Adapter struct {
	store CallbackStore
}

var _ storage.Backend = (*Adapter)(nil)

// NewAdapter wraps a platform callback store.
func NewAdapter(store CallbackStore) *Adapter {
	return &Adapter{store: store}
}

func (a *Adapter) Type() string {
	return "extension"
}

func (a *Adapter) Get(ctx context.Context, key string) ([]byte, error) {
	type result struct {
		value []byte
		err   error
	}

	done := make(chan result, 1)
	a.store.Get([]string{key}, func(items map[string][]byte) {
		if err := a.store.LastError(); err != nil {
			done <- result{err: err}
			return
		}
		done <- result{value: items[key]}
	})

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (a *Adapter) Set(ctx context.Context, key string, value []byte) error {
	return a.complete(ctx, func(fn func()) {
		a.store.Set(map[string][]byte{key: value}, fn)
	})
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	return a.complete(ctx, func(fn func()) {
		a.store.Remove([]string{key}, fn)
	})
}

func (a *Adapter) Clear(ctx context.Context, keys []string) error {
	return a.complete(ctx, func(fn func()) {
		a.store.Remove(keys, fn)
	})
}

// ListAll fetches the whole store; the platform has no per-namespace listing,
// so filtering by prefix is left to the caller.
func (a *Adapter) ListAll(ctx context.Context) (map[string][]byte, error) {
	type result struct {
		items map[string][]byte
		err   error
	}

	done := make(chan result, 1)
	a.store.Get(nil, func(items map[string][]byte) {
		if err := a.store.LastError(); err != nil {
			done <- result{err: err}
			return
		}
		done <- result{items: items}
	})

	select {
	case r := <-done:
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// complete runs a write-shaped operation and waits for its callback,
// harvesting the side-channel error inside the callback.
func (a *Adapter) complete(ctx context.Context, op func(fn func())) error {
	done := make(chan error, 1)
	op(func() {
		done <- a.store.LastError()
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
