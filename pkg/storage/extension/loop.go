package extension

import "sync"

// LoopStore is a CallbackStore that dispatches every operation and its
// callback from a single event-loop goroutine, mirroring the single-threaded
// scheduling of the platform it stands in for. It backs the extension
// deployment in-process and the adapter tests.
type LoopStore struct {
	ops       chan func()
	items     map[string][]byte
	lastErr   error
	closeOnce sync.Once
	done      chan struct{}
}

var _ CallbackStore = (*LoopStore)(nil)

// NewLoopStore creates an empty store and starts its event loop.
func NewLoopStore() *LoopStore {
	s := &LoopStore{
		ops:   make(chan func(), 64),
		items: map[string][]byte{},
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

// run owns items and lastErr; nothing else touches them.
func (s *LoopStore) run() {
	defer close(s.done)
	for op := range s.ops {
		op()
	}
}

func (s *LoopStore) Get(keys []string, fn func(items map[string][]byte)) {
	s.ops <- func() {
		s.lastErr = nil
		items := map[string][]byte{}
		if keys == nil {
			for key, value := range s.items {
				items[key] = append([]byte(nil), value...)
			}
		} else {
			for _, key := range keys {
				if value, ok := s.items[key]; ok {
					items[key] = append([]byte(nil), value...)
				}
			}
		}
		fn(items)
	}
}

func (s *LoopStore) Set(items map[string][]byte, fn func()) {
	s.ops <- func() {
		s.lastErr = nil
		for key, value := range items {
			s.items[key] = append([]byte(nil), value...)
		}
		fn()
	}
}

func (s *LoopStore) Remove(keys []string, fn func()) {
	s.ops <- func() {
		s.lastErr = nil
		for _, key := range keys {
			delete(s.items, key)
		}
		fn()
	}
}

// LastError is only meaningful inside a callback, where it runs on the event
// loop goroutine.
func (s *LoopStore) LastError() error {
	return s.lastErr
}

// Close stops the event loop after draining queued operations.
func (s *LoopStore) Close() {
	s.closeOnce.Do(func() {
		close(s.ops)
	})
	<-s.done
}
