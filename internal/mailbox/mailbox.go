package mailbox

import (
	"context"
	"sync"
)

// Mailbox is a single-slot buffer where the latest item always wins.
// It is NOT a queue. It holds at most one pending item, so a burst of Puts
// collapses into one Take.
type Mailbox[T any] struct {
	mu    sync.Mutex
	item  *T
	ready chan struct{}
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{ready: make(chan struct{}, 1)}
}

// Put stores an item, replacing any existing one.
// It never blocks, so it is safe to call from a signal or input callback.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	m.item = &v
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// Take blocks until an item is available or ctx is done.
func (m *Mailbox[T]) Take(ctx context.Context) (T, bool) {
	for {
		if v := m.TryTake(); v != nil {
			return *v, true
		}
		select {
		case <-m.ready:
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}

// TryTake returns the item if present, or nil if empty.
// It never blocks.
func (m *Mailbox[T]) TryTake() *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.item == nil {
		return nil
	}

	v := m.item
	m.item = nil
	return v
}

// Ready fires after a Put. A receive does not guarantee an item is still
// there; follow it with TryTake.
func (m *Mailbox[T]) Ready() <-chan struct{} {
	return m.ready
}

// HasItem reports whether an item is currently waiting.
func (m *Mailbox[T]) HasItem() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.item != nil
}
