// Package mailbox holds the pending cleanup trigger.
package mailbox

import (
	"context"
	"sync"
)

// Mailbox is a single-slot buffer where the latest value wins.
// Triggers that arrive while one is already pending replace it, so a burst
// of events results in a single cleanup pass.
type Mailbox[T any] struct {
	mu   sync.Mutex
	slot chan T
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{slot: make(chan T, 1)}
}

// Put stores v, replacing any pending value. It never blocks.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.slot:
	default:
	}
	m.slot <- v
}

// Take blocks until a value is available or ctx is done.
func (m *Mailbox[T]) Take(ctx context.Context) (T, bool) {
	select {
	case v := <-m.slot:
		return v, true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}
