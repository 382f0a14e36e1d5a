// Package eventbus provides a minimal in-process publish/subscribe channel
// with typed payloads. Delivery is synchronous and limited to the current
// process: subscribers in other processes sharing the same backing storage
// are NOT notified.
package eventbus

import "sync"

// Bus fans a published event out to every registered subscriber.
// The zero value is ready to use.
type Bus[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(T)
}

// Subscribe registers fn to be called for every subsequent Publish.
// The returned function removes the subscription; calling it more than
// once is safe.
func (b *Bus[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]func(T))
	}
	id := b.next
	b.next++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish delivers event to all current subscribers, synchronously, in
// unspecified order. Subscribers must not block.
func (b *Bus[T]) Publish(event T) {
	b.mu.Lock()
	fns := make([]func(T), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}
