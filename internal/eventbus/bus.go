// Package eventbus provides an in-process, typed publish/subscribe bus.
// Publishing never blocks: an event is dropped for a subscriber whose buffer
// is full.
package eventbus

import (
	"context"
	"sync"
	"sync/atomic"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 32

// Bus fans events of type T out to every subscriber.
type Bus[T any] struct {
	mu      sync.RWMutex
	subs    []chan T
	closed  bool
	buffer  int
	dropped atomic.Uint64
}

// New creates a Bus. A buffer <= 0 uses DefaultBuffer.
func New[T any](buffer int) *Bus[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Bus[T]{buffer: buffer}
}

// Publish delivers e to every subscriber with room in its buffer and returns
// the number of subscribers reached.
func (b *Bus[T]) Publish(e T) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return 0
	}
	n := 0
	for _, ch := range b.subs {
		select {
		case ch <- e:
			n++
		default:
			b.dropped.Add(1)
		}
	}
	return n
}

// Dropped returns how many deliveries were skipped because a subscriber was full.
func (b *Bus[T]) Dropped() uint64 { return b.dropped.Load() }

// Subscribe registers a subscriber. The channel is closed by Unsubscribe or Close.
func (b *Bus[T]) Subscribe() <-chan T {
	ch := make(chan T, b.buffer)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus[T]) Unsubscribe(sub <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Close closes the bus and all subscriber channels. It is safe to call twice.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}

// Consume subscribes to b and calls fn for every event until ctx is done or
// the bus is closed. Events already buffered when ctx is done are still
// delivered. It blocks, so callers usually run it in a goroutine.
func Consume[T any](ctx context.Context, b *Bus[T], fn func(T)) {
	sub := b.Subscribe()
	defer b.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			drain(sub, fn)
			return
		case e, ok := <-sub:
			if !ok {
				return
			}
			fn(e)
		}
	}
}

func drain[T any](sub <-chan T, fn func(T)) {
	for {
		select {
		case e, ok := <-sub:
			if !ok {
				return
			}
			fn(e)
		default:
			return
		}
	}
}
