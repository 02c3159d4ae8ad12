package lazy

import (
	"sync"
	"sync/atomic"
)

// Disposer is the optional disposal contract for cached values. A value that
// implements it is disposed before its slot is replaced or recycled.
type Disposer interface {
	Dispose()
}

// Factory produces the cached value. A factory error leaves the slot empty;
// the next Get retries (failures are not cached).
type Factory[T any] func() (T, error)

// Option configures a Cached instance at construction.
type Option[T any] func(*Cached[T])

// WithValidity installs a predicate consulted on each Get and Available call.
// A cached value the predicate rejects is treated as absent and disposed
// before recomputation.
func WithValidity[T any](pred func(T) bool) Option[T] {
	return func(c *Cached[T]) {
		c.valid = pred
	}
}

// Cached is a single-slot cache holding one lazily produced value of type T.
// Get and Recycle serialize on an internal mutex; Available is lock-free and
// may race benignly with an in-progress recompute, so callers must tolerate a
// momentarily stale answer.
type Cached[T any] struct {
	mu      sync.Mutex
	factory Factory[T]
	valid   func(T) bool

	value T
	has   atomic.Bool
	snap  atomic.Value
}

// New constructs a cache around the given factory.
func New[T any](factory Factory[T], opts ...Option[T]) *Cached[T] {
	c := &Cached[T]{factory: factory}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value, computing it on first call, after a recycle,
// or after the validity predicate rejects the held value. Concurrent callers
// block until the single in-flight computation completes and then share its
// result. A factory error is returned as-is and leaves the slot empty.
func (c *Cached[T]) Get() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.has.Load() {
		if c.valid == nil || c.valid(c.value) {
			return c.value, nil
		}
		c.disposeLocked()
	}

	value, err := c.factory()
	if err != nil {
		var zero T
		return zero, err
	}
	c.value = value
	c.snap.Store(value)
	c.has.Store(true)
	return value, nil
}

// Available reports whether a valid value currently exists without triggering
// computation or taking the mutex.
func (c *Cached[T]) Available() bool {
	if !c.has.Load() {
		return false
	}
	if c.valid == nil {
		return true
	}
	value, ok := c.snap.Load().(T)
	if !ok {
		return false
	}
	return c.valid(value)
}

// Peek returns the currently cached value without computing. The second
// return reports whether a value was present.
func (c *Cached[T]) Peek() (T, bool) {
	var zero T
	if !c.has.Load() {
		return zero, false
	}
	value, ok := c.snap.Load().(T)
	if !ok {
		return zero, false
	}
	return value, true
}

// Recycle disposes the held value, if any, and marks the slot empty so the
// next Get recomputes. Recycling an empty slot is a no-op.
func (c *Cached[T]) Recycle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.has.Load() {
		return
	}
	c.disposeLocked()
}

func (c *Cached[T]) disposeLocked() {
	if d, ok := any(c.value).(Disposer); ok {
		d.Dispose()
	}
	var zero T
	c.value = zero
	c.has.Store(false)
	c.snap.Store(zero)
}
