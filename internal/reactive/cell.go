// Package reactive provides observable value cells with publish-on-change semantics.
package reactive

import (
	"sync"
)

// Cell holds a value and notifies subscribers when it changes.
//
// Setting a value equal to the current one publishes nothing. Subscribers run
// synchronously on the goroutine that called Set, in subscription order, after the
// cell lock has been released, so a subscriber may read or set the cell again.
type Cell[T comparable] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   []subscription[T]
}

type subscription[T comparable] struct {
	id int
	fn func(next, prev T)
}

// NewCell creates a cell holding initial.
func NewCell[T comparable](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores v and publishes it when it differs from the current value.
// Returns true when subscribers were notified.
func (c *Cell[T]) Set(v T) bool {
	c.mu.Lock()
	prev := c.value
	if prev == v {
		c.mu.Unlock()
		return false
	}
	c.value = v
	subs := make([]subscription[T], len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(v, prev)
	}
	return true
}

// Update applies fn to the current value and sets the result.
func (c *Cell[T]) Update(fn func(T) T) bool {
	return c.Set(fn(c.Get()))
}

// Subscribe registers fn for change notifications and returns a function that
// removes the subscription. The returned function is safe to call more than once.
func (c *Cell[T]) Subscribe(fn func(next, prev T)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription[T]{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (c *Cell[T]) Subscribers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs)
}
