// Package event provides a named, synchronous publish/subscribe channel.
// Delivery is unbuffered and ordered: Trigger calls every listener that is
// subscribed at the time of the call, in subscription order, before it
// returns. Listeners added later never observe earlier payloads.
package event

import (
	"strings"
	"sync"
)

// Listener receives an event payload.
type Listener[T any] func(payload T)

type subscription[T any] struct {
	id int
	fn Listener[T]
}

// Event is a single publish point. The zero value is not usable; construct
// with New.
type Event[T any] struct {
	name string

	mu        sync.Mutex
	listeners []subscription[T]
	nextID    int
}

// New returns an event channel identified by name (for example
// "question:change").
func New[T any](name string) *Event[T] {
	return &Event[T]{name: strings.TrimSpace(name)}
}

// Name reports the channel identifier.
func (e *Event[T]) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// On subscribes fn and returns a function that removes the subscription.
// Calling the returned function more than once is harmless.
func (e *Event[T]) On(fn Listener[T]) (off func()) {
	if e == nil || fn == nil {
		return func() {}
	}

	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, subscription[T]{id: id, fn: fn})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { e.off(id) })
	}
}

func (e *Event[T]) off(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for idx, sub := range e.listeners {
		if sub.id == id {
			e.listeners = append(e.listeners[:idx:idx], e.listeners[idx+1:]...)
			return
		}
	}
}

// Trigger delivers payload to the current subscribers. The subscriber list is
// snapshotted first, so listeners may subscribe or unsubscribe while the
// event is being delivered.
func (e *Event[T]) Trigger(payload T) {
	if e == nil {
		return
	}

	e.mu.Lock()
	if len(e.listeners) == 0 {
		e.mu.Unlock()
		return
	}
	snapshot := append([]subscription[T](nil), e.listeners...)
	e.mu.Unlock()

	for _, sub := range snapshot {
		sub.fn(payload)
	}
}

// Len reports the number of active subscriptions.
func (e *Event[T]) Len() int {
	if e == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
