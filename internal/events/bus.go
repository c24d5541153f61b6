// Package events provides the in-process publish/subscribe channel used to
// escalate errors from low-level data access code to whatever layer is
// currently willing to display or log them, without a call dependency in
// either direction.
package events

import "sync"

// TopicPermissionError carries *live.PermissionError payloads published by
// subscribers that hit an access-denied error.
const TopicPermissionError = "permission-error"

// Handler receives published payloads. Handlers run synchronously on the
// publisher's goroutine.
type Handler func(payload interface{})

// Bus is a topic-keyed pub/sub channel. Construct one in the composition
// root and inject it; there is no package-level singleton so tests stay
// isolated. Publishing with zero subscribers is a no-op.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	topics map[string]map[int]Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{topics: make(map[string]map[int]Handler)}
}

// Subscribe registers h for future publishes on topic and returns the
// matching unsubscribe function. Callers must pair every Subscribe with the
// returned unsubscribe on their own teardown, or handlers fire twice after a
// re-mount. Unsubscribing more than once is safe.
func (b *Bus) Subscribe(topic string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[int]Handler)
	}
	b.topics[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.topics[topic], id)
	}
}

// Publish invokes every handler registered on topic at the moment of the
// call. Handlers registered concurrently with Publish may or may not see the
// payload; there is no ordering guarantee between handlers.
func (b *Bus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.topics[topic]))
	for _, h := range b.topics[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	// Run outside the lock so a handler may unsubscribe itself.
	for _, h := range handlers {
		h(payload)
	}
}

// SubscriberCount returns the number of handlers currently registered on
// topic. Intended for tests and introspection.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
