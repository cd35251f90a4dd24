// Package pubsub is the in-process event notifier: named topics with
// synchronous fan-out to the subscriber list.
package pubsub

import "sync"

const (
	TopicOrdersChanged = "orders_changed"
	TopicTablesChanged = "tables_changed"
)

type Handler func(payload any)

type Bus struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]Handler
}

func New() *Bus {
	return &Bus{subs: make(map[string]map[int]Handler)}
}

// Subscribe registers a handler for a topic and returns a function that
// removes it again.
func (b *Bus) Subscribe(topic string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	id := b.next
	b.next++
	b.subs[topic][id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

// Publish delivers the payload synchronously to every handler subscribed
// at the moment of the call. The list is snapshotted under the lock, so a
// handler added during a publish does not see that publish, and handlers
// are free to subscribe or unsubscribe from within their callback.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, h := range b.subs[topic] {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
}
