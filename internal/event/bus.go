// Package event provides the dashboard's typed publish/subscribe channel.
// Delivery is synchronous and in subscription order, on the publisher's
// goroutine.
package event

import "sync"

// Type identifies the kind of dashboard event.
type Type string

const (
	DashboardInitialized   Type = "dashboard_initialized"
	DashboardDestroyed     Type = "dashboard_destroyed"
	ModuleAdded            Type = "module_added"
	ModuleRemoved          Type = "module_removed"
	ModuleUpdated          Type = "module_updated"
	ModuleStateChanged     Type = "module_state_changed"
	ConnectionStateChanged Type = "connection_state_changed"
	SettingsUpdated        Type = "settings_updated"
	Error                  Type = "error"
)

// Event is a tagged union; only the fields relevant to Kind are set.
type Event struct {
	Kind         Type
	ModuleID     string
	ConnectionID string
	Payload      any
	Err          error
}

// Handler receives published events.
type Handler func(Event)

type subscriber struct {
	id int
	fn Handler
}

// Bus fans events out to subscribers.
type Bus struct {
	mu   sync.Mutex
	next int
	subs []subscriber
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler and returns a function that removes it.
func (b *Bus) Subscribe(fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every subscriber, synchronously.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(ev)
	}
}
