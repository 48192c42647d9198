// Package bus is the state-change notification fanout. Every engine
// mutation publishes one event; consumers (API SSE feed, CLI watchers)
// subscribe instead of re-reading state on a timer. One abstraction,
// two transports: in-process channels here, and the SSE stream served
// by internal/api.
package bus

import (
	"sync"
	"time"
)

// EventType names what changed.
type EventType string

const (
	EventTasksChanged EventType = "tasks_changed"
	EventAwardChanged EventType = "award_changed"
	EventLogChanged   EventType = "log_changed"
	EventPrefsChanged EventType = "prefs_changed"
	EventRollover     EventType = "rollover"
	EventMilestone    EventType = "milestone"
	EventSyncFailed   EventType = "sync_failed"
)

// Event is one state-change notification.
type Event struct {
	Type    EventType   `json:"type"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload,omitempty"`
}

// Bus fans events out to subscribers. Publish never blocks: a
// subscriber that falls behind its buffer drops events, since every
// consumer re-reads full state on receipt anyway.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel func must be
// called to release the subscription.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking.
func (b *Bus) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default: // Slow subscriber — drop
		}
	}
}

// SubscriberCount reports active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
