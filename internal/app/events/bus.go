// Package events implements the append-only event bus: a bounded publish
// queue drained by a single background goroutine, type-filtered
// subscriptions, and per-consumer delivery cursors so independent
// observers drain the same stream at their own pace.
package events

import (
	"context"
	"log"
	"sync"
	"time"

	"hearthverse/internal/app/ports"
	"hearthverse/internal/domain/event"
)

type Handler func(event.Event)

const defaultQueueSize = 256

type subscription struct {
	id      int
	handler Handler
}

type Bus struct {
	mu      sync.Mutex
	log     []event.Event
	served  map[string]map[string]bool
	subs    map[string][]subscription
	nextSub int

	queue   chan event.Event
	done    chan struct{}
	running bool

	// Journal, when set, receives a durable copy of every event. Failures
	// are logged and do not affect delivery.
	Journal ports.EventJournal
}

func NewBus() *Bus {
	return &Bus{
		served: map[string]map[string]bool{},
		subs:   map[string][]subscription{},
	}
}

// Start launches the consumer goroutine. Idempotent: starting a running
// bus is a no-op.
func (b *Bus) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return
	}
	b.queue = make(chan event.Event, defaultQueueSize)
	b.done = make(chan struct{})
	b.running = true
	go b.drain(b.queue, b.done)
}

// Stop cancels the consumer goroutine and waits for it to finish
// processing what was already queued. Idempotent.
func (b *Bus) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	queue, done := b.queue, b.done
	b.mu.Unlock()

	close(queue)
	<-done
}

func (b *Bus) drain(queue chan event.Event, done chan struct{}) {
	defer close(done)
	for evt := range queue {
		b.store(evt, true)
	}
}

// Publish enqueues without blocking the turn path. A full queue means the
// drain goroutine is wedged behind a slow subscriber, so the event is
// logged and journaled directly without handler fan-out. A stopped bus has
// no drain goroutine and delivers inline.
func (b *Bus) Publish(evt event.Event) {
	b.mu.Lock()
	running := b.running
	if running {
		select {
		case b.queue <- evt:
			b.mu.Unlock()
			return
		default:
		}
	}
	b.mu.Unlock()
	b.store(evt, !running)
}

func (b *Bus) store(evt event.Event, fanOut bool) {
	b.mu.Lock()
	b.log = append(b.log, evt)
	var handlers []Handler
	if fanOut {
		handlers = make([]Handler, 0, len(b.subs[evt.Type]))
		for _, sub := range b.subs[evt.Type] {
			handlers = append(handlers, sub.handler)
		}
	}
	journal := b.Journal
	b.mu.Unlock()

	for _, h := range handlers {
		h(evt)
	}
	if journal != nil {
		if err := journal.Append(context.Background(), []event.Event{evt}); err != nil {
			log.Printf("event journal append: %v", err)
		}
	}
}

// Subscribe registers a handler for one event type and returns a token
// for Unsubscribe.
func (b *Bus) Subscribe(eventType string, h Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSub++
	b.subs[eventType] = append(b.subs[eventType], subscription{id: b.nextSub, handler: h})
	return b.nextSub
}

func (b *Bus) Unsubscribe(eventType string, token int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[eventType]
	for i, sub := range subs {
		if sub.id == token {
			b.subs[eventType] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// EventsSince returns events after the timestamp, optionally filtered by
// type. Empty eventType matches everything.
func (b *Bus) EventsSince(since time.Time, eventType string) []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []event.Event{}
	for _, evt := range b.log {
		if !evt.Timestamp.After(since) {
			continue
		}
		if eventType != "" && evt.Type != eventType {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// UnservedEvents returns the events the given consumer has not yet
// acknowledged. Each consumer keeps its own cursor: marking events served
// for one consumer never affects another's view.
func (b *Bus) UnservedEvents(consumerID string) []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := b.served[consumerID]
	out := []event.Event{}
	for _, evt := range b.log {
		if seen != nil && seen[evt.ID] {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func (b *Bus) MarkServed(consumerID string, eventIDs []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := b.served[consumerID]
	if seen == nil {
		seen = map[string]bool{}
		b.served[consumerID] = seen
	}
	for _, id := range eventIDs {
		seen[id] = true
	}
}

// Clear drops logged events, optionally only those of one type, and
// resets every consumer cursor for the dropped events.
func (b *Bus) Clear(eventType string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if eventType == "" {
		b.log = nil
		b.served = map[string]map[string]bool{}
		return
	}
	kept := b.log[:0]
	for _, evt := range b.log {
		if evt.Type != eventType {
			kept = append(kept, evt)
		} else {
			for _, seen := range b.served {
				delete(seen, evt.ID)
			}
		}
	}
	b.log = kept
}

func (b *Bus) EventCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.log)
}
