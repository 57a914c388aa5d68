package memory

import (
	"context"
	"time"

	"hearthverse/internal/domain/event"
)

type EventJournal struct {
	store *Store
}

func NewEventJournal(store *Store) EventJournal {
	return EventJournal{store: store}
}

func (j EventJournal) Append(_ context.Context, events []event.Event) error {
	j.store.mu.Lock()
	defer j.store.mu.Unlock()
	j.store.events = append(j.store.events, events...)
	return nil
}

func (j EventJournal) ListSince(_ context.Context, since time.Time, limit int) ([]event.Event, error) {
	j.store.mu.RLock()
	defer j.store.mu.RUnlock()
	out := []event.Event{}
	for _, evt := range j.store.events {
		if !since.IsZero() && !evt.Timestamp.After(since) {
			continue
		}
		out = append(out, evt)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
