package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"hearthverse/internal/app/ports"
	"hearthverse/internal/domain/event"
)

func stamped(eventType string, ts time.Time) event.Event {
	evt := event.New(eventType, "alice", nil)
	evt.Timestamp = ts
	return evt
}

func TestEventJournalAppendAndList(t *testing.T) {
	store := NewStore()
	journal := NewEventJournal(store)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []event.Event{
		stamped("action_executed", base),
		stamped("action_executed", base.Add(time.Minute)),
		stamped("turn_error", base.Add(2*time.Minute)),
	}
	if err := journal.Append(ctx, events); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := store.EventCount(); got != 3 {
		t.Fatalf("count %d, want 3", got)
	}

	all, err := journal.ListSince(ctx, time.Time{}, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("listed %d, want 3", len(all))
	}

	since, err := journal.ListSince(ctx, base, 0)
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(since) != 2 {
		t.Fatalf("listed %d since base, want 2", len(since))
	}

	limited, err := journal.ListSince(ctx, time.Time{}, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("listed %d with limit 2", len(limited))
	}
}

func TestSessionJournalLifecycle(t *testing.T) {
	store := NewStore()
	journal := NewSessionJournal(store)
	ctx := context.Background()
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := journal.EnsureActive(ctx, "sess-1", started); err != nil {
		t.Fatalf("ensure active: %v", err)
	}
	if err := journal.EnsureActive(ctx, "sess-1", started.Add(time.Hour)); err != nil {
		t.Fatalf("ensure active twice: %v", err)
	}
	rec := store.sessions["sess-1"]
	if rec == nil || !rec.Active || !rec.StartedAt.Equal(started) {
		t.Fatalf("unexpected record: %+v", rec)
	}

	ended := started.Add(2 * time.Hour)
	if err := journal.Close(ctx, "sess-1", "reset", ended); err != nil {
		t.Fatalf("close: %v", err)
	}
	if rec.Active || rec.Cause != "reset" || !rec.EndedAt.Equal(ended) {
		t.Fatalf("unexpected record after close: %+v", rec)
	}

	if err := journal.Close(ctx, "missing", "reset", ended); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("close missing: expected ErrNotFound, got %v", err)
	}
}

func TestTxManagerPassthrough(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	journal := NewEventJournal(store)

	err := tx.RunInTx(context.Background(), func(ctx context.Context) error {
		return journal.Append(ctx, []event.Event{event.New("action_executed", "alice", nil)})
	})
	if err != nil {
		t.Fatalf("run in tx: %v", err)
	}
	if got := store.EventCount(); got != 1 {
		t.Fatalf("count %d, want 1", got)
	}
}
