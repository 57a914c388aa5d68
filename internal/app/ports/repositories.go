package ports

import (
	"context"
	"time"

	"hearthverse/internal/domain/event"
)

// EventJournal mirrors published events into durable storage. The bus
// treats it as best-effort; the in-memory log stays authoritative for the
// consumer API.
type EventJournal interface {
	Append(ctx context.Context, events []event.Event) error
	ListSince(ctx context.Context, since time.Time, limit int) ([]event.Event, error)
}

// SessionJournal records simulation session lifetimes.
type SessionJournal interface {
	EnsureActive(ctx context.Context, sessionID string, startedAt time.Time) error
	Close(ctx context.Context, sessionID, cause string, endedAt time.Time) error
}

// TxManager runs a group of journal mutations atomically. The engine uses
// it so a reset's session close and reopen commit or roll back together.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
