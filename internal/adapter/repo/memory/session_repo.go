package memory

import (
	"context"
	"time"

	"hearthverse/internal/app/ports"
)

type SessionJournal struct {
	store *Store
}

func NewSessionJournal(store *Store) SessionJournal {
	return SessionJournal{store: store}
}

func (j SessionJournal) EnsureActive(_ context.Context, sessionID string, startedAt time.Time) error {
	j.store.mu.Lock()
	defer j.store.mu.Unlock()
	if rec, ok := j.store.sessions[sessionID]; ok {
		rec.Active = true
		return nil
	}
	j.store.sessions[sessionID] = &sessionRecord{
		SessionID: sessionID,
		StartedAt: startedAt,
		Active:    true,
	}
	return nil
}

func (j SessionJournal) Close(_ context.Context, sessionID, cause string, endedAt time.Time) error {
	j.store.mu.Lock()
	defer j.store.mu.Unlock()
	rec, ok := j.store.sessions[sessionID]
	if !ok {
		return ports.ErrNotFound
	}
	rec.Active = false
	rec.Cause = cause
	rec.EndedAt = endedAt
	return nil
}
