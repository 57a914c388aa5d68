package memory

import (
	"sync"
	"time"

	"hearthverse/internal/domain/event"
)

type sessionRecord struct {
	SessionID string
	StartedAt time.Time
	EndedAt   time.Time
	Cause     string
	Active    bool
}

// Store backs the in-memory journal adapters; it mirrors what the gorm
// adapters persist so tests and DB-less runs use the same ports.
type Store struct {
	mu       sync.RWMutex
	events   []event.Event
	sessions map[string]*sessionRecord
}

func NewStore() *Store {
	return &Store{sessions: map[string]*sessionRecord{}}
}

func (s *Store) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
