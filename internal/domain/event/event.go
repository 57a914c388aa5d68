// Package event defines the immutable domain event record shared by the
// bus, the journal adapters and the HTTP consumer API.
package event

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID        string         `json:"event_id"`
	Type      string         `json:"event_type"`
	Timestamp time.Time      `json:"timestamp"`
	AgentID   string         `json:"agent_id,omitempty"`
	Data      map[string]any `json:"data"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// New stamps identity and time; Data is never nil so consumers can index
// into it without checking.
func New(eventType, agentID string, data map[string]any) Event {
	if data == nil {
		data = map[string]any{}
	}
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		AgentID:   agentID,
		Data:      data,
	}
}
