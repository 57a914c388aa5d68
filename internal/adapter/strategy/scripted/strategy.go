// Package scripted is a canned AgentStrategy: it replays a fixed command
// list, then falls back to a safe default. Used by tests and demo worlds
// in place of a live model.
package scripted

import (
	"context"
	"sync"
)

const fallbackCommand = "look"

type Strategy struct {
	mu       sync.Mutex
	commands []string
	next     int
	loop     bool
}

func New(commands []string) *Strategy {
	return &Strategy{commands: commands}
}

// NewLooping replays the script from the start once exhausted.
func NewLooping(commands []string) *Strategy {
	return &Strategy{commands: commands, loop: true}
}

func (s *Strategy) SelectAction(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.commands) == 0 {
		return fallbackCommand, nil
	}
	if s.next >= len(s.commands) {
		if !s.loop {
			return fallbackCommand, nil
		}
		s.next = 0
	}
	cmd := s.commands[s.next]
	s.next++
	return cmd, nil
}
