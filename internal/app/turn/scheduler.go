// Package turn owns the round-robin rotation over active agents and the
// session-scoped game state.
package turn

// GameState is mutated only by the Scheduler. The turn counter counts
// advances, not individual actions: an agent may take several
// non-turn-ending actions inside one slot.
type GameState struct {
	SessionID         string   `json:"session_id"`
	TurnCounter       int      `json:"turn_counter"`
	MaxTurns          int      `json:"max_turns"`
	Running           bool     `json:"is_running"`
	ActiveAgents      []string `json:"active_agents"`
	CurrentAgentIndex int      `json:"current_agent_index"`
}

type Scheduler struct {
	state GameState
}

func NewScheduler(sessionID string, agents []string, maxTurns int) *Scheduler {
	roster := make([]string, len(agents))
	copy(roster, agents)
	return &Scheduler{state: GameState{
		SessionID:    sessionID,
		MaxTurns:     maxTurns,
		Running:      true,
		ActiveAgents: roster,
	}}
}

func (s *Scheduler) State() GameState {
	out := s.state
	out.ActiveAgents = make([]string, len(s.state.ActiveAgents))
	copy(out.ActiveAgents, s.state.ActiveAgents)
	return out
}

// CurrentAgentID clamps the index defensively: roster mutation may have
// left it out of bounds.
func (s *Scheduler) CurrentAgentID() (string, bool) {
	if len(s.state.ActiveAgents) == 0 {
		return "", false
	}
	if s.state.CurrentAgentIndex < 0 || s.state.CurrentAgentIndex >= len(s.state.ActiveAgents) {
		s.state.CurrentAgentIndex = 0
	}
	return s.state.ActiveAgents[s.state.CurrentAgentIndex], true
}

func (s *Scheduler) ShouldContinue() bool {
	if !s.state.Running {
		return false
	}
	if s.state.MaxTurns > 0 && s.state.TurnCounter >= s.state.MaxTurns {
		return false
	}
	return len(s.state.ActiveAgents) > 0
}

// ShouldAdvance passes the action's turn-ending flag through verbatim;
// advancement is entirely action-driven.
func (s *Scheduler) ShouldAdvance(actionEndedTurn bool) bool {
	return actionEndedTurn
}

func (s *Scheduler) Advance() {
	if n := len(s.state.ActiveAgents); n > 0 {
		s.state.CurrentAgentIndex = (s.state.CurrentAgentIndex + 1) % n
	} else {
		s.state.CurrentAgentIndex = 0
	}
	s.state.TurnCounter++
}

func (s *Scheduler) Stop() { s.state.Running = false }

func (s *Scheduler) AddAgent(agentID string) {
	for _, id := range s.state.ActiveAgents {
		if id == agentID {
			return
		}
	}
	s.state.ActiveAgents = append(s.state.ActiveAgents, agentID)
}

// RemoveAgent drops an agent mid-simulation; removing the currently
// indexed agent clamps the index onto the next one.
func (s *Scheduler) RemoveAgent(agentID string) {
	for i, id := range s.state.ActiveAgents {
		if id != agentID {
			continue
		}
		s.state.ActiveAgents = append(s.state.ActiveAgents[:i], s.state.ActiveAgents[i+1:]...)
		if s.state.CurrentAgentIndex > i {
			s.state.CurrentAgentIndex--
		}
		if s.state.CurrentAgentIndex >= len(s.state.ActiveAgents) {
			s.state.CurrentAgentIndex = 0
		}
		return
	}
}

// Reset starts a fresh rotation for a new session, keeping the roster.
func (s *Scheduler) Reset(sessionID string) {
	s.state.SessionID = sessionID
	s.state.TurnCounter = 0
	s.state.CurrentAgentIndex = 0
	s.state.Running = true
}
