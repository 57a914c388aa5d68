package engine

import "hearthverse/internal/app/turn"

type TurnStatistics struct {
	SessionID    string   `json:"session_id"`
	TurnCounter  int      `json:"turn_counter"`
	MaxTurns     int      `json:"max_turns"`
	Running      bool     `json:"is_running"`
	CurrentAgent string   `json:"current_agent,omitempty"`
	ActiveAgents []string `json:"active_agents"`
}

type SimulationStatistics struct {
	TurnStatistics
	ActionsExecuted int            `json:"actions_executed"`
	FailedActions   int            `json:"failed_actions"`
	ErrorTurns      int            `json:"error_turns"`
	EventsPublished int            `json:"events_published"`
	ActionsByAgent  map[string]int `json:"actions_by_agent"`
	RecentTurns     []TurnRecord   `json:"recent_turns"`
}

const recentTurnsLimit = 20

func (e *Engine) TurnStatistics() TurnStatistics {
	return turnStats(e.Scheduler.State(), e.Scheduler)
}

func turnStats(state turn.GameState, s *turn.Scheduler) TurnStatistics {
	current, _ := s.CurrentAgentID()
	return TurnStatistics{
		SessionID:    state.SessionID,
		TurnCounter:  state.TurnCounter,
		MaxTurns:     state.MaxTurns,
		Running:      state.Running,
		CurrentAgent: current,
		ActiveAgents: state.ActiveAgents,
	}
}

func (e *Engine) SimulationStatistics() SimulationStatistics {
	out := SimulationStatistics{
		TurnStatistics:  e.TurnStatistics(),
		EventsPublished: e.Bus.EventCount(),
		ActionsByAgent:  map[string]int{},
	}
	for _, rec := range e.history {
		out.ActionsExecuted++
		if !rec.Result.Success {
			out.FailedActions++
		}
		if rec.Error != "" {
			out.ErrorTurns++
		}
		out.ActionsByAgent[rec.AgentID]++
	}
	recent := e.history
	if len(recent) > recentTurnsLimit {
		recent = recent[len(recent)-recentTurnsLimit:]
	}
	out.RecentTurns = append([]TurnRecord{}, recent...)
	return out
}
