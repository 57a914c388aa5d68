package turn

import (
	"reflect"
	"testing"
)

func TestRoundRobinRotation(t *testing.T) {
	s := NewScheduler("sess-1", []string{"alice", "bob", "carol"}, 0)

	var order []string
	for i := 0; i < 6; i++ {
		id, ok := s.CurrentAgentID()
		if !ok {
			t.Fatalf("no current agent at step %d", i)
		}
		order = append(order, id)
		s.Advance()
	}
	want := []string{"alice", "bob", "carol", "alice", "bob", "carol"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("rotation %v, want %v", order, want)
	}
	if s.State().TurnCounter != 6 {
		t.Fatalf("turn counter %d, want 6", s.State().TurnCounter)
	}
}

func TestMaxTurnsStopsSimulation(t *testing.T) {
	s := NewScheduler("sess-1", []string{"alice", "bob"}, 3)

	turns := 0
	for s.ShouldContinue() {
		s.Advance()
		turns++
		if turns > 10 {
			t.Fatalf("scheduler did not stop")
		}
	}
	if turns != 3 {
		t.Fatalf("ran %d turns, want 3", turns)
	}
}

func TestUnlimitedTurns(t *testing.T) {
	s := NewScheduler("sess-1", []string{"alice"}, 0)
	for i := 0; i < 100; i++ {
		if !s.ShouldContinue() {
			t.Fatalf("unlimited scheduler stopped at turn %d", i)
		}
		s.Advance()
	}
}

func TestStop(t *testing.T) {
	s := NewScheduler("sess-1", []string{"alice"}, 0)
	s.Stop()
	if s.ShouldContinue() {
		t.Fatalf("stopped scheduler must not continue")
	}
}

func TestShouldAdvance(t *testing.T) {
	s := NewScheduler("sess-1", []string{"alice"}, 0)
	if s.ShouldAdvance(false) {
		t.Fatalf("non-turn-ending action must not advance")
	}
	if !s.ShouldAdvance(true) {
		t.Fatalf("turn-ending action must advance")
	}
}

func TestEmptyRoster(t *testing.T) {
	s := NewScheduler("sess-1", nil, 0)
	if s.ShouldContinue() {
		t.Fatalf("empty roster must not continue")
	}
	if _, ok := s.CurrentAgentID(); ok {
		t.Fatalf("empty roster has no current agent")
	}
}

func TestAddAgentDeduplicates(t *testing.T) {
	s := NewScheduler("sess-1", []string{"alice"}, 0)
	s.AddAgent("bob")
	s.AddAgent("bob")
	if got := s.State().ActiveAgents; !reflect.DeepEqual(got, []string{"alice", "bob"}) {
		t.Fatalf("roster %v", got)
	}
}

func TestRemoveAgentClampsIndex(t *testing.T) {
	s := NewScheduler("sess-1", []string{"alice", "bob", "carol"}, 0)
	s.Advance()
	s.Advance()
	if id, _ := s.CurrentAgentID(); id != "carol" {
		t.Fatalf("current %q, want carol", id)
	}

	s.RemoveAgent("carol")
	if id, _ := s.CurrentAgentID(); id != "alice" {
		t.Fatalf("current after removing current %q, want alice", id)
	}

	s.RemoveAgent("alice")
	if id, _ := s.CurrentAgentID(); id != "bob" {
		t.Fatalf("current %q, want bob", id)
	}

	s.RemoveAgent("bob")
	if s.ShouldContinue() {
		t.Fatalf("scheduler with emptied roster must stop")
	}
}

func TestRemoveEarlierAgentKeepsCurrent(t *testing.T) {
	s := NewScheduler("sess-1", []string{"alice", "bob", "carol"}, 0)
	s.Advance()
	if id, _ := s.CurrentAgentID(); id != "bob" {
		t.Fatalf("current %q, want bob", id)
	}
	s.RemoveAgent("alice")
	if id, _ := s.CurrentAgentID(); id != "bob" {
		t.Fatalf("current after removal %q, want bob", id)
	}
}

func TestReset(t *testing.T) {
	s := NewScheduler("sess-1", []string{"alice", "bob"}, 2)
	s.Advance()
	s.Advance()
	if s.ShouldContinue() {
		t.Fatalf("expected exhausted scheduler")
	}

	s.Reset("sess-2")
	state := s.State()
	if state.SessionID != "sess-2" || state.TurnCounter != 0 || !state.Running {
		t.Fatalf("unexpected state after reset: %+v", state)
	}
	if id, _ := s.CurrentAgentID(); id != "alice" {
		t.Fatalf("current %q, want alice", id)
	}
	if !reflect.DeepEqual(state.ActiveAgents, []string{"alice", "bob"}) {
		t.Fatalf("reset must keep the roster: %v", state.ActiveAgents)
	}
}

func TestStateIsACopy(t *testing.T) {
	s := NewScheduler("sess-1", []string{"alice"}, 0)
	state := s.State()
	state.ActiveAgents[0] = "mallory"
	if id, _ := s.CurrentAgentID(); id != "alice" {
		t.Fatalf("mutating the state copy leaked into the scheduler")
	}
}
