package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hearthverse/internal/app/command"
	"hearthverse/internal/app/events"
	"hearthverse/internal/app/ports"
	"hearthverse/internal/app/turn"
	"hearthverse/internal/domain/chat"
	"hearthverse/internal/domain/world"
)

type stubStrategy struct {
	fn func(ctx context.Context, previous string) (string, error)
}

func (s stubStrategy) SelectAction(ctx context.Context, previous string) (string, error) {
	return s.fn(ctx, previous)
}

func script(commands ...string) ports.AgentStrategy {
	i := 0
	return stubStrategy{fn: func(context.Context, string) (string, error) {
		if i >= len(commands) {
			return "wait", nil
		}
		cmd := commands[i]
		i++
		return cmd, nil
	}}
}

type txKey struct{}

type fakeSessions struct {
	opened []string
	closed []string
	inTx   []bool
}

func (f *fakeSessions) EnsureActive(ctx context.Context, sessionID string, _ time.Time) error {
	f.opened = append(f.opened, sessionID)
	f.inTx = append(f.inTx, ctx.Value(txKey{}) != nil)
	return nil
}

func (f *fakeSessions) Close(ctx context.Context, sessionID, cause string, _ time.Time) error {
	f.closed = append(f.closed, sessionID+":"+cause)
	f.inTx = append(f.inTx, ctx.Value(txKey{}) != nil)
	return nil
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(context.WithValue(ctx, txKey{}, true))
}

func buildTestWorld(t *testing.T) (*world.World, *chat.Board) {
	t.Helper()
	w := world.New()
	kitchen := world.NewLocation("kitchen", "A tidy kitchen.")
	if err := w.AddLocation(kitchen); err != nil {
		t.Fatalf("add location: %v", err)
	}
	if err := kitchen.AddObject(world.NewAppliance("sink", "A sink.")); err != nil {
		t.Fatalf("add sink: %v", err)
	}
	fridge := world.NewStorageUnit("fridge", "A fridge.", false)
	if err := kitchen.AddObject(fridge); err != nil {
		t.Fatalf("add fridge: %v", err)
	}
	for _, name := range []string{"alice", "bob"} {
		if err := w.AddCharacter(world.NewCharacter(name, ""), kitchen); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	return w, chat.NewBoard()
}

func buildEngine(t *testing.T, maxTurns int, strategies map[string]ports.AgentStrategy) *Engine {
	t.Helper()
	w, board := buildTestWorld(t)
	return &Engine{
		World:      w,
		Chat:       board,
		Scheduler:  turn.NewScheduler("sess-1", []string{"alice", "bob"}, maxTurns),
		Resolver:   command.NewResolver(w, board),
		Bus:        events.NewBus(),
		Strategies: strategies,
		Rebuild: func() (*world.World, *chat.Board, error) {
			w, board := buildTestWorld(t)
			return w, board, nil
		},
	}
}

func TestExecuteNextTurnRotation(t *testing.T) {
	e := buildEngine(t, 0, map[string]ports.AgentStrategy{
		"alice": script("turn on sink"),
		"bob":   script("wait"),
	})

	out, err := e.ExecuteNextTurn(context.Background())
	if err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	if out.AgentID != "alice" || !out.TurnEnded {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.Narration != "You turn on the sink." {
		t.Fatalf("narration %q", out.Narration)
	}

	out, err = e.ExecuteNextTurn(context.Background())
	if err != nil {
		t.Fatalf("turn 2: %v", err)
	}
	if out.AgentID != "bob" {
		t.Fatalf("expected bob's slot, got %q", out.AgentID)
	}

	if got := e.Bus.EventCount(); got != 2 {
		t.Fatalf("published %d events, want 2", got)
	}
	if e.Scheduler.State().TurnCounter != 2 {
		t.Fatalf("turn counter %d, want 2", e.Scheduler.State().TurnCounter)
	}
}

func TestNonTurnEndingActionKeepsSlot(t *testing.T) {
	e := buildEngine(t, 0, map[string]ports.AgentStrategy{
		"alice": script("look", "open fridge"),
	})

	out, err := e.ExecuteNextTurn(context.Background())
	if err != nil {
		t.Fatalf("look: %v", err)
	}
	if out.TurnEnded {
		t.Fatalf("look must not end the turn")
	}
	if id, _ := e.Scheduler.CurrentAgentID(); id != "alice" {
		t.Fatalf("slot moved to %q after non-ending action", id)
	}

	out, err = e.ExecuteNextTurn(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !out.TurnEnded {
		t.Fatalf("open must end the turn")
	}
	if id, _ := e.Scheduler.CurrentAgentID(); id != "bob" {
		t.Fatalf("slot did not rotate, current %q", id)
	}
}

func TestResolutionFailureDoesNotEndTurn(t *testing.T) {
	e := buildEngine(t, 0, map[string]ports.AgentStrategy{
		"alice": stubStrategy{fn: func(context.Context, string) (string, error) {
			return "frobnicate the thing", nil
		}},
	})

	out, err := e.ExecuteNextTurn(context.Background())
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if out.TurnEnded {
		t.Fatalf("resolution failure must not end the turn")
	}
	if out.Result == nil || out.Result.Success {
		t.Fatalf("expected failed no-op result: %+v", out.Result)
	}
	if !strings.Contains(out.Narration, "No action found") {
		t.Fatalf("narration %q", out.Narration)
	}
}

func TestSlotCapForcesAdvance(t *testing.T) {
	e := buildEngine(t, 0, map[string]ports.AgentStrategy{
		"alice": stubStrategy{fn: func(context.Context, string) (string, error) {
			return "look", nil
		}},
	})

	var out TurnOutcome
	var err error
	for i := 0; i < maxActionsPerSlot; i++ {
		out, err = e.ExecuteNextTurn(context.Background())
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}
	if !out.TurnEnded {
		t.Fatalf("slot cap must force a turn end")
	}
	if id, _ := e.Scheduler.CurrentAgentID(); id != "bob" {
		t.Fatalf("slot did not rotate after cap, current %q", id)
	}
}

func TestStrategyErrorBecomesErrorTurn(t *testing.T) {
	e := buildEngine(t, 0, map[string]ports.AgentStrategy{
		"alice": stubStrategy{fn: func(context.Context, string) (string, error) {
			return "", errors.New("model unavailable")
		}},
	})

	out, err := e.ExecuteNextTurn(context.Background())
	if err != nil {
		t.Fatalf("error turns must not surface as errors: %v", err)
	}
	if !out.TurnEnded {
		t.Fatalf("error turn must end the slot")
	}
	if !strings.Contains(out.Narration, "model unavailable") {
		t.Fatalf("narration %q", out.Narration)
	}
	if id, _ := e.Scheduler.CurrentAgentID(); id != "bob" {
		t.Fatalf("rotation stuck on failing agent")
	}

	errs := e.Bus.EventsSince(time.Time{}, EventTurnError)
	if len(errs) != 1 {
		t.Fatalf("published %d turn_error events, want 1", len(errs))
	}
}

func TestErrorTurnResetsSlotBudget(t *testing.T) {
	aliceCalls := 0
	e := buildEngine(t, 0, map[string]ports.AgentStrategy{
		"alice": stubStrategy{fn: func(context.Context, string) (string, error) {
			aliceCalls++
			if aliceCalls <= 3 {
				return "look", nil
			}
			return "", errors.New("model unavailable")
		}},
		"bob": stubStrategy{fn: func(context.Context, string) (string, error) {
			return "look", nil
		}},
	})

	// Three non-ending looks, then an error turn hands the slot to bob.
	for i := 0; i < 4; i++ {
		if _, err := e.ExecuteNextTurn(context.Background()); err != nil {
			t.Fatalf("alice turn %d: %v", i, err)
		}
	}
	if id, _ := e.Scheduler.CurrentAgentID(); id != "bob" {
		t.Fatalf("slot should be bob's, current %q", id)
	}

	// Bob gets the full slot budget, not what alice left of hers.
	for i := 0; i < maxActionsPerSlot-1; i++ {
		out, err := e.ExecuteNextTurn(context.Background())
		if err != nil {
			t.Fatalf("bob turn %d: %v", i, err)
		}
		if out.TurnEnded {
			t.Fatalf("bob forced out after %d actions", i+1)
		}
	}
	out, err := e.ExecuteNextTurn(context.Background())
	if err != nil {
		t.Fatalf("bob final turn: %v", err)
	}
	if !out.TurnEnded {
		t.Fatalf("slot cap did not trigger at the budget")
	}
	if id, _ := e.Scheduler.CurrentAgentID(); id != "alice" {
		t.Fatalf("slot did not return to alice, current %q", id)
	}
}

func TestStrategyTimeout(t *testing.T) {
	e := buildEngine(t, 0, map[string]ports.AgentStrategy{
		"alice": stubStrategy{fn: func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}},
	})
	e.StrategyTimeout = 10 * time.Millisecond

	out, err := e.ExecuteNextTurn(context.Background())
	if err != nil {
		t.Fatalf("timeout must become an error turn: %v", err)
	}
	if !out.TurnEnded {
		t.Fatalf("timed-out turn must end the slot")
	}
}

func TestMissingStrategyFallsBack(t *testing.T) {
	e := buildEngine(t, 0, nil)

	out, err := e.ExecuteNextTurn(context.Background())
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if out.Command != "look" {
		t.Fatalf("fallback command %q, want look", out.Command)
	}
}

func TestMaxTurnsFinishesSimulation(t *testing.T) {
	e := buildEngine(t, 3, map[string]ports.AgentStrategy{
		"alice": script(),
		"bob":   script(),
	})

	agents := []string{}
	for i := 0; i < 3; i++ {
		out, err := e.ExecuteNextTurn(context.Background())
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		agents = append(agents, out.AgentID)
	}
	if agents[0] != "alice" || agents[1] != "bob" || agents[2] != "alice" {
		t.Fatalf("rotation %v", agents)
	}

	if _, err := e.ExecuteNextTurn(context.Background()); !errors.Is(err, ErrSimulationFinished) {
		t.Fatalf("expected ErrSimulationFinished, got %v", err)
	}
}

func TestPreviousNarrationFlowsToStrategy(t *testing.T) {
	seen := []string{}
	e := buildEngine(t, 0, map[string]ports.AgentStrategy{
		"alice": stubStrategy{fn: func(_ context.Context, previous string) (string, error) {
			seen = append(seen, previous)
			return "look", nil
		}},
		"bob": script(),
	})

	for i := 0; i < 3; i++ {
		if _, err := e.ExecuteNextTurn(context.Background()); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}
	if seen[0] != "" {
		t.Fatalf("first turn must see empty narration, got %q", seen[0])
	}
	if len(seen) < 2 || !strings.Contains(seen[1], "kitchen") {
		t.Fatalf("second turn must see the look narration, got %v", seen)
	}
}

func TestReset(t *testing.T) {
	sessions := &fakeSessions{}
	e := buildEngine(t, 2, map[string]ports.AgentStrategy{
		"alice": script("turn on sink"),
		"bob":   script(),
	})
	e.Sessions = sessions

	if _, err := e.ExecuteNextTurn(context.Background()); err != nil {
		t.Fatalf("turn: %v", err)
	}
	sinkBefore, _ := e.World.FindObject(mustCharacter(t, e.World, "alice"), "sink")
	if !sinkBefore.(interface{ IsActive() bool }).IsActive() {
		t.Fatalf("sink should be on before reset")
	}

	if err := e.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}

	state := e.Scheduler.State()
	if state.TurnCounter != 0 || state.SessionID == "sess-1" {
		t.Fatalf("scheduler not reset: %+v", state)
	}
	sinkAfter, _ := e.World.FindObject(mustCharacter(t, e.World, "alice"), "sink")
	if sinkAfter.(interface{ IsActive() bool }).IsActive() {
		t.Fatalf("world not rebuilt on reset")
	}
	// Only the reset marker survives the event log clear.
	if got := e.Bus.EventCount(); got != 1 {
		t.Fatalf("event count after reset %d, want 1", got)
	}
	if len(sessions.closed) != 1 || !strings.HasSuffix(sessions.closed[0], ":reset") {
		t.Fatalf("old session not closed: %v", sessions.closed)
	}
	if len(sessions.opened) != 1 {
		t.Fatalf("new session not opened: %v", sessions.opened)
	}
}

func TestResetSwapsSessionsInOneTransaction(t *testing.T) {
	sessions := &fakeSessions{}
	tx := &fakeTx{}
	e := buildEngine(t, 0, nil)
	e.Sessions = sessions
	e.Tx = tx

	if err := e.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if tx.calls != 1 {
		t.Fatalf("RunInTx called %d times, want 1", tx.calls)
	}
	if len(sessions.closed) != 1 || len(sessions.opened) != 1 {
		t.Fatalf("swap calls: closed=%v opened=%v", sessions.closed, sessions.opened)
	}
	for i, in := range sessions.inTx {
		if !in {
			t.Fatalf("session call %d ran outside the transaction", i)
		}
	}
}

func mustCharacter(t *testing.T, w *world.World, name string) *world.Character {
	t.Helper()
	c, ok := w.Character(name)
	if !ok {
		t.Fatalf("character %q missing", name)
	}
	return c
}
