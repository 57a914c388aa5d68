// Package engine is the composition root of the turn loop: scheduler ->
// agent strategy -> resolver -> action executor -> event bus.
package engine

import (
	"context"
	"errors"
	"time"

	"hearthverse/internal/app/command"
	"hearthverse/internal/app/events"
	"hearthverse/internal/app/ports"
	"hearthverse/internal/app/turn"
	"hearthverse/internal/domain/action"
	"hearthverse/internal/domain/chat"
	"hearthverse/internal/domain/event"
	"hearthverse/internal/domain/world"

	"github.com/google/uuid"
)

var ErrSimulationFinished = errors.New("simulation finished")

const (
	defaultStrategyTimeout = 30 * time.Second
	fallbackCommand        = "look"

	// An agent gets at most this many non-turn-ending actions in one slot
	// before the engine forces an advance. Keeps a strategy that answers
	// "look" forever from wedging the rotation.
	maxActionsPerSlot = 8
)

const (
	EventActionExecuted  = "action_executed"
	EventTurnError       = "turn_error"
	EventSimulationReset = "simulation_reset"
)

// WorldBuilder rebuilds the world graph on reset.
type WorldBuilder func() (*world.World, *chat.Board, error)

type Engine struct {
	World     *world.World
	Chat      *chat.Board
	Scheduler *turn.Scheduler
	Resolver  *command.Resolver
	Bus       *events.Bus

	Strategies map[string]ports.AgentStrategy
	Metrics    ports.TurnMetrics
	Sessions   ports.SessionJournal
	Tx         ports.TxManager

	Rebuild         WorldBuilder
	StrategyTimeout time.Duration
	Now             func() time.Time

	lastNarration map[string]string
	slotActions   int
	history       []TurnRecord
}

// TurnRecord is one executed turn in the engine's bounded history.
type TurnRecord struct {
	AgentID    string        `json:"agent_id"`
	Command    string        `json:"command"`
	Result     action.Result `json:"result"`
	TurnEnded  bool          `json:"turn_ended"`
	Error      string        `json:"error,omitempty"`
	ExecutedAt time.Time     `json:"executed_at"`
}

// TurnOutcome is what one ExecuteNextTurn call produced.
type TurnOutcome struct {
	AgentID   string         `json:"agent_id"`
	Command   string         `json:"command"`
	Result    *action.Result `json:"action_result,omitempty"`
	Narration string         `json:"narration"`
	TurnEnded bool           `json:"turn_ended"`
}

const historyLimit = 512

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) strategyTimeout() time.Duration {
	if e.StrategyTimeout > 0 {
		return e.StrategyTimeout
	}
	return defaultStrategyTimeout
}

// ExecuteNextTurn resolves one command for the current agent. A strategy
// failure or timeout becomes an error turn: recorded, published, and
// turn-ending so one unresponsive agent cannot deadlock the rotation.
func (e *Engine) ExecuteNextTurn(ctx context.Context) (TurnOutcome, error) {
	if !e.Scheduler.ShouldContinue() {
		return TurnOutcome{}, ErrSimulationFinished
	}
	agentID, ok := e.Scheduler.CurrentAgentID()
	if !ok {
		return TurnOutcome{}, ErrSimulationFinished
	}

	cmd, strategyErr := e.selectCommand(ctx, agentID)
	if strategyErr != nil {
		outcome := e.errorTurn(agentID, cmd, strategyErr)
		e.advance()
		return outcome, nil
	}

	actor, ok := e.World.Character(agentID)
	if !ok {
		outcome := e.errorTurn(agentID, cmd, errors.New("agent has no character in the world"))
		e.advance()
		return outcome, nil
	}

	outcome := e.executeCommand(agentID, actor, cmd)

	if e.Scheduler.ShouldAdvance(outcome.TurnEnded) {
		e.advance()
	} else {
		e.slotActions++
		if e.slotActions >= maxActionsPerSlot {
			e.advance()
			outcome.TurnEnded = true
		}
	}
	return outcome, nil
}

func (e *Engine) selectCommand(ctx context.Context, agentID string) (string, error) {
	strategy, ok := e.Strategies[agentID]
	if !ok {
		return fallbackCommand, nil
	}
	ctx, cancel := context.WithTimeout(ctx, e.strategyTimeout())
	defer cancel()

	type picked struct {
		cmd string
		err error
	}
	ch := make(chan picked, 1)
	go func() {
		cmd, err := strategy.SelectAction(ctx, e.previousNarration(agentID))
		ch <- picked{cmd: cmd, err: err}
	}()

	select {
	case p := <-ch:
		if p.err != nil {
			return fallbackCommand, p.err
		}
		return p.cmd, nil
	case <-ctx.Done():
		return fallbackCommand, ctx.Err()
	}
}

func (e *Engine) executeCommand(agentID string, actor *world.Character, cmd string) TurnOutcome {
	resolution := e.Resolver.Resolve(cmd, actor)
	if resolution.Failed {
		res := action.Result{Description: resolution.Message, Kind: action.KindNoop, Success: false}
		e.record(agentID, cmd, res, false, "")
		e.publishResult(agentID, cmd, res)
		if e.Metrics != nil {
			e.Metrics.RecordAction(string(action.KindNoop), false)
		}
		return TurnOutcome{AgentID: agentID, Command: cmd, Result: &res, Narration: resolution.Message}
	}

	var (
		narration string
		res       action.Result
		turnEnded bool
	)
	for _, act := range resolution.Actions {
		narration, res = action.Perform(act)
		e.publishResult(agentID, cmd, res)
		if e.Metrics != nil {
			e.Metrics.RecordAction(string(res.Kind), res.Success)
		}
		if act.EndsTurn() {
			turnEnded = true
		}
	}
	e.record(agentID, cmd, res, turnEnded, "")
	e.lastNarrationSet(agentID, narration)
	return TurnOutcome{AgentID: agentID, Command: cmd, Result: &res, Narration: narration, TurnEnded: turnEnded}
}

func (e *Engine) errorTurn(agentID, cmd string, cause error) TurnOutcome {
	res := action.Result{
		Description: "The turn could not be completed: " + cause.Error(),
		Kind:        action.KindNoop,
		Success:     false,
	}
	e.record(agentID, cmd, res, true, cause.Error())
	e.Bus.Publish(event.New(EventTurnError, agentID, map[string]any{
		"error":   cause.Error(),
		"command": cmd,
	}))
	if e.Metrics != nil {
		e.Metrics.RecordErrorTurn()
	}
	return TurnOutcome{AgentID: agentID, Command: cmd, Result: &res, Narration: res.Description, TurnEnded: true}
}

// advance rotates the scheduler and returns the slot action budget to the
// next agent, whichever path ceded the slot.
func (e *Engine) advance() {
	e.Scheduler.Advance()
	e.slotActions = 0
	if e.Metrics != nil {
		e.Metrics.RecordAdvance()
	}
}

func (e *Engine) publishResult(agentID, cmd string, res action.Result) {
	data := map[string]any{
		"action_type": string(res.Kind),
		"description": res.Description,
		"success":     res.Success,
		"command":     cmd,
	}
	if res.Target != "" {
		data["target"] = res.Target
	}
	if res.Recipient != "" {
		data["recipient"] = res.Recipient
	}
	evt := event.New(EventActionExecuted, agentID, data)
	if len(res.Metadata) > 0 {
		evt.Metadata = res.Metadata
	}
	e.Bus.Publish(evt)
}

func (e *Engine) record(agentID, cmd string, res action.Result, ended bool, errText string) {
	e.history = append(e.history, TurnRecord{
		AgentID:    agentID,
		Command:    cmd,
		Result:     res,
		TurnEnded:  ended,
		Error:      errText,
		ExecutedAt: e.now(),
	})
	if len(e.history) > historyLimit {
		e.history = e.history[len(e.history)-historyLimit:]
	}
}

func (e *Engine) previousNarration(agentID string) string {
	if e.lastNarration == nil {
		return ""
	}
	return e.lastNarration[agentID]
}

func (e *Engine) lastNarrationSet(agentID, narration string) {
	if e.lastNarration == nil {
		e.lastNarration = map[string]string{}
	}
	e.lastNarration[agentID] = narration
}

// Reset rebuilds the world, clears the event log and chat board, and
// starts a fresh session. The session swap in the journal runs in one
// transaction when a TxManager is wired.
func (e *Engine) Reset(ctx context.Context) error {
	previousSession := e.Scheduler.State().SessionID

	if e.Rebuild != nil {
		w, board, err := e.Rebuild()
		if err != nil {
			return err
		}
		e.World = w
		e.Chat = board
		e.Resolver = command.NewResolver(w, board)
	} else if e.Chat != nil {
		e.Chat.Reset()
	}

	sessionID := uuid.NewString()
	e.Scheduler.Reset(sessionID)
	e.Bus.Clear("")
	e.Bus.Publish(event.New(EventSimulationReset, "", map[string]any{"session_id": sessionID}))
	e.lastNarration = nil
	e.slotActions = 0
	e.history = nil

	if e.Sessions == nil {
		return nil
	}
	swap := func(ctx context.Context) error {
		if err := e.Sessions.Close(ctx, previousSession, "reset", e.now()); err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		return e.Sessions.EnsureActive(ctx, sessionID, e.now())
	}
	if e.Tx != nil {
		return e.Tx.RunInTx(ctx, swap)
	}
	return swap(ctx)
}
