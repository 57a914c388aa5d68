// Package action implements the generic, capability-driven actions and the
// two-phase execution protocol they all share: a read-only precondition
// check followed by exactly one effect path that yields a narration and a
// structured result.
package action

import (
	"fmt"

	"hearthverse/internal/domain/chat"
	"hearthverse/internal/domain/world"
)

type Kind string

const (
	KindMove         Kind = "move"
	KindLook         Kind = "look"
	KindWait         Kind = "wait"
	KindExamine      Kind = "examine"
	KindOpen         Kind = "open"
	KindClose        Kind = "close"
	KindLock         Kind = "lock"
	KindUnlock       Kind = "unlock"
	KindActivate     Kind = "activate"
	KindDeactivate   Kind = "deactivate"
	KindUse          Kind = "use"
	KindStopUsing    Kind = "stop_using"
	KindTake         Kind = "take"
	KindDrop         Kind = "drop"
	KindPlace        Kind = "place"
	KindGive         Kind = "give"
	KindConsume      Kind = "consume"
	KindChatRequest  Kind = "chat_request"
	KindChatResponse Kind = "chat_response"
	KindChat         Kind = "chat"
	KindNoop         Kind = "noop"
)

// Result is the observable projection of an action's outcome, decoupled
// from the action's internal state.
type Result struct {
	Description string         `json:"description"`
	Kind        Kind           `json:"action_type"`
	Success     bool           `json:"success"`
	Target      string         `json:"target,omitempty"`
	Recipient   string         `json:"recipient,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Action is the two-phase protocol. ApplyEffects must only run after
// CheckPreconditions returned true; Perform enforces that contract.
type Action interface {
	Kind() Kind
	EndsTurn() bool
	CheckPreconditions() bool
	FailureReason() string
	ApplyEffects() (string, Result)
}

// Binding carries the collaborators an action needs at construction time.
type Binding struct {
	Actor *world.Character
	World *world.World
	Chat  *chat.Board
}

// Perform runs the protocol. A failed precondition becomes a no-op result
// carrying the recorded reason; a panic inside effects becomes a failed
// result. Nothing on this path escapes as an error.
func Perform(a Action) (string, Result) {
	if !a.CheckPreconditions() {
		reason := a.FailureReason()
		if reason == "" {
			reason = "You can't do that."
		}
		return reason, Result{Description: reason, Kind: a.Kind(), Success: false}
	}
	return applyEffects(a)
}

func applyEffects(a Action) (narration string, res Result) {
	defer func() {
		if r := recover(); r != nil {
			narration = fmt.Sprintf("Something went wrong: %v", r)
			res = Result{Description: narration, Kind: a.Kind(), Success: false}
		}
	}()
	return a.ApplyEffects()
}

// base carries the state every generic action shares.
type base struct {
	kind     Kind
	endsTurn bool
	actor    *world.Character
	failure  string
}

func (b *base) Kind() Kind { return b.kind }

func (b *base) EndsTurn() bool { return b.endsTurn }

func (b *base) FailureReason() string { return b.failure }

func (b *base) fail(format string, args ...any) bool {
	b.failure = fmt.Sprintf(format, args...)
	return false
}

// failed wraps a capability-method error into a failed result. Effects use
// it so internal failures surface as narration instead of propagating.
func (b *base) failed(err error) (string, Result) {
	desc := capitalize(err.Error())
	return desc, Result{Description: desc, Kind: b.kind, Success: false}
}

func (b *base) ok(narration string, res Result) (string, Result) {
	res.Description = narration
	res.Kind = b.kind
	res.Success = true
	return narration, res
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:] + "."
	}
	return s
}
