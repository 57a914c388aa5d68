package action

import (
	"fmt"
	"regexp"

	"hearthverse/internal/domain/world"
)

var movePattern = regexp.MustCompile(`^(?:go|walk|move) (.+)$`)

// Move traverses a directional connection, honoring movement blocks.
type Move struct {
	base
	direction string
}

func NewMove(b Binding, raw string) Action {
	direction := ""
	if m := movePattern.FindStringSubmatch(raw); m != nil {
		direction = m[1]
	}
	return NewMoveDirection(b, direction)
}

// NewMoveDirection is the entry point for direction intents resolved
// without a verb ("north", "n").
func NewMoveDirection(b Binding, direction string) Action {
	return &Move{
		base:      base{kind: KindMove, endsTurn: true, actor: b.Actor},
		direction: direction,
	}
}

func (a *Move) CheckPreconditions() bool {
	if a.actor == nil || a.actor.Location() == nil {
		return a.fail("You are nowhere.")
	}
	if a.direction == "" {
		return a.fail("Go where?")
	}
	if to, reason := a.actor.Location().Exit(a.direction); to == nil {
		return a.fail("%s", reason)
	}
	return true
}

func (a *Move) ApplyEffects() (string, Result) {
	to, reason := a.actor.Location().Exit(a.direction)
	if to == nil {
		return a.failed(fmt.Errorf("%s", reason))
	}
	a.actor.MoveTo(to)
	narration := fmt.Sprintf("You go %s. %s", a.direction, to.Describe(a.actor))
	return a.ok(narration, Result{
		Target:   to.Name(),
		Metadata: map[string]any{"direction": a.direction, "location": to.Name()},
	})
}

// Look narrates the actor's surroundings. It is observational and does not
// end the turn.
type Look struct {
	base
}

func NewLook(b Binding, _ string) Action {
	return &Look{base: base{kind: KindLook, endsTurn: false, actor: b.Actor}}
}

func (a *Look) CheckPreconditions() bool {
	if a.actor == nil || a.actor.Location() == nil {
		return a.fail("You are nowhere.")
	}
	return true
}

func (a *Look) ApplyEffects() (string, Result) {
	return a.ok(a.actor.Location().Describe(a.actor), Result{})
}

// Wait passes the turn without touching the world.
type Wait struct {
	base
}

func NewWait(b Binding, _ string) Action {
	return &Wait{base: base{kind: KindWait, endsTurn: true, actor: b.Actor}}
}

func (a *Wait) CheckPreconditions() bool {
	if a.actor == nil {
		return a.fail("Nobody is acting.")
	}
	return true
}

func (a *Wait) ApplyEffects() (string, Result) {
	return a.ok("You wait for a moment.", Result{})
}

var examinePattern = regexp.MustCompile(`^(?:examine|inspect|look at) (.+)$`)

// Examine narrates a single target through its Examinable capability.
type Examine struct {
	base
	targetName string
	target     world.Examinable
}

func NewExamine(b Binding, raw string) Action {
	a := &Examine{base: base{kind: KindExamine, endsTurn: false, actor: b.Actor}}
	if m := examinePattern.FindStringSubmatch(raw); m != nil {
		a.targetName = m[1]
	}
	if a.targetName != "" && b.Actor != nil && b.World != nil {
		if obj, ok := b.World.FindObject(b.Actor, a.targetName); ok {
			a.target, _ = obj.(world.Examinable)
		} else if loc := b.Actor.Location(); loc != nil {
			if c, ok := loc.Character(a.targetName); ok {
				a.target = c
			}
		}
	}
	return a
}

func (a *Examine) CheckPreconditions() bool {
	if a.targetName == "" {
		return a.fail("Examine what?")
	}
	if a.target == nil {
		return a.fail("You don't see any %s here.", a.targetName)
	}
	return true
}

func (a *Examine) ApplyEffects() (string, Result) {
	return a.ok(a.target.Examine(a.actor), Result{Target: a.targetName})
}
