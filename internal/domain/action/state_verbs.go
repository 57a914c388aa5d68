package action

import (
	"regexp"

	"hearthverse/internal/domain/world"
)

// targeted is shared by every verb that names a single object.
type targeted struct {
	base
	targetName string
	target     world.Object
}

func (t *targeted) resolve(b Binding, pattern *regexp.Regexp, raw string) {
	if m := pattern.FindStringSubmatch(raw); m != nil {
		t.targetName = m[len(m)-1]
	}
	if t.targetName != "" && b.Actor != nil && b.World != nil {
		if obj, ok := b.World.FindObject(b.Actor, t.targetName); ok {
			t.target = obj
		}
	}
}

func (t *targeted) requireTarget() bool {
	if t.targetName == "" {
		return t.fail("%s what?", verbLabel(t.kind))
	}
	if t.target == nil {
		return t.fail("You don't see any %s here.", t.targetName)
	}
	return true
}

func verbLabel(k Kind) string {
	switch k {
	case KindOpen:
		return "Open"
	case KindClose:
		return "Close"
	case KindLock:
		return "Lock"
	case KindUnlock:
		return "Unlock"
	case KindActivate:
		return "Turn on"
	case KindDeactivate:
		return "Turn off"
	case KindUse:
		return "Use"
	case KindStopUsing:
		return "Stop using"
	case KindTake:
		return "Take"
	case KindDrop:
		return "Drop"
	case KindConsume:
		return "Eat"
	default:
		return "Do"
	}
}

var (
	openPattern       = regexp.MustCompile(`^open (.+)$`)
	closePattern      = regexp.MustCompile(`^(?:close|shut) (.+)$`)
	lockPattern       = regexp.MustCompile(`^lock (.+)$`)
	unlockPattern     = regexp.MustCompile(`^unlock (.+)$`)
	activatePattern   = regexp.MustCompile(`^(?:turn on|switch on|activate) (.+)$`)
	deactivatePattern = regexp.MustCompile(`^(?:turn off|switch off|deactivate) (.+)$`)
	usePattern        = regexp.MustCompile(`^(?:use|start using) (.+)$`)
	stopUsingPattern  = regexp.MustCompile(`^stop using (.+)$`)
)

// Open works on any target implementing Openable.
type Open struct{ targeted }

func NewOpen(b Binding, raw string) Action {
	a := &Open{targeted{base: base{kind: KindOpen, endsTurn: true, actor: b.Actor}}}
	a.resolve(b, openPattern, raw)
	return a
}

func (a *Open) CheckPreconditions() bool {
	if !a.requireTarget() {
		return false
	}
	if _, ok := a.target.(world.Openable); !ok {
		return a.fail("The %s cannot be opened.", a.targetName)
	}
	return true
}

func (a *Open) ApplyEffects() (string, Result) {
	narration, err := a.target.(world.Openable).Open()
	if err != nil {
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.targetName})
}

type Close struct{ targeted }

func NewClose(b Binding, raw string) Action {
	a := &Close{targeted{base: base{kind: KindClose, endsTurn: true, actor: b.Actor}}}
	a.resolve(b, closePattern, raw)
	return a
}

func (a *Close) CheckPreconditions() bool {
	if !a.requireTarget() {
		return false
	}
	if _, ok := a.target.(world.Openable); !ok {
		return a.fail("The %s cannot be closed.", a.targetName)
	}
	return true
}

func (a *Close) ApplyEffects() (string, Result) {
	narration, err := a.target.(world.Openable).Close()
	if err != nil {
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.targetName})
}

type Lock struct{ targeted }

func NewLock(b Binding, raw string) Action {
	a := &Lock{targeted{base: base{kind: KindLock, endsTurn: true, actor: b.Actor}}}
	a.resolve(b, lockPattern, raw)
	return a
}

func (a *Lock) CheckPreconditions() bool {
	if !a.requireTarget() {
		return false
	}
	if _, ok := a.target.(world.Lockable); !ok {
		return a.fail("The %s has no lock.", a.targetName)
	}
	return true
}

func (a *Lock) ApplyEffects() (string, Result) {
	narration, err := a.target.(world.Lockable).Lock()
	if err != nil {
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.targetName})
}

type Unlock struct{ targeted }

func NewUnlock(b Binding, raw string) Action {
	a := &Unlock{targeted{base: base{kind: KindUnlock, endsTurn: true, actor: b.Actor}}}
	a.resolve(b, unlockPattern, raw)
	return a
}

func (a *Unlock) CheckPreconditions() bool {
	if !a.requireTarget() {
		return false
	}
	if _, ok := a.target.(world.Lockable); !ok {
		return a.fail("The %s has no lock.", a.targetName)
	}
	return true
}

func (a *Unlock) ApplyEffects() (string, Result) {
	narration, err := a.target.(world.Lockable).Unlock()
	if err != nil {
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.targetName})
}

type Activate struct{ targeted }

func NewActivate(b Binding, raw string) Action {
	a := &Activate{targeted{base: base{kind: KindActivate, endsTurn: true, actor: b.Actor}}}
	a.resolve(b, activatePattern, raw)
	return a
}

func (a *Activate) CheckPreconditions() bool {
	if !a.requireTarget() {
		return false
	}
	if _, ok := a.target.(world.Activatable); !ok {
		return a.fail("The %s cannot be turned on.", a.targetName)
	}
	return true
}

func (a *Activate) ApplyEffects() (string, Result) {
	narration, err := a.target.(world.Activatable).Activate()
	if err != nil {
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.targetName})
}

type Deactivate struct{ targeted }

func NewDeactivate(b Binding, raw string) Action {
	a := &Deactivate{targeted{base: base{kind: KindDeactivate, endsTurn: true, actor: b.Actor}}}
	a.resolve(b, deactivatePattern, raw)
	return a
}

func (a *Deactivate) CheckPreconditions() bool {
	if !a.requireTarget() {
		return false
	}
	if _, ok := a.target.(world.Activatable); !ok {
		return a.fail("The %s cannot be turned off.", a.targetName)
	}
	return true
}

func (a *Deactivate) ApplyEffects() (string, Result) {
	narration, err := a.target.(world.Activatable).Deactivate()
	if err != nil {
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.targetName})
}

type Use struct{ targeted }

func NewUse(b Binding, raw string) Action {
	a := &Use{targeted{base: base{kind: KindUse, endsTurn: true, actor: b.Actor}}}
	a.resolve(b, usePattern, raw)
	return a
}

func (a *Use) CheckPreconditions() bool {
	if !a.requireTarget() {
		return false
	}
	usable, ok := a.target.(world.Usable)
	if !ok {
		return a.fail("The %s cannot be used that way.", a.targetName)
	}
	if usable.IsBeingUsedBy(a.actor) {
		return a.fail("You are already using the %s.", a.targetName)
	}
	return true
}

func (a *Use) ApplyEffects() (string, Result) {
	narration, err := a.target.(world.Usable).StartUsing(a.actor)
	if err != nil {
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.targetName})
}

type StopUsing struct{ targeted }

func NewStopUsing(b Binding, raw string) Action {
	a := &StopUsing{targeted{base: base{kind: KindStopUsing, endsTurn: true, actor: b.Actor}}}
	a.resolve(b, stopUsingPattern, raw)
	return a
}

func (a *StopUsing) CheckPreconditions() bool {
	if !a.requireTarget() {
		return false
	}
	usable, ok := a.target.(world.Usable)
	if !ok {
		return a.fail("The %s cannot be used that way.", a.targetName)
	}
	if !usable.IsBeingUsedBy(a.actor) {
		return a.fail("You are not using the %s.", a.targetName)
	}
	return true
}

func (a *StopUsing) ApplyEffects() (string, Result) {
	narration, err := a.target.(world.Usable).StopUsing(a.actor)
	if err != nil {
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.targetName})
}
