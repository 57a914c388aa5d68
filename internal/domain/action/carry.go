package action

import (
	"fmt"
	"regexp"

	"hearthverse/internal/domain/world"
)

var (
	takePattern = regexp.MustCompile(`^(?:take|get|pick up|grab) (.+)$`)
	dropPattern = regexp.MustCompile(`^(?:drop|put down) (.+)$`)
)

// Take transfers a portable item from the location (or an open container in
// it) into the actor's inventory. The transfer is remove-then-add; if the
// add fails the item is restored to its source.
type Take struct {
	base
	targetName string
	item       world.Portable
	fromLoc    *world.Location
	fromBox    world.Container
}

func NewTake(b Binding, raw string) Action {
	a := &Take{base: base{kind: KindTake, endsTurn: true, actor: b.Actor}}
	if m := takePattern.FindStringSubmatch(raw); m != nil {
		a.targetName = m[1]
	}
	if a.targetName == "" || b.Actor == nil {
		return a
	}
	loc := b.Actor.Location()
	if loc == nil {
		return a
	}
	if obj, ok := loc.Object(a.targetName); ok {
		if item, ok := obj.(world.Portable); ok {
			a.item = item
			a.fromLoc = loc
		}
		return a
	}
	for _, obj := range loc.Objects() {
		box, ok := obj.(world.Container)
		if !ok {
			continue
		}
		if openable, ok := obj.(world.Openable); ok && !openable.IsOpen() {
			continue
		}
		if item, ok := box.FindItem(a.targetName); ok {
			a.item = item
			a.fromBox = box
			break
		}
	}
	return a
}

func (a *Take) CheckPreconditions() bool {
	if a.targetName == "" {
		return a.fail("Take what?")
	}
	if a.actor == nil {
		return a.fail("You are nowhere.")
	}
	if _, held := a.actor.InventoryItem(a.targetName); held {
		return a.fail("You are already carrying the %s.", a.targetName)
	}
	if a.item == nil {
		if loc := a.actor.Location(); loc != nil {
			if _, fixed := loc.Object(a.targetName); fixed {
				return a.fail("The %s cannot be picked up.", a.targetName)
			}
		}
		return a.fail("You don't see any %s here.", a.targetName)
	}
	return true
}

func (a *Take) ApplyEffects() (string, Result) {
	switch {
	case a.fromLoc != nil:
		if _, ok := a.fromLoc.RemoveObject(a.item.Name()); !ok {
			return a.failed(fmt.Errorf("the %s is no longer here", a.targetName))
		}
		if err := a.actor.AddToInventory(a.item); err != nil {
			_ = a.fromLoc.AddObject(a.item)
			return a.failed(err)
		}
	case a.fromBox != nil:
		item, ok := a.fromBox.RemoveItem(a.item.Name())
		if !ok {
			return a.failed(fmt.Errorf("the %s is no longer here", a.targetName))
		}
		if err := a.actor.AddToInventory(item); err != nil {
			_, _ = a.fromBox.PlaceItem(item, a.actor)
			return a.failed(err)
		}
	default:
		return a.failed(fmt.Errorf("the %s is no longer here", a.targetName))
	}
	return a.ok(fmt.Sprintf("You take the %s.", a.item.Name()), Result{Target: a.item.Name()})
}

// Drop moves an inventory item onto the floor of the current location.
type Drop struct {
	base
	targetName string
}

func NewDrop(b Binding, raw string) Action {
	a := &Drop{base: base{kind: KindDrop, endsTurn: true, actor: b.Actor}}
	if m := dropPattern.FindStringSubmatch(raw); m != nil {
		a.targetName = m[1]
	}
	return a
}

func (a *Drop) CheckPreconditions() bool {
	if a.targetName == "" {
		return a.fail("Drop what?")
	}
	if a.actor == nil || a.actor.Location() == nil {
		return a.fail("You are nowhere.")
	}
	if _, held := a.actor.InventoryItem(a.targetName); !held {
		return a.fail("You are not carrying any %s.", a.targetName)
	}
	return true
}

func (a *Drop) ApplyEffects() (string, Result) {
	item, ok := a.actor.RemoveFromInventory(a.targetName)
	if !ok {
		return a.failed(fmt.Errorf("you are not carrying any %s", a.targetName))
	}
	if err := a.actor.Location().AddObject(item); err != nil {
		_ = a.actor.AddToInventory(item)
		return a.failed(err)
	}
	return a.ok(fmt.Sprintf("You put down the %s.", item.Name()), Result{Target: item.Name()})
}
