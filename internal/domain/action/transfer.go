package action

import (
	"fmt"
	"regexp"

	"hearthverse/internal/domain/world"
)

var (
	placePattern = regexp.MustCompile(`^(?:put|place) (.+?) (?:in|into|on|inside) (.+)$`)
	givePattern  = regexp.MustCompile(`^(?:give|hand) (.+?) to (.+)$`)
)

// Place moves a held item into a Container in the same location.
type Place struct {
	base
	itemName string
	boxName  string
	box      world.Container
}

func NewPlace(b Binding, raw string) Action {
	a := &Place{base: base{kind: KindPlace, endsTurn: true, actor: b.Actor}}
	if m := placePattern.FindStringSubmatch(raw); m != nil {
		a.itemName, a.boxName = m[1], m[2]
	}
	if a.boxName != "" && b.Actor != nil && b.Actor.Location() != nil {
		if obj, ok := b.Actor.Location().Object(a.boxName); ok {
			a.box, _ = obj.(world.Container)
		}
	}
	return a
}

func (a *Place) CheckPreconditions() bool {
	if a.itemName == "" || a.boxName == "" {
		return a.fail("Put what where?")
	}
	if a.actor == nil {
		return a.fail("You are nowhere.")
	}
	if _, held := a.actor.InventoryItem(a.itemName); !held {
		return a.fail("You are not carrying any %s.", a.itemName)
	}
	if a.box == nil {
		return a.fail("There is no %s to put things in here.", a.boxName)
	}
	if openable, ok := a.box.(world.Openable); ok && !openable.IsOpen() {
		return a.fail("The %s is closed.", a.boxName)
	}
	return true
}

func (a *Place) ApplyEffects() (string, Result) {
	item, ok := a.actor.RemoveFromInventory(a.itemName)
	if !ok {
		return a.failed(fmt.Errorf("you are not carrying any %s", a.itemName))
	}
	narration, err := a.box.PlaceItem(item, a.actor)
	if err != nil {
		_ = a.actor.AddToInventory(item)
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.itemName, Recipient: a.boxName})
}

// Give hands a held item to a Recipient in the same location.
type Give struct {
	base
	itemName      string
	recipientName string
	recipient     world.Recipient
}

func NewGive(b Binding, raw string) Action {
	a := &Give{base: base{kind: KindGive, endsTurn: true, actor: b.Actor}}
	if m := givePattern.FindStringSubmatch(raw); m != nil {
		a.itemName, a.recipientName = m[1], m[2]
	}
	if a.recipientName != "" && b.Actor != nil && b.Actor.Location() != nil {
		loc := b.Actor.Location()
		if c, ok := loc.Character(a.recipientName); ok {
			a.recipient = c
		} else if obj, ok := loc.Object(a.recipientName); ok {
			a.recipient, _ = obj.(world.Recipient)
		}
	}
	return a
}

func (a *Give) CheckPreconditions() bool {
	if a.itemName == "" || a.recipientName == "" {
		return a.fail("Give what to whom?")
	}
	if a.actor == nil {
		return a.fail("You are nowhere.")
	}
	if a.recipientName == a.actor.Name() {
		return a.fail("You already have the %s.", a.itemName)
	}
	if _, held := a.actor.InventoryItem(a.itemName); !held {
		return a.fail("You are not carrying any %s.", a.itemName)
	}
	if a.recipient == nil {
		return a.fail("There is nobody called %s here.", a.recipientName)
	}
	return true
}

func (a *Give) ApplyEffects() (string, Result) {
	item, ok := a.actor.RemoveFromInventory(a.itemName)
	if !ok {
		return a.failed(fmt.Errorf("you are not carrying any %s", a.itemName))
	}
	narration, err := a.recipient.ReceiveItem(item, a.actor)
	if err != nil {
		_ = a.actor.AddToInventory(item)
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.itemName, Recipient: a.recipientName})
}

var consumePattern = regexp.MustCompile(`^(?:eat|drink|consume) (.+)$`)

// Consume eats a held Consumable; the capability removes the item from the
// inventory itself, so a second consume of the same object fails.
type Consume struct {
	base
	targetName string
	target     world.Consumable
}

func NewConsume(b Binding, raw string) Action {
	a := &Consume{base: base{kind: KindConsume, endsTurn: true, actor: b.Actor}}
	if m := consumePattern.FindStringSubmatch(raw); m != nil {
		a.targetName = m[1]
	}
	if a.targetName != "" && b.Actor != nil {
		if item, ok := b.Actor.InventoryItem(a.targetName); ok {
			a.target, _ = item.(world.Consumable)
			return a
		}
		if b.World != nil {
			if obj, ok := b.World.FindObject(b.Actor, a.targetName); ok {
				a.target, _ = obj.(world.Consumable)
			}
		}
	}
	return a
}

func (a *Consume) CheckPreconditions() bool {
	if a.targetName == "" {
		return a.fail("Eat what?")
	}
	if a.actor == nil {
		return a.fail("You are nowhere.")
	}
	if a.target == nil {
		return a.fail("There is no %s you could eat.", a.targetName)
	}
	if _, held := a.actor.InventoryItem(a.targetName); !held {
		return a.fail("You need to pick up the %s first.", a.targetName)
	}
	return true
}

func (a *Consume) ApplyEffects() (string, Result) {
	narration, err := a.target.Consume(a.actor)
	if err != nil {
		return a.failed(err)
	}
	return a.ok(narration, Result{Target: a.targetName})
}
