package world

import (
	"strings"
	"testing"
)

func TestApplianceActivation(t *testing.T) {
	sink := NewAppliance("sink", "A stainless steel sink.")
	if sink.IsActive() {
		t.Fatalf("expected new appliance to be off")
	}

	narration, err := sink.Activate()
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if narration != "You turn on the sink." {
		t.Fatalf("unexpected narration: %q", narration)
	}
	if !sink.IsActive() {
		t.Fatalf("expected appliance to be on")
	}

	if _, err := sink.Activate(); err == nil {
		t.Fatalf("expected second activate to fail")
	}
	if !sink.IsActive() {
		t.Fatalf("failed activate must not flip state")
	}

	if _, err := sink.Deactivate(); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := sink.Deactivate(); err == nil {
		t.Fatalf("expected second deactivate to fail")
	}
}

func TestStorageUnitLockOpenInvariant(t *testing.T) {
	fridge := NewStorageUnit("fridge", "A humming fridge.", true)

	if _, err := fridge.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := fridge.Lock(); err == nil {
		t.Fatalf("expected lock of open unit to fail")
	}
	if fridge.IsLocked() {
		t.Fatalf("failed lock must not flip state")
	}

	if _, err := fridge.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := fridge.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if _, err := fridge.Open(); err == nil {
		t.Fatalf("expected open of locked unit to fail")
	}
	if fridge.IsOpen() {
		t.Fatalf("failed open must not flip state")
	}

	if _, err := fridge.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := fridge.Open(); err != nil {
		t.Fatalf("open after unlock: %v", err)
	}
}

func TestStorageUnitWithoutLock(t *testing.T) {
	cupboard := NewStorageUnit("cupboard", "A plain cupboard.", false)
	if _, err := cupboard.Lock(); err == nil {
		t.Fatalf("expected lock without lock hardware to fail")
	}
	if _, err := cupboard.Unlock(); err == nil {
		t.Fatalf("expected unlock without lock hardware to fail")
	}
}

func TestStorageUnitContents(t *testing.T) {
	fridge := NewStorageUnit("fridge", "A humming fridge.", false)
	apple := NewItem("apple", "A red apple.")

	if _, err := fridge.PlaceItem(apple, nil); err == nil {
		t.Fatalf("expected placement into closed unit to fail")
	}
	if desc := fridge.Examine(nil); !strings.Contains(desc, "closed") {
		t.Fatalf("closed unit must hide contents, got %q", desc)
	}

	if _, err := fridge.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := fridge.PlaceItem(apple, nil); err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, err := fridge.PlaceItem(apple, nil); err == nil {
		t.Fatalf("expected duplicate placement to fail")
	}
	if desc := fridge.Examine(nil); !strings.Contains(desc, "apple") {
		t.Fatalf("open unit must show contents, got %q", desc)
	}

	item, ok := fridge.RemoveItem("apple")
	if !ok || item.Name() != "apple" {
		t.Fatalf("remove returned %v %v", item, ok)
	}
	if _, ok := fridge.FindItem("apple"); ok {
		t.Fatalf("removed item still findable")
	}
}

func TestDoorLockOpenInvariant(t *testing.T) {
	door := NewDoor("back door", "A wooden back door.")
	if _, err := door.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if _, err := door.Open(); err == nil {
		t.Fatalf("expected open of locked door to fail")
	}
	if _, err := door.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := door.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := door.Lock(); err == nil {
		t.Fatalf("expected lock of open door to fail")
	}
}

func TestUsableSingleOccupancy(t *testing.T) {
	bed := NewFurniture("bed", "A narrow bed.")
	alice := NewCharacter("alice", "")
	bob := NewCharacter("bob", "")

	if _, err := bed.StartUsing(alice); err != nil {
		t.Fatalf("start using: %v", err)
	}
	if _, err := bed.StartUsing(bob); err == nil {
		t.Fatalf("expected occupied furniture to refuse a second user")
	}
	if _, err := bed.StopUsing(bob); err == nil {
		t.Fatalf("expected stop by non-user to fail")
	}
	if _, err := bed.StopUsing(alice); err != nil {
		t.Fatalf("stop using: %v", err)
	}
	if _, err := bed.StartUsing(bob); err != nil {
		t.Fatalf("start using after release: %v", err)
	}
}

func TestFoodConsumeOnce(t *testing.T) {
	apple := NewFood("apple", "A red apple.")
	alice := NewCharacter("alice", "")

	if _, err := apple.Consume(alice); err == nil {
		t.Fatalf("expected consume of item not held to fail")
	}

	if err := alice.AddToInventory(apple); err != nil {
		t.Fatalf("add to inventory: %v", err)
	}
	if _, err := apple.Consume(alice); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if _, ok := alice.InventoryItem("apple"); ok {
		t.Fatalf("consumed item still in inventory")
	}
	if _, err := apple.Consume(alice); err == nil {
		t.Fatalf("expected second consume to fail")
	}
}
