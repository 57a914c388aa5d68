package world

import "fmt"

const (
	propActive = "is_active"
	propOpen   = "is_open"
	propLocked = "is_locked"
	propUsedBy = "used_by"
)

// Appliance is a fixed installation that can be switched on and off and
// optionally occupied by one user at a time (sink, stove, shower).
type Appliance struct {
	Thing
}

func NewAppliance(name, description string) *Appliance {
	a := &Appliance{Thing: NewThing(name, description)}
	a.SetProperty(propActive, false)
	return a
}

func (a *Appliance) Activate() (string, error) {
	if a.IsActive() {
		return "", fmt.Errorf("the %s is already on", a.Name())
	}
	a.SetProperty(propActive, true)
	return fmt.Sprintf("You turn on the %s.", a.Name()), nil
}

func (a *Appliance) Deactivate() (string, error) {
	if !a.IsActive() {
		return "", fmt.Errorf("the %s is already off", a.Name())
	}
	a.SetProperty(propActive, false)
	return fmt.Sprintf("You turn off the %s.", a.Name()), nil
}

func (a *Appliance) IsActive() bool { return a.boolProperty(propActive) }

func (a *Appliance) StartUsing(actor *Character) (string, error) {
	if user, ok := a.Property(propUsedBy); ok && user != "" && user != actor.Name() {
		return "", fmt.Errorf("the %s is already in use", a.Name())
	}
	a.SetProperty(propUsedBy, actor.Name())
	return fmt.Sprintf("You start using the %s.", a.Name()), nil
}

func (a *Appliance) StopUsing(actor *Character) (string, error) {
	if !a.IsBeingUsedBy(actor) {
		return "", fmt.Errorf("you are not using the %s", a.Name())
	}
	a.SetProperty(propUsedBy, "")
	return fmt.Sprintf("You stop using the %s.", a.Name()), nil
}

func (a *Appliance) IsBeingUsedBy(actor *Character) bool {
	user, ok := a.Property(propUsedBy)
	return ok && user == actor.Name()
}

func (a *Appliance) Examine(_ *Character) string {
	state := "off"
	if a.IsActive() {
		state = "on"
	}
	return fmt.Sprintf("%s It is currently %s.", a.Description(), state)
}

// StorageUnit is an openable container fixture (fridge, cupboard, chest).
// Units built with a lock also satisfy Lockable.
type StorageUnit struct {
	Thing
	items   map[string]Portable
	order   []string
	hasLock bool
}

func NewStorageUnit(name, description string, hasLock bool) *StorageUnit {
	s := &StorageUnit{
		Thing:   NewThing(name, description),
		items:   map[string]Portable{},
		hasLock: hasLock,
	}
	s.SetProperty(propOpen, false)
	s.SetProperty(propLocked, false)
	return s
}

func (s *StorageUnit) Open() (string, error) {
	if s.IsLocked() {
		return "", fmt.Errorf("the %s is locked", s.Name())
	}
	if s.IsOpen() {
		return "", fmt.Errorf("the %s is already open", s.Name())
	}
	s.SetProperty(propOpen, true)
	return fmt.Sprintf("You open the %s.", s.Name()), nil
}

func (s *StorageUnit) Close() (string, error) {
	if !s.IsOpen() {
		return "", fmt.Errorf("the %s is already closed", s.Name())
	}
	s.SetProperty(propOpen, false)
	return fmt.Sprintf("You close the %s.", s.Name()), nil
}

func (s *StorageUnit) IsOpen() bool { return s.boolProperty(propOpen) }

func (s *StorageUnit) Lock() (string, error) {
	if !s.hasLock {
		return "", fmt.Errorf("the %s has no lock", s.Name())
	}
	if s.IsOpen() {
		return "", fmt.Errorf("you cannot lock the %s while it is open", s.Name())
	}
	if s.IsLocked() {
		return "", fmt.Errorf("the %s is already locked", s.Name())
	}
	s.SetProperty(propLocked, true)
	return fmt.Sprintf("You lock the %s.", s.Name()), nil
}

func (s *StorageUnit) Unlock() (string, error) {
	if !s.hasLock {
		return "", fmt.Errorf("the %s has no lock", s.Name())
	}
	if !s.IsLocked() {
		return "", fmt.Errorf("the %s is not locked", s.Name())
	}
	s.SetProperty(propLocked, false)
	return fmt.Sprintf("You unlock the %s.", s.Name()), nil
}

func (s *StorageUnit) IsLocked() bool { return s.boolProperty(propLocked) }

func (s *StorageUnit) PlaceItem(item Portable, _ *Character) (string, error) {
	if !s.IsOpen() {
		return "", fmt.Errorf("the %s is closed", s.Name())
	}
	if _, exists := s.items[item.Name()]; exists {
		return "", fmt.Errorf("there is already a %s in the %s", item.Name(), s.Name())
	}
	s.items[item.Name()] = item
	s.order = append(s.order, item.Name())
	return fmt.Sprintf("You put the %s in the %s.", item.Name(), s.Name()), nil
}

func (s *StorageUnit) RemoveItem(name string) (Portable, bool) {
	item, ok := s.items[name]
	if !ok {
		return nil, false
	}
	delete(s.items, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return item, true
}

func (s *StorageUnit) FindItem(name string) (Portable, bool) {
	item, ok := s.items[name]
	return item, ok
}

func (s *StorageUnit) Contents() []Portable {
	out := make([]Portable, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.items[name])
	}
	return out
}

func (s *StorageUnit) Examine(_ *Character) string {
	if !s.IsOpen() {
		return fmt.Sprintf("%s It is closed.", s.Description())
	}
	if len(s.order) == 0 {
		return fmt.Sprintf("%s It is open and empty.", s.Description())
	}
	names := make([]string, 0, len(s.order))
	names = append(names, s.order...)
	return fmt.Sprintf("%s Inside you see: %s.", s.Description(), joinNames(names))
}

// Furniture can be occupied by one character at a time (chair, bed, sofa).
type Furniture struct {
	Thing
}

func NewFurniture(name, description string) *Furniture {
	return &Furniture{Thing: NewThing(name, description)}
}

func (f *Furniture) StartUsing(actor *Character) (string, error) {
	if user, ok := f.Property(propUsedBy); ok && user != "" && user != actor.Name() {
		return "", fmt.Errorf("the %s is occupied", f.Name())
	}
	f.SetProperty(propUsedBy, actor.Name())
	return fmt.Sprintf("You start using the %s.", f.Name()), nil
}

func (f *Furniture) StopUsing(actor *Character) (string, error) {
	if !f.IsBeingUsedBy(actor) {
		return "", fmt.Errorf("you are not using the %s", f.Name())
	}
	f.SetProperty(propUsedBy, "")
	return fmt.Sprintf("You get up from the %s.", f.Name()), nil
}

func (f *Furniture) IsBeingUsedBy(actor *Character) bool {
	user, ok := f.Property(propUsedBy)
	return ok && user == actor.Name()
}

func (f *Furniture) Examine(_ *Character) string { return f.Description() }

// Door connects two locations and vetoes traversal while it is not open.
type Door struct {
	Thing
}

func NewDoor(name, description string) *Door {
	d := &Door{Thing: NewThing(name, description)}
	d.SetProperty(propOpen, false)
	d.SetProperty(propLocked, false)
	return d
}

func (d *Door) Open() (string, error) {
	if d.IsLocked() {
		return "", fmt.Errorf("the %s is locked", d.Name())
	}
	if d.IsOpen() {
		return "", fmt.Errorf("the %s is already open", d.Name())
	}
	d.SetProperty(propOpen, true)
	return fmt.Sprintf("You open the %s.", d.Name()), nil
}

func (d *Door) Close() (string, error) {
	if !d.IsOpen() {
		return "", fmt.Errorf("the %s is already closed", d.Name())
	}
	d.SetProperty(propOpen, false)
	return fmt.Sprintf("You close the %s.", d.Name()), nil
}

func (d *Door) IsOpen() bool { return d.boolProperty(propOpen) }

func (d *Door) Lock() (string, error) {
	if d.IsOpen() {
		return "", fmt.Errorf("you cannot lock the %s while it is open", d.Name())
	}
	if d.IsLocked() {
		return "", fmt.Errorf("the %s is already locked", d.Name())
	}
	d.SetProperty(propLocked, true)
	return fmt.Sprintf("You lock the %s.", d.Name()), nil
}

func (d *Door) Unlock() (string, error) {
	if !d.IsLocked() {
		return "", fmt.Errorf("the %s is not locked", d.Name())
	}
	d.SetProperty(propLocked, false)
	return fmt.Sprintf("You unlock the %s.", d.Name()), nil
}

func (d *Door) IsLocked() bool { return d.boolProperty(propLocked) }

func (d *Door) Examine(_ *Character) string {
	switch {
	case d.IsLocked():
		return fmt.Sprintf("%s It is locked.", d.Description())
	case d.IsOpen():
		return fmt.Sprintf("%s It is open.", d.Description())
	default:
		return fmt.Sprintf("%s It is closed.", d.Description())
	}
}

// Portable objects fit in inventories and containers. Item provides the
// marker; everything built on Item is portable.
type Portable interface {
	Object
	portable()
}

// Item is the basic portable object.
type Item struct {
	Thing
}

func NewItem(name, description string) *Item {
	return &Item{Thing: NewThing(name, description)}
}

func (i *Item) portable() {}

func (i *Item) Examine(_ *Character) string { return i.Description() }

// Food is an item that can be eaten once; consuming removes it from the
// actor's inventory.
type Food struct {
	Item
	consumed bool
}

func NewFood(name, description string) *Food {
	return &Food{Item: Item{Thing: NewThing(name, description)}}
}

func (f *Food) Consume(actor *Character) (string, error) {
	if f.consumed {
		return "", fmt.Errorf("the %s is already gone", f.Name())
	}
	if _, ok := actor.InventoryItem(f.Name()); !ok {
		return "", fmt.Errorf("you are not holding the %s", f.Name())
	}
	actor.RemoveFromInventory(f.Name())
	f.consumed = true
	return fmt.Sprintf("You eat the %s.", f.Name()), nil
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
