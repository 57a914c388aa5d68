package world

import "fmt"

// Block is a predicate that can veto traversal of a connection.
type Block interface {
	IsBlocked() (bool, string)
}

// DoorBlock vetoes traversal while its door is not open.
type DoorBlock struct {
	Door *Door
}

func (b DoorBlock) IsBlocked() (bool, string) {
	if b.Door == nil || b.Door.IsOpen() {
		return false, ""
	}
	if b.Door.IsLocked() {
		return true, fmt.Sprintf("The %s is locked.", b.Door.Name())
	}
	return true, fmt.Sprintf("The %s is closed.", b.Door.Name())
}

// Location is a named node in the world graph. It owns the objects and
// characters present in it and its directional connections.
type Location struct {
	name        string
	description string
	objects     map[string]Object
	objectOrder []string
	characters  map[string]*Character
	charOrder   []string
	connections map[string]*Location
	blocks      map[string]Block
}

func NewLocation(name, description string) *Location {
	return &Location{
		name:        name,
		description: description,
		objects:     map[string]Object{},
		characters:  map[string]*Character{},
		connections: map[string]*Location{},
		blocks:      map[string]Block{},
	}
}

func (l *Location) Name() string { return l.name }

func (l *Location) Description() string { return l.description }

func (l *Location) Connect(direction string, to *Location) {
	l.connections[direction] = to
}

func (l *Location) SetBlock(direction string, block Block) {
	l.blocks[direction] = block
}

// Exit resolves a direction to its destination and checks blocks. A blocked
// exit returns the destination as nil plus the block's reason.
func (l *Location) Exit(direction string) (*Location, string) {
	to, ok := l.connections[direction]
	if !ok {
		return nil, fmt.Sprintf("There is no exit %s from the %s.", direction, l.name)
	}
	if block, ok := l.blocks[direction]; ok {
		if blocked, reason := block.IsBlocked(); blocked {
			return nil, reason
		}
	}
	return to, ""
}

func (l *Location) Connections() map[string]*Location {
	out := make(map[string]*Location, len(l.connections))
	for dir, to := range l.connections {
		out[dir] = to
	}
	return out
}

func (l *Location) AddObject(obj Object) error {
	if _, exists := l.objects[obj.Name()]; exists {
		return fmt.Errorf("object %q already present in %s", obj.Name(), l.name)
	}
	l.objects[obj.Name()] = obj
	l.objectOrder = append(l.objectOrder, obj.Name())
	return nil
}

func (l *Location) RemoveObject(name string) (Object, bool) {
	obj, ok := l.objects[name]
	if !ok {
		return nil, false
	}
	delete(l.objects, name)
	for i, n := range l.objectOrder {
		if n == name {
			l.objectOrder = append(l.objectOrder[:i], l.objectOrder[i+1:]...)
			break
		}
	}
	return obj, true
}

func (l *Location) Object(name string) (Object, bool) {
	obj, ok := l.objects[name]
	return obj, ok
}

func (l *Location) Objects() []Object {
	out := make([]Object, 0, len(l.objectOrder))
	for _, name := range l.objectOrder {
		out = append(out, l.objects[name])
	}
	return out
}

func (l *Location) addCharacter(c *Character) {
	if _, exists := l.characters[c.Name()]; exists {
		return
	}
	l.characters[c.Name()] = c
	l.charOrder = append(l.charOrder, c.Name())
}

func (l *Location) removeCharacter(name string) {
	if _, ok := l.characters[name]; !ok {
		return
	}
	delete(l.characters, name)
	for i, n := range l.charOrder {
		if n == name {
			l.charOrder = append(l.charOrder[:i], l.charOrder[i+1:]...)
			break
		}
	}
}

func (l *Location) Character(name string) (*Character, bool) {
	c, ok := l.characters[name]
	return c, ok
}

func (l *Location) Characters() []*Character {
	out := make([]*Character, 0, len(l.charOrder))
	for _, name := range l.charOrder {
		out = append(out, l.characters[name])
	}
	return out
}

// Describe renders what a character sees when looking around.
func (l *Location) Describe(viewer *Character) string {
	out := fmt.Sprintf("%s. %s", l.name, l.description)
	if len(l.objectOrder) > 0 {
		out += fmt.Sprintf(" You see: %s.", joinNames(l.objectOrder))
	}
	others := make([]string, 0, len(l.charOrder))
	for _, name := range l.charOrder {
		if viewer == nil || name != viewer.Name() {
			others = append(others, name)
		}
	}
	if len(others) > 0 {
		out += fmt.Sprintf(" Also here: %s.", joinNames(others))
	}
	if len(l.connections) > 0 {
		dirs := make([]string, 0, len(l.connections))
		for _, dir := range sortedKeys(l.connections) {
			dirs = append(dirs, dir)
		}
		out += fmt.Sprintf(" Exits: %s.", joinNames(dirs))
	}
	return out
}
