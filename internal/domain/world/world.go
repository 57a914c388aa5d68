package world

import (
	"fmt"
	"sort"
)

// World is the root of the object graph built by the configuration loader.
// It is mutated only through the action system, on the single turn path.
type World struct {
	locations  map[string]*Location
	characters map[string]*Character
}

func New() *World {
	return &World{
		locations:  map[string]*Location{},
		characters: map[string]*Character{},
	}
}

func (w *World) AddLocation(l *Location) error {
	if _, exists := w.locations[l.Name()]; exists {
		return fmt.Errorf("duplicate location %q", l.Name())
	}
	w.locations[l.Name()] = l
	return nil
}

func (w *World) Location(name string) (*Location, bool) {
	l, ok := w.locations[name]
	return l, ok
}

func (w *World) AddCharacter(c *Character, at *Location) error {
	if _, exists := w.characters[c.Name()]; exists {
		return fmt.Errorf("duplicate character %q", c.Name())
	}
	w.characters[c.Name()] = c
	c.MoveTo(at)
	return nil
}

func (w *World) Character(name string) (*Character, bool) {
	c, ok := w.characters[name]
	return c, ok
}

func (w *World) CharacterNames() []string {
	out := make([]string, 0, len(w.characters))
	for name := range w.characters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FindObject resolves a name to an object visible to the actor: the current
// location first, then the actor's inventory, then the contents of open
// containers in the location.
func (w *World) FindObject(actor *Character, name string) (Object, bool) {
	loc := actor.Location()
	if loc != nil {
		if obj, ok := loc.Object(name); ok {
			return obj, true
		}
	}
	if item, ok := actor.InventoryItem(name); ok {
		return item, true
	}
	if loc != nil {
		for _, obj := range loc.Objects() {
			container, ok := obj.(Container)
			if !ok {
				continue
			}
			if openable, ok := obj.(Openable); ok && !openable.IsOpen() {
				continue
			}
			if item, ok := container.FindItem(name); ok {
				return item, true
			}
		}
	}
	return nil, false
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
