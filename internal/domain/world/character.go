package world

import "fmt"

// Character is an actor in the world. Its location is a back-reference;
// the location owns presence, so movement always goes through MoveTo.
type Character struct {
	name        string
	description string
	location    *Location
	inventory   map[string]Portable
	invOrder    []string
}

func NewCharacter(name, description string) *Character {
	return &Character{
		name:        name,
		description: description,
		inventory:   map[string]Portable{},
	}
}

func (c *Character) Name() string { return c.name }

func (c *Character) Description() string { return c.description }

func (c *Character) Location() *Location { return c.location }

// MoveTo transfers the character between locations atomically: presence is
// removed from the old location before it is added to the new one.
func (c *Character) MoveTo(to *Location) {
	if c.location != nil {
		c.location.removeCharacter(c.name)
	}
	c.location = to
	if to != nil {
		to.addCharacter(c)
	}
}

func (c *Character) AddToInventory(item Portable) error {
	if _, exists := c.inventory[item.Name()]; exists {
		return fmt.Errorf("%s already carries a %s", c.name, item.Name())
	}
	c.inventory[item.Name()] = item
	c.invOrder = append(c.invOrder, item.Name())
	return nil
}

func (c *Character) RemoveFromInventory(name string) (Portable, bool) {
	item, ok := c.inventory[name]
	if !ok {
		return nil, false
	}
	delete(c.inventory, name)
	for i, n := range c.invOrder {
		if n == name {
			c.invOrder = append(c.invOrder[:i], c.invOrder[i+1:]...)
			break
		}
	}
	return item, true
}

func (c *Character) InventoryItem(name string) (Portable, bool) {
	item, ok := c.inventory[name]
	return item, ok
}

func (c *Character) InventoryNames() []string {
	out := make([]string, len(c.invOrder))
	copy(out, c.invOrder)
	return out
}

// ReceiveItem lets other characters hand items over.
func (c *Character) ReceiveItem(item Portable, actor *Character) (string, error) {
	if err := c.AddToInventory(item); err != nil {
		return "", err
	}
	return fmt.Sprintf("You give the %s to %s.", item.Name(), c.name), nil
}

func (c *Character) Examine(_ *Character) string {
	if len(c.invOrder) == 0 {
		return c.description
	}
	return fmt.Sprintf("%s Carrying: %s.", c.description, joinNames(c.invOrder))
}
