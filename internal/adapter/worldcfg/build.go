package worldcfg

import (
	"fmt"

	"hearthverse/internal/domain/world"
)

// Build constructs the domain graph from a validated config. Dangling
// references (unknown locations, containers, block targets) abort the
// build; steady-state turn execution never sees a broken graph.
func Build(cfg Config) (*world.World, error) {
	w := world.New()

	locations := map[string]*world.Location{}
	for _, spec := range cfg.Locations {
		loc := world.NewLocation(spec.Name, spec.Description)
		if err := w.AddLocation(loc); err != nil {
			return nil, err
		}
		locations[spec.Name] = loc
	}
	for _, spec := range cfg.Locations {
		for direction, target := range spec.Connections {
			to, ok := locations[target]
			if !ok {
				return nil, fmt.Errorf("location %q connects %s to unknown location %q", spec.Name, direction, target)
			}
			locations[spec.Name].Connect(direction, to)
		}
	}

	objs := map[string]world.Object{}
	containers := map[string]world.Container{}
	doors := map[string]*world.Door{}
	for _, spec := range cfg.Objects {
		obj, err := buildObject(spec)
		if err != nil {
			return nil, err
		}
		objs[spec.Name] = obj
		if box, ok := obj.(world.Container); ok {
			containers[spec.Name] = box
		}
		if door, ok := obj.(*world.Door); ok {
			doors[spec.Name] = door
		}
	}
	// Placement runs after every container exists, so order in the file
	// does not matter.
	for _, spec := range cfg.Objects {
		obj := objs[spec.Name]
		switch {
		case spec.Container != "":
			box, ok := containers[spec.Container]
			if !ok {
				return nil, fmt.Errorf("object %q placed in unknown container %q", spec.Name, spec.Container)
			}
			item, ok := obj.(world.Portable)
			if !ok {
				return nil, fmt.Errorf("object %q is not portable and cannot go in container %q", spec.Name, spec.Container)
			}
			if err := stockContainer(box, item); err != nil {
				return nil, fmt.Errorf("stock container %q: %w", spec.Container, err)
			}
		case spec.Location != "":
			loc, ok := locations[spec.Location]
			if !ok {
				return nil, fmt.Errorf("object %q placed in unknown location %q", spec.Name, spec.Location)
			}
			if err := loc.AddObject(obj); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("object %q has neither location nor container", spec.Name)
		}
	}

	for _, spec := range cfg.Objects {
		for _, block := range spec.Blocks {
			door, ok := doors[spec.Name]
			if !ok {
				return nil, fmt.Errorf("object %q declares a block but is not a door", spec.Name)
			}
			loc, ok := locations[block.Location]
			if !ok {
				return nil, fmt.Errorf("door %q blocks unknown location %q", spec.Name, block.Location)
			}
			loc.SetBlock(block.Direction, world.DoorBlock{Door: door})
		}
	}

	for _, spec := range cfg.Characters {
		loc, ok := locations[spec.Location]
		if !ok {
			return nil, fmt.Errorf("character %q starts in unknown location %q", spec.Name, spec.Location)
		}
		c := world.NewCharacter(spec.Name, spec.Description)
		if err := w.AddCharacter(c, loc); err != nil {
			return nil, err
		}
		for _, itemSpec := range spec.Inventory {
			obj, err := buildObject(itemSpec)
			if err != nil {
				return nil, err
			}
			item, ok := obj.(world.Portable)
			if !ok {
				return nil, fmt.Errorf("inventory object %q of %q is not portable", itemSpec.Name, spec.Name)
			}
			if err := c.AddToInventory(item); err != nil {
				return nil, err
			}
		}
	}

	return w, nil
}

func buildObject(spec ObjectSpec) (world.Object, error) {
	var obj world.Object
	switch spec.Kind {
	case "appliance":
		obj = world.NewAppliance(spec.Name, spec.Description)
	case "storage":
		unit := world.NewStorageUnit(spec.Name, spec.Description, spec.Lockable)
		if spec.Open {
			if _, err := unit.Open(); err != nil {
				return nil, fmt.Errorf("object %q: %w", spec.Name, err)
			}
		}
		if spec.Locked {
			if _, err := unit.Lock(); err != nil {
				return nil, fmt.Errorf("object %q: %w", spec.Name, err)
			}
		}
		obj = unit
	case "furniture":
		obj = world.NewFurniture(spec.Name, spec.Description)
	case "door":
		door := world.NewDoor(spec.Name, spec.Description)
		if spec.Open {
			if _, err := door.Open(); err != nil {
				return nil, fmt.Errorf("object %q: %w", spec.Name, err)
			}
		}
		if spec.Locked {
			if _, err := door.Lock(); err != nil {
				return nil, fmt.Errorf("object %q: %w", spec.Name, err)
			}
		}
		obj = door
	case "item":
		obj = world.NewItem(spec.Name, spec.Description)
	case "food":
		obj = world.NewFood(spec.Name, spec.Description)
	default:
		return nil, fmt.Errorf("object %q has unknown kind %q", spec.Name, spec.Kind)
	}
	for key, value := range spec.Properties {
		obj.SetProperty(key, value)
	}
	return obj, nil
}

// stockContainer bypasses the open check for build-time placement: a
// fridge may start closed yet stocked.
func stockContainer(box world.Container, item world.Portable) error {
	if openable, ok := box.(world.Openable); ok && !openable.IsOpen() {
		if _, err := openable.Open(); err != nil {
			return err
		}
		if _, err := box.PlaceItem(item, nil); err != nil {
			return err
		}
		if _, err := openable.Close(); err != nil {
			return err
		}
		return nil
	}
	_, err := box.PlaceItem(item, nil)
	return err
}
