package world

// Object is anything that can sit in a location, a container or an
// inventory: appliances, furniture, doors, portable items.
type Object interface {
	Name() string
	Description() string
	Property(key string) (any, bool)
	SetProperty(key string, value any)
}

// Thing carries the identity and free-form state shared by every world
// object. Concrete kinds embed it and add capability methods.
type Thing struct {
	name        string
	description string
	props       map[string]any
}

func NewThing(name, description string) Thing {
	return Thing{name: name, description: description, props: map[string]any{}}
}

func (t *Thing) Name() string { return t.name }

func (t *Thing) Description() string { return t.description }

func (t *Thing) Property(key string) (any, bool) {
	v, ok := t.props[key]
	return v, ok
}

func (t *Thing) SetProperty(key string, value any) {
	t.props[key] = value
}

func (t *Thing) boolProperty(key string) bool {
	v, ok := t.props[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}
