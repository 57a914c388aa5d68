package world

// Capabilities are narrow interfaces a world object may implement. Generic
// actions type-assert against them instead of switching on object kinds, so
// a new object participates in every matching verb for free.
//
// Each verb method owns its own state transition and returns the narration
// for a successful transition; illegal transitions return an error and leave
// state untouched.

type Activatable interface {
	Activate() (string, error)
	Deactivate() (string, error)
	IsActive() bool
}

type Openable interface {
	Open() (string, error)
	Close() (string, error)
	IsOpen() bool
}

// Lockable objects are always Openable as well; locking an open object is
// an illegal transition.
type Lockable interface {
	Openable
	Lock() (string, error)
	Unlock() (string, error)
	IsLocked() bool
}

// Usable objects admit at most one user at a time.
type Usable interface {
	StartUsing(actor *Character) (string, error)
	StopUsing(actor *Character) (string, error)
	IsBeingUsedBy(actor *Character) bool
}

// Container holds nested items. Closed containers hide their contents from
// examine and refuse placement.
type Container interface {
	PlaceItem(item Portable, actor *Character) (string, error)
	RemoveItem(name string) (Portable, bool)
	FindItem(name string) (Portable, bool)
	Contents() []Portable
}

// Consumable objects remove themselves from the actor's inventory when
// consumed; a second consume fails because the object no longer exists.
type Consumable interface {
	Consume(actor *Character) (string, error)
}

type Examinable interface {
	Examine(actor *Character) string
}

// Recipient is a non-container party that can be handed items, such as
// another character.
type Recipient interface {
	ReceiveItem(item Portable, actor *Character) (string, error)
}
