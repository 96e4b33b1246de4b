package scene

import "github.com/agiangrant/stagefit/host"

// Owner is the object an entity belongs to.
type Owner struct {
	id     string
	locked bool
}

// NewOwner creates an unlocked owner.
func NewOwner(id string) *Owner {
	return &Owner{id: id}
}

func (o *Owner) ID() string        { return o.id }
func (o *Owner) Locked() bool      { return o.locked }
func (o *Owner) SetLocked(on bool) { o.locked = on }

// Entity is a placed object instance. Y points up.
type Entity struct {
	x, y         float64
	owner        *Owner
	commandInits int
}

// NewEntity creates an entity at scene position (x, y).
func NewEntity(owner *Owner, x, y float64) *Entity {
	return &Entity{x: x, y: y, owner: owner}
}

func (e *Entity) X() float64     { return e.x }
func (e *Entity) Y() float64     { return e.y }
func (e *Entity) SetX(x float64) { e.x = x }
func (e *Entity) SetY(y float64) { e.y = y }

// InitCommand records that the undo system was primed.
func (e *Entity) InitCommand() { e.commandInits++ }

// CommandInits returns how many times InitCommand was called.
func (e *Entity) CommandInits() int { return e.commandInits }

func (e *Entity) Owner() host.Owner { return e.owner }

// OwnerRef returns the concrete owner.
func (e *Entity) OwnerRef() *Owner { return e.owner }

// Sprite is the display object of an entity.
type Sprite struct {
	*Object
	entity *Entity
	parent host.Point
}

// NewSprite wraps entity in a display object whose parent sits at parent.
func NewSprite(entity *Entity, parent host.Point) *Sprite {
	return &Sprite{
		Object: NewObject(entity.x, entity.y),
		entity: entity,
		parent: parent,
	}
}

func (s *Sprite) Entity() host.Entity        { return s.entity }
func (s *Sprite) EntityRef() *Entity         { return s.entity }
func (s *Sprite) ParentPosition() host.Point { return s.parent }
