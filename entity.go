package ecpps

import (
	"github.com/rogerthat52/ecpps/types"
)

// Entity is a thin handle bundling an entity ID with a back-reference to the
// world that owns it. The world keeps the canonical facade table and hands
// entities out by pointer; no Entity outlives its world.
type Entity struct {
	id    types.EntityID
	world *World
}

// ID returns the entity's identifier.
func (e *Entity) ID() types.EntityID {
	return e.id
}

// World returns the world that owns this entity.
func (e *Entity) World() *World {
	return e.world
}

// Add attaches a component through the owning world. The component's concrete
// type must already be known to the world; use the generic AddComponent for
// the lazy-instantiation path.
func (e *Entity) Add(comp types.Component) error {
	return e.world.components.addAbstract(e.id, comp)
}

// Destroy removes this entity and all of its components from the world.
func (e *Entity) Destroy() error {
	return e.world.DestroyEntity(e.id)
}

// Spawner attaches components to a freshly created entity. It replaces
// subclassing of the entity facade: implement Spawn to populate an entity at
// creation time, before CreateEntityFrom returns it.
type Spawner interface {
	Spawn(e *Entity) error
}
