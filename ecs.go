// Package ecpps is a single-process Entity-Component-System runtime.
// Components of one type live in a dense per-type vector keyed by entity ID;
// entities added to a vector are staged until a system promotes them with
// GroupEntities, giving systems a one-shot initialization window over new
// entities.
package ecpps

import (
	"github.com/rogerthat52/ecpps/types"
)

// AddComponent attaches a component to the entity, constructing the vector
// for T on first use. Adding a second component of the same type to the same
// entity is an error.
func AddComponent[T types.Component](w *World, id types.EntityID, comp T) error {
	return vectorFor[T](&w.components).add(id, comp)
}

// AddWorldComponent attaches a component to the world's own entity. Used to
// stash singletons (configuration, input state, frame clocks) on the world
// itself.
func AddWorldComponent[T types.Component](w *World, comp T) error {
	return AddComponent[T](w, w.selfID, comp)
}

// GetComponent returns a pointer to the entity's component of type T. The
// pointer stays valid only until the next AddComponent or entity destruction
// touching the same type; do not hold it across those.
func GetComponent[T types.Component](w *World, id types.EntityID) (*T, error) {
	return vectorFor[T](&w.components).get(id)
}

// GetWorldComponent returns a pointer to the world entity's component of
// type T.
func GetWorldComponent[T types.Component](w *World) (*T, error) {
	return GetComponent[T](w, w.selfID)
}

// LiveEntities returns the entities whose T component has been promoted, in
// ascending ID order. The slice is a snapshot; mutating the world does not
// change it.
func LiveEntities[T types.Component](w *World) []types.EntityID {
	return vectorFor[T](&w.components).liveEntities()
}

// NewEntities returns the entities whose T component is staged (added but not
// yet promoted), in ascending ID order.
func NewEntities[T types.Component](w *World) []types.EntityID {
	return vectorFor[T](&w.components).newEntities()
}

// EachLive visits every promoted entity for T in ascending ID order without
// allocating. The callback must not add or remove T components.
func EachLive[T types.Component](w *World, fn func(types.EntityID)) {
	vectorFor[T](&w.components).eachLive(fn)
}

// EachNew visits every staged entity for T in ascending ID order without
// allocating. The callback must not add or remove T components.
func EachNew[T types.Component](w *World, fn func(types.EntityID)) {
	vectorFor[T](&w.components).eachNew(fn)
}

// GroupEntities promotes every staged entity for T into the live set.
// Typically called by a system at the end of its own update, once it has
// initialized the new entities.
func GroupEntities[T types.Component](w *World) {
	vectorFor[T](&w.components).group()
}

// NumComponents returns the number of stored components of type T.
func NumComponents[T types.Component](w *World) int {
	return vectorFor[T](&w.components).length()
}

// RegisterSystems registers systems in order. A system implementing
// RenderSystem goes on the render list, all others on the plain list. Each
// system's Init hook runs immediately with the world; registration stops at
// the first failing hook.
func RegisterSystems(w *World, systems ...System) error {
	return w.systems.register(w, systems...)
}
