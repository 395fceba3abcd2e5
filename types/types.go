package types

import "math"

// EntityID is a unique identifier for an entity. An ID is unique over the set
// of live entities at any instant, but is reused after the entity is
// destroyed.
type EntityID uint32

// MaxEntityID is the maximum entity ID that can be allocated.
const MaxEntityID = math.MaxUint32 - 1

// ComponentID is a unique identifier for a component type. IDs are assigned
// the first time the world sees a component type and are stable for the
// lifetime of the world.
type ComponentID int

// Component is the interface that all component types must implement.
// Components are pure data containers attached to entities.
type Component interface {
	// Name returns a unique string identifier for the component type.
	// This should be consistent across program executions.
	Name() string
}

// RenderComponent marks component types that carry draw state. The marker is
// informational only; storage does not distinguish the two categories. Embed
// RenderMarker to satisfy it.
type RenderComponent interface {
	Component
	renderComponent()
}

// RenderMarker is embedded by component structs that want to opt into the
// RenderComponent marker.
type RenderMarker struct{}

func (RenderMarker) renderComponent() {}
