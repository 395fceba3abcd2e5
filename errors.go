package ecpps

import "github.com/rotisserie/eris"

var (
	// ErrEntityNotFound is returned when attempting to operate on an entity
	// that does not exist or has already been destroyed.
	ErrEntityNotFound = eris.New("entity does not exist")

	// ErrComponentNotFound is returned when an entity has no component of the
	// requested type.
	ErrComponentNotFound = eris.New("component not found on entity")

	// ErrComponentAlreadyOnEntity is returned when a component of the same
	// type is added to an entity twice. One component per type per entity.
	ErrComponentAlreadyOnEntity = eris.New("component already on entity")

	// ErrMustRegisterComponent is returned by the type-erased attach path when
	// the component type has never been seen by the world. The generic
	// AddComponent path instantiates vectors lazily and never returns this.
	ErrMustRegisterComponent = eris.New("component type has not been registered")

	// ErrSpecialEntityNotFound is returned when no entity is bound to the
	// requested name.
	ErrSpecialEntityNotFound = eris.New("no special entity bound to name")
)
