package ecpps

import (
	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/rogerthat52/ecpps/codec"
	"github.com/rogerthat52/ecpps/log"
	"github.com/rogerthat52/ecpps/types"
)

// abstractVector is the type-erased face of a componentVector. The registry
// uses it to fan entity deletions out across every component type without
// knowing the concrete T, and to promote and introspect vectors uniformly.
type abstractVector interface {
	info() log.ComponentInfo
	length() int

	addAbstract(id types.EntityID, comp types.Component) error
	removeEntity(id types.EntityID)
	group()
}

var _ abstractVector = &componentVector[types.Component]{}

// componentVector stores every component of a single type T in one dense
// slice, with an entity->row index and two disjoint entity sets: staged holds
// entities whose component was added but not yet promoted, live holds the
// rest.
//
// Invariant: len(components) == len(index) == live.Count() + staged.Count(),
// and every ID in live or staged maps through index to exactly one row.
type componentVector[T types.Component] struct {
	compName   string                 // The name of the component stored in this vector
	compID     types.ComponentID     // ID assigned when the type was first seen
	components []T                    // Dense rows of component data
	index      map[types.EntityID]int // Maps entity ID to its row
	live       bitmap.Bitmap          // Entities whose component has been promoted
	staged     bitmap.Bitmap          // Entities added since the last promotion
	logger     *zerolog.Logger
}

func newComponentVector[T types.Component](cid types.ComponentID, logger *zerolog.Logger) *componentVector[T] {
	var zero T
	const initialCapacity = 16
	return &componentVector[T]{
		compName:   zero.Name(),
		compID:     cid,
		components: make([]T, 0, initialCapacity),
		index:      make(map[types.EntityID]int),
		logger:     logger,
	}
}

func (v *componentVector[T]) info() log.ComponentInfo {
	return log.ComponentInfo{ID: v.compID, Name: v.compName}
}

func (v *componentVector[T]) length() int {
	return len(v.components)
}

// add appends the component as a new row and stages the entity. One component
// per type per entity; a second add for the same ID is an error.
func (v *componentVector[T]) add(id types.EntityID, comp T) error {
	if _, exists := v.index[id]; exists {
		return eris.Wrapf(ErrComponentAlreadyOnEntity, "component %s on entity %d", v.compName, id)
	}

	row := len(v.components)
	v.components = append(v.components, comp)
	v.index[id] = row
	v.staged.Set(uint32(id))

	if v.logger.GetLevel() <= zerolog.DebugLevel {
		var payload []byte
		if v.logger.GetLevel() <= zerolog.TraceLevel {
			payload, _ = codec.Encode(comp)
		}
		log.ComponentAdded(v.logger, id, v.info(), row, v.index, payload)
	}
	return nil
}

// addAbstract adds a component whose concrete type is not statically known.
func (v *componentVector[T]) addAbstract(id types.EntityID, comp types.Component) error {
	concrete, ok := comp.(T)
	if !ok {
		return eris.Errorf("component %q cannot be stored in the %s vector", comp.Name(), v.compName)
	}
	return v.add(id, concrete)
}

// get returns a pointer to the entity's component row. The pointer stays
// valid only until the next add or removeEntity on this vector.
func (v *componentVector[T]) get(id types.EntityID) (*T, error) {
	row, ok := v.index[id]
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotFound, "component %s on entity %d", v.compName, id)
	}
	return &v.components[row], nil
}

// removeEntity erases the entity's row with shift-down compaction: rows above
// the removed one slide down and their index entries are decremented, keeping
// the slice dense and insertion-ordered. A no-op when the entity has no
// component here, so the registry can fan deletions out blindly.
func (v *componentVector[T]) removeEntity(id types.EntityID) {
	row, ok := v.index[id]
	if !ok {
		return
	}

	v.components = append(v.components[:row], v.components[row+1:]...)
	delete(v.index, id)
	for other, r := range v.index {
		if r > row {
			v.index[other] = r - 1
		}
	}
	v.live.Remove(uint32(id))
	v.staged.Remove(uint32(id))

	if v.logger.GetLevel() <= zerolog.DebugLevel {
		log.ComponentRemoved(v.logger, id, v.info(), row, v.index)
	}
}

// group promotes every staged entity into the live set and clears the staged
// set. Idempotent when nothing is staged.
func (v *componentVector[T]) group() {
	v.live.Or(v.staged)
	v.staged.Clear()
}

// liveEntities returns the promoted entities in ascending ID order.
func (v *componentVector[T]) liveEntities() []types.EntityID {
	return idsOf(v.live)
}

// newEntities returns the staged entities in ascending ID order.
func (v *componentVector[T]) newEntities() []types.EntityID {
	return idsOf(v.staged)
}

func (v *componentVector[T]) eachLive(fn func(types.EntityID)) {
	v.live.Range(func(x uint32) {
		fn(types.EntityID(x))
	})
}

func (v *componentVector[T]) eachNew(fn func(types.EntityID)) {
	v.staged.Range(func(x uint32) {
		fn(types.EntityID(x))
	})
}

func idsOf(b bitmap.Bitmap) []types.EntityID {
	out := make([]types.EntityID, 0, b.Count())
	b.Range(func(x uint32) {
		out = append(out, types.EntityID(x))
	})
	return out
}
