package ecpps

import (
	"github.com/rotisserie/eris"

	"github.com/rogerthat52/ecpps/types"
)

// idAllocator hands out entity IDs and reclaims destroyed ones. Released IDs
// are reused LIFO so the most recently freed ID comes back first, which keeps
// hot IDs resident in the vectors and bit sets the caller re-inserts into.
type idAllocator struct {
	nextID   types.EntityID   // The next ID to allocate if no reusable IDs are available
	reusable []types.EntityID // A stack of released IDs
}

func newIDAllocator() idAllocator {
	return idAllocator{
		nextID:   0,
		reusable: make([]types.EntityID, 0),
	}
}

// allocate returns a fresh entity ID, preferring the reuse stack.
func (a *idAllocator) allocate() (types.EntityID, error) {
	if n := len(a.reusable); n > 0 {
		id := a.reusable[n-1]
		a.reusable = a.reusable[:n-1]
		return id, nil
	}

	id := a.nextID
	if id > types.MaxEntityID {
		return 0, eris.New("max number of entities exceeded")
	}
	a.nextID++
	return id, nil
}

// release pushes an ID onto the reuse stack. The caller guarantees the ID was
// live; no validation happens here.
func (a *idAllocator) release(id types.EntityID) {
	a.reusable = append(a.reusable, id)
}
