package ecpps

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/rogerthat52/ecpps/log"
	"github.com/rogerthat52/ecpps/types"
)

// componentManager is the registry of typed component vectors, keyed by the
// component's Name. A name must identify exactly one Go type for the lifetime
// of the process; two types sharing a Name is a usage error. ComponentIDs are
// assigned on first use.
type componentManager struct {
	vectors map[string]abstractVector
	nextID  types.ComponentID
	logger  *zerolog.Logger
}

func newComponentManager(logger *zerolog.Logger) componentManager {
	return componentManager{
		vectors: make(map[string]abstractVector),
		nextID:  1,
		logger:  logger,
	}
}

// vectorFor returns the vector for T, constructing and registering it on
// first use. A free function because Go methods cannot take type parameters.
func vectorFor[T types.Component](m *componentManager) *componentVector[T] {
	var zero T
	name := zero.Name()

	if existing, ok := m.vectors[name]; ok {
		return existing.(*componentVector[T])
	}

	v := newComponentVector[T](m.nextID, m.logger)
	m.vectors[name] = v
	m.nextID++
	return v
}

// addAbstract routes a component to its vector by Name. Unlike the generic
// path, it cannot construct a vector for an unseen type.
func (m *componentManager) addAbstract(id types.EntityID, comp types.Component) error {
	v, ok := m.vectors[comp.Name()]
	if !ok {
		return eris.Wrapf(ErrMustRegisterComponent, "component %q", comp.Name())
	}
	return v.addAbstract(id, comp)
}

// removeEntity fans the deletion out to every registered vector. Vectors
// without a row for the entity return silently.
func (m *componentManager) removeEntity(id types.EntityID) {
	for _, v := range m.vectors {
		v.removeEntity(id)
	}
}

// groupAll promotes the staged set of every registered vector.
func (m *componentManager) groupAll() {
	for _, v := range m.vectors {
		v.group()
	}
}

// registeredComponents lists every registered component type, ordered by ID.
func (m *componentManager) registeredComponents() []log.ComponentInfo {
	infos := make([]log.ComponentInfo, 0, len(m.vectors))
	for _, v := range m.vectors {
		infos = append(infos, v.info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}
