package ecpps

import (
	"reflect"
	"slices"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/rogerthat52/ecpps/log"
	"github.com/rogerthat52/ecpps/metrics"
)

// System is the hook set shared by all systems. Init runs once when the
// system is registered and again during the world's Init pass; Update runs on
// every Update pass.
type System interface {
	Init(w *World) error
	Update(w *World) error
}

// RenderSystem is a System with an additional render hook. Render systems run
// after plain systems within the Init and Update passes, and are the only
// systems visited by the Render pass.
type RenderSystem interface {
	System
	Render(w *World) error
}

type systemEntry struct {
	name   string
	system System
	logger *zerolog.Logger
}

// systemManager keeps the plain and render system lists in registration
// order. Names are derived from the concrete type and must be unique across
// both lists.
type systemManager struct {
	registeredSystems []string // Every registered system name, in registration order

	systems       []systemEntry
	renderSystems []systemEntry
}

func newSystemManager() systemManager {
	return systemManager{
		registeredSystems: make([]string, 0),
		systems:           make([]systemEntry, 0),
		renderSystems:     make([]systemEntry, 0),
	}
}

// systemName derives a system's name from its concrete type.
func systemName(s System) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// register adds systems in order, dispatching each to the plain or render
// list by whether it implements RenderSystem, and runs the creation-time Init
// hook. Duplicate names are rejected before any system in the batch is
// registered.
func (m *systemManager) register(w *World, systems ...System) error {
	names := make([]string, 0, len(systems))
	for _, s := range systems {
		name := systemName(s)
		if slices.Contains(names, name) {
			return eris.Errorf("duplicate system %q in slice", name)
		}
		if slices.Contains(m.registeredSystems, name) {
			return eris.Errorf("system %q is already registered", name)
		}
		names = append(names, name)
	}

	for i, s := range systems {
		entry := systemEntry{
			name:   names[i],
			system: s,
			logger: log.CreateSystemLogger(&w.logger, names[i]),
		}
		m.registeredSystems = append(m.registeredSystems, entry.name)
		if _, ok := s.(RenderSystem); ok {
			m.renderSystems = append(m.renderSystems, entry)
		} else {
			m.systems = append(m.systems, entry)
		}

		if err := m.runHook(w, entry, "init", entry.system.Init); err != nil {
			return err
		}
	}
	return nil
}

// runInit invokes the init hook on every system, plain systems first.
func (m *systemManager) runInit(w *World) error {
	for _, entry := range m.systems {
		if err := m.runHook(w, entry, "init", entry.system.Init); err != nil {
			return err
		}
	}
	for _, entry := range m.renderSystems {
		if err := m.runHook(w, entry, "init", entry.system.Init); err != nil {
			return err
		}
	}
	return nil
}

// runUpdate invokes the update hook on every system, plain systems first.
func (m *systemManager) runUpdate(w *World) error {
	passStart := time.Now()
	for _, entry := range m.systems {
		start := time.Now()
		if err := m.runHook(w, entry, "update", entry.system.Update); err != nil {
			return err
		}
		metrics.EmitPassStat(start, entry.name)
	}
	for _, entry := range m.renderSystems {
		start := time.Now()
		if err := m.runHook(w, entry, "update", entry.system.Update); err != nil {
			return err
		}
		metrics.EmitPassStat(start, entry.name)
	}
	metrics.EmitPassStat(passStart, "update")
	return nil
}

// runRender invokes the render hook on every render system.
func (m *systemManager) runRender(w *World) error {
	for _, entry := range m.renderSystems {
		render := entry.system.(RenderSystem).Render
		if err := m.runHook(w, entry, "render", render); err != nil {
			return err
		}
	}
	return nil
}

// runHook runs one system hook with the system's sub-logger active on the
// world. An error aborts the pass and propagates to the caller; the driver
// does not attempt isolation.
func (m *systemManager) runHook(w *World, entry systemEntry, hook string, fn func(*World) error) error {
	w.activeLogger = entry.logger
	defer func() { w.activeLogger = &w.logger }()

	if err := fn(w); err != nil {
		return eris.Wrapf(err, "system %s generated an error in %s", entry.name, hook)
	}
	return nil
}
