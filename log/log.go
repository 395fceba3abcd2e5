// Package log builds the structured diagnostic events the world emits while
// mutating component vectors. Everything here is plain zerolog; the world
// decides the level at which the events become visible.
package log

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/rogerthat52/ecpps/types"
)

// ComponentInfo describes one registered component type.
type ComponentInfo struct {
	ID   types.ComponentID
	Name string
}

// Loggable is implemented by the world so this package can dump its
// registered components and systems without importing it.
type Loggable interface {
	RegisteredComponents() []ComponentInfo
	RegisteredSystems() []string
}

func loadComponentIntoArrayLogger(component ComponentInfo, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("component_id", int(component.ID))
	dictLogger = dictLogger.Str("component_name", component.Name)
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	components := target.RegisteredComponents()
	sort.Slice(components, func(i, j int) bool {
		return components[i].ID < components[j].ID
	})
	zeroLoggerEvent.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, component := range components {
		arrayLogger = loadComponentIntoArrayLogger(component, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

func loadSystemsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	systems := target.RegisteredSystems()
	zeroLoggerEvent.Int("total_systems", len(systems))
	arrayLogger := zerolog.Arr()
	for _, sysName := range systems {
		arrayLogger = arrayLogger.Str(sysName)
	}
	return zeroLoggerEvent.Array("systems", arrayLogger)
}

// indexArray renders an entity->row index table, ordered by entity ID so the
// output is deterministic.
func indexArray(index map[types.EntityID]int) *zerolog.Array {
	ids := make([]types.EntityID, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	arrayLogger := zerolog.Arr()
	for _, id := range ids {
		dictLogger := zerolog.Dict()
		dictLogger = dictLogger.Uint32("entity_id", uint32(id))
		dictLogger = dictLogger.Int("row", index[id])
		arrayLogger = arrayLogger.Dict(dictLogger)
	}
	return arrayLogger
}

// Components logs all registered component info.
func Components(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// Systems logs all registered system names.
func Systems(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadSystemsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// World logs everything about the world (components and systems).
func World(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent = loadSystemsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// EntityCreated logs the allocation of a new entity ID.
func EntityCreated(logger *zerolog.Logger, id types.EntityID) {
	logger.Debug().
		Uint32("entity_id", uint32(id)).
		Msg("entity created")
}

// EntityDestroyed logs the removal of an entity from the world.
func EntityDestroyed(logger *zerolog.Logger, id types.EntityID) {
	logger.Debug().
		Uint32("entity_id", uint32(id)).
		Msg("entity destroyed")
}

// ComponentAdded logs one component attach together with the resulting index
// table of the vector it landed in. The payload, when non-nil, is the JSON
// encoding of the component value.
func ComponentAdded(
	logger *zerolog.Logger, id types.EntityID, component ComponentInfo,
	row int, index map[types.EntityID]int, payload []byte,
) {
	zeroLoggerEvent := logger.Debug().
		Uint32("entity_id", uint32(id)).
		Int("component_id", int(component.ID)).
		Str("component_name", component.Name).
		Int("row", row).
		Array("index", indexArray(index))
	if payload != nil {
		zeroLoggerEvent = zeroLoggerEvent.RawJSON("component", payload)
	}
	zeroLoggerEvent.Msg("component added")
}

// ComponentRemoved logs one component removal together with the compacted
// index table of the vector it was removed from.
func ComponentRemoved(
	logger *zerolog.Logger, id types.EntityID, component ComponentInfo,
	row int, index map[types.EntityID]int,
) {
	logger.Debug().
		Uint32("entity_id", uint32(id)).
		Int("component_id", int(component.ID)).
		Str("component_name", component.Name).
		Int("row", row).
		Array("index", indexArray(index)).
		Msg("component removed")
}

// CreateSystemLogger creates a sub logger with the entry {"system": systemName}.
func CreateSystemLogger(logger *zerolog.Logger, systemName string) *zerolog.Logger {
	newLogger := logger.With().Str("system", systemName).Logger()
	return &newLogger
}
