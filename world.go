package ecpps

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/rogerthat52/ecpps/log"
	"github.com/rogerthat52/ecpps/metrics"
	"github.com/rogerthat52/ecpps/types"
)

var _ log.Loggable = &World{}

// World is the single owner of all ECS state for one logical simulation: the
// ID allocator, the component vector registry, the entity facade table, the
// named-entity table and the system lists. A world and everything it owns
// belong to one goroutine; nothing here is safe for concurrent use.
type World struct {
	cfg    worldConfig
	logger zerolog.Logger
	// activeLogger points at the logger for the currently running system, or
	// at the world logger when no system is running.
	activeLogger *zerolog.Logger

	allocator  idAllocator
	components componentManager
	entities   map[types.EntityID]*Entity
	named      map[string]types.EntityID
	systems    systemManager

	// selfID is the first allocated ID, reserved for the world itself. It is
	// the default target for world-scoped singleton components and is
	// read-only after construction.
	selfID    types.EntityID
	autoGroup bool
}

// NewWorld creates a new World. Configuration is read from the environment;
// options override it.
func NewWorld(opts ...WorldOption) (*World, error) {
	cfg, err := loadWorldConfig()
	if err != nil {
		return nil, eris.Wrap(err, "failed to load config to create world")
	}

	w := &World{
		cfg:       cfg,
		logger:    zerolog.New(os.Stderr).Level(cfg.logLevel()).With().Timestamp().Logger(),
		allocator: newIDAllocator(),
		entities:  make(map[types.EntityID]*Entity),
		named:     make(map[string]types.EntityID),
		systems:   newSystemManager(),
	}
	if cfg.LogPretty {
		w.logger = w.logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	for _, opt := range opts {
		opt.apply(w)
	}
	w.activeLogger = &w.logger
	w.components = newComponentManager(&w.logger)

	if cfg.StatsdAddress != "" {
		if err := metrics.Init(cfg.StatsdAddress, nil); err != nil {
			return nil, eris.Wrap(err, "failed to init statsd client")
		}
	}

	// The world reserves the first allocated ID for itself; world-scoped
	// components attach to it.
	self, err := w.CreateEntity()
	if err != nil {
		return nil, err
	}
	w.selfID = self.ID()

	w.logger.Info().Uint32("self_id", uint32(w.selfID)).Msg("world created")
	return w, nil
}

// CreateEntity allocates an ID, stores a facade for it and returns the
// facade.
func (w *World) CreateEntity() (*Entity, error) {
	id, err := w.allocator.allocate()
	if err != nil {
		return nil, err
	}

	e := &Entity{id: id, world: w}
	w.entities[id] = e

	log.EntityCreated(&w.logger, id)
	return e, nil
}

// CreateEntityFrom creates an entity and runs the spawner's hook on it before
// returning. A failed spawn destroys the half-built entity.
func (w *World) CreateEntityFrom(s Spawner) (*Entity, error) {
	e, err := w.CreateEntity()
	if err != nil {
		return nil, err
	}
	if err := s.Spawn(e); err != nil {
		_ = w.DestroyEntity(e.ID())
		return nil, eris.Wrap(err, "spawner failed")
	}
	return e, nil
}

// DestroyEntity removes the entity's components from every vector, erases its
// facade and releases its ID for reuse.
func (w *World) DestroyEntity(id types.EntityID) error {
	if _, ok := w.entities[id]; !ok {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", id)
	}

	w.components.removeEntity(id)
	delete(w.entities, id)
	w.allocator.release(id)

	log.EntityDestroyed(&w.logger, id)
	return nil
}

// Entity returns the facade stored for the given ID.
func (w *World) Entity(id types.EntityID) (*Entity, error) {
	e, ok := w.entities[id]
	if !ok {
		return nil, eris.Wrapf(ErrEntityNotFound, "entity %d", id)
	}
	return e, nil
}

// Alive checks if an entity exists in the world.
func (w *World) Alive(id types.EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// SelfID returns the world's own entity ID.
func (w *World) SelfID() types.EntityID {
	return w.selfID
}

// NumEntities returns the number of live entities, the world itself included.
func (w *World) NumEntities() int {
	return len(w.entities)
}

// SetSpecialEntity binds a name to the entity. The binding does not own the
// entity; destroying the entity leaves a stale binding behind.
func (w *World) SetSpecialEntity(name string, e *Entity) {
	w.named[name] = e.ID()
}

// GetSpecialEntity returns the ID bound to the name.
func (w *World) GetSpecialEntity(name string) (types.EntityID, error) {
	id, ok := w.named[name]
	if !ok {
		return 0, eris.Wrapf(ErrSpecialEntityNotFound, "name %q", name)
	}
	return id, nil
}

// Logger returns the logger for the current scope: the running system's
// sub-logger during a driver pass, the world logger otherwise.
func (w *World) Logger() *zerolog.Logger {
	return w.activeLogger
}

// RegisteredComponents lists every component type the world has seen,
// ordered by component ID.
func (w *World) RegisteredComponents() []log.ComponentInfo {
	return w.components.registeredComponents()
}

// RegisteredSystems lists every registered system name in registration order.
func (w *World) RegisteredSystems() []string {
	return w.systems.registeredSystems
}

// Init invokes the init hook on every system and render system, in
// registration order with plain systems first.
func (w *World) Init() error {
	return w.systems.runInit(w)
}

// Update invokes the update hook on every system and render system, in
// registration order with plain systems first. The driver performs no
// automatic promotion unless the world was built WithAutoGroup; a system that
// cares about the staged/live boundary calls GroupEntities itself.
func (w *World) Update() error {
	if err := w.systems.runUpdate(w); err != nil {
		return err
	}
	if w.autoGroup {
		w.components.groupAll()
	}
	metrics.EmitEntityCount(len(w.entities))
	return nil
}

// Render invokes the render hook on every render system in registration
// order.
func (w *World) Render() error {
	return w.systems.runRender(w)
}
