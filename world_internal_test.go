package ecpps

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerthat52/ecpps/internal/testutils"
	"github.com/rogerthat52/ecpps/types"
)

func newTestWorld(t *testing.T, opts ...WorldOption) *World {
	t.Helper()
	opts = append([]WorldOption{WithLogger(zerolog.Nop())}, opts...)
	w, err := NewWorld(opts...)
	require.NoError(t, err)
	return w
}

func TestWorld_ReservesSelfEntity(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	assert.Equal(t, types.EntityID(0), w.SelfID())
	assert.True(t, w.Alive(w.SelfID()))
	assert.Equal(t, 1, w.NumEntities())

	// The first user entity comes after the reserved ID.
	e, err := w.CreateEntity()
	require.NoError(t, err)
	assert.Equal(t, types.EntityID(1), e.ID())
}

func TestWorld_CreateAndDestroy(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	e, err := w.CreateEntity()
	require.NoError(t, err)
	require.True(t, w.Alive(e.ID()))

	got, err := w.Entity(e.ID())
	require.NoError(t, err)
	assert.Same(t, e, got)

	require.NoError(t, w.DestroyEntity(e.ID()))
	assert.False(t, w.Alive(e.ID()))
	_, err = w.Entity(e.ID())
	assert.True(t, eris.Is(err, ErrEntityNotFound))
}

func TestWorld_DestroyUnknownEntityFails(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	err := w.DestroyEntity(42)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrEntityNotFound))
}

func TestWorld_DestroyStripsComponents(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	e, err := w.CreateEntity()
	require.NoError(t, err)

	require.NoError(t, AddComponent(w, e.ID(), testutils.Position{X: 1}))
	require.NoError(t, AddComponent(w, e.ID(), testutils.Health{Value: 10}))

	require.NoError(t, w.DestroyEntity(e.ID()))

	assert.Zero(t, NumComponents[testutils.Position](w))
	assert.Zero(t, NumComponents[testutils.Health](w))
}

// Destroyed IDs come back most-recent-first before the counter advances.
func TestWorld_ReusesIDsLIFO(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	entities := make([]*Entity, 5)
	for i := range entities {
		e, err := w.CreateEntity()
		require.NoError(t, err)
		entities[i] = e
	}

	first := entities[2].ID()
	second := entities[4].ID()
	require.NoError(t, w.DestroyEntity(first))
	require.NoError(t, w.DestroyEntity(second))

	e, err := w.CreateEntity()
	require.NoError(t, err)
	assert.Equal(t, second, e.ID())

	e, err = w.CreateEntity()
	require.NoError(t, err)
	assert.Equal(t, first, e.ID())

	e, err = w.CreateEntity()
	require.NoError(t, err)
	assert.Equal(t, types.EntityID(6), e.ID())
}

func TestWorld_SpecialEntities(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	player, err := w.CreateEntity()
	require.NoError(t, err)

	_, err = w.GetSpecialEntity("player")
	assert.True(t, eris.Is(err, ErrSpecialEntityNotFound))

	w.SetSpecialEntity("player", player)
	id, err := w.GetSpecialEntity("player")
	require.NoError(t, err)
	assert.Equal(t, player.ID(), id)

	// Rebinding a name replaces the previous binding.
	other, err := w.CreateEntity()
	require.NoError(t, err)
	w.SetSpecialEntity("player", other)
	id, err = w.GetSpecialEntity("player")
	require.NoError(t, err)
	assert.Equal(t, other.ID(), id)
}

func TestWorld_WorldComponents(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	require.NoError(t, AddWorldComponent(w, testutils.Clock{T: 5}))

	clk, err := GetWorldComponent[testutils.Clock](w)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), clk.T)

	clk.T++
	clk, err = GetWorldComponent[testutils.Clock](w)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), clk.T)
}

func TestWorld_EntityAddRequiresKnownType(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	e, err := w.CreateEntity()
	require.NoError(t, err)

	// The erased path cannot build a vector for an unseen type.
	err = e.Add(testutils.Tag{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMustRegisterComponent))

	// Once the generic path has built the vector, the erased path works.
	other, err := w.CreateEntity()
	require.NoError(t, err)
	require.NoError(t, AddComponent(w, other.ID(), testutils.Tag{}))
	require.NoError(t, e.Add(testutils.Tag{}))
	assert.Equal(t, 2, NumComponents[testutils.Tag](w))
}

type soldierSpawner struct {
	health int
}

func (s soldierSpawner) Spawn(e *Entity) error {
	w := e.World()
	if err := AddComponent(w, e.ID(), testutils.Position{}); err != nil {
		return err
	}
	return AddComponent(w, e.ID(), testutils.Health{Value: s.health})
}

type brokenSpawner struct{}

func (brokenSpawner) Spawn(e *Entity) error {
	if err := AddComponent(e.World(), e.ID(), testutils.Position{X: 1}); err != nil {
		return err
	}
	return eris.New("out of mana")
}

func TestWorld_CreateEntityFrom(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	e, err := w.CreateEntityFrom(soldierSpawner{health: 80})
	require.NoError(t, err)

	h, err := GetComponent[testutils.Health](w, e.ID())
	require.NoError(t, err)
	assert.Equal(t, 80, h.Value)
	_, err = GetComponent[testutils.Position](w, e.ID())
	require.NoError(t, err)
}

func TestWorld_CreateEntityFromRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	before := w.NumEntities()

	_, err := w.CreateEntityFrom(brokenSpawner{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spawner failed")

	// The half-built entity and its components are gone.
	assert.Equal(t, before, w.NumEntities())
	assert.Zero(t, NumComponents[testutils.Position](w))
}

func TestWorld_AutoGroupPromotesOnUpdate(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t, WithAutoGroup())
	e, err := w.CreateEntity()
	require.NoError(t, err)
	require.NoError(t, AddComponent(w, e.ID(), testutils.Position{}))

	assert.Empty(t, LiveEntities[testutils.Position](w))
	require.NoError(t, w.Update())
	assert.Equal(t, []types.EntityID{e.ID()}, LiveEntities[testutils.Position](w))
	assert.Empty(t, NewEntities[testutils.Position](w))
}

func TestWorld_UpdateLeavesStagingAloneByDefault(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	e, err := w.CreateEntity()
	require.NoError(t, err)
	require.NoError(t, AddComponent(w, e.ID(), testutils.Position{}))

	require.NoError(t, w.Update())
	assert.Empty(t, LiveEntities[testutils.Position](w))
	assert.Equal(t, []types.EntityID{e.ID()}, NewEntities[testutils.Position](w))
}

func TestWorld_LifecycleLogging(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	w, err := NewWorld(WithLogger(logger))
	require.NoError(t, err)
	buf.Reset()

	e, err := w.CreateEntity()
	require.NoError(t, err)
	require.NoError(t, AddComponent(w, e.ID(), testutils.Position{X: 3}))
	require.NoError(t, w.DestroyEntity(e.ID()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"message":"entity created"`)
	assert.Contains(t, lines[1], `"message":"component added"`)
	assert.Contains(t, lines[1], `"component_name":"Position"`)
	assert.Contains(t, lines[2], `"message":"component removed"`)
	assert.Contains(t, lines[3], `"message":"entity destroyed"`)
}
