package ecpps

import (
	"bytes"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trace is a shared call log so tests can assert cross-system ordering.
type trace struct {
	calls []string
}

type plainSystem struct {
	tr   *trace
	name string
	fail error
}

func (s *plainSystem) Init(*World) error {
	s.tr.calls = append(s.tr.calls, s.name+".init")
	return nil
}

func (s *plainSystem) Update(*World) error {
	s.tr.calls = append(s.tr.calls, s.name+".update")
	return s.fail
}

type drawSystem struct {
	tr *trace
}

func (s *drawSystem) Init(*World) error {
	s.tr.calls = append(s.tr.calls, "draw.init")
	return nil
}

func (s *drawSystem) Update(*World) error {
	s.tr.calls = append(s.tr.calls, "draw.update")
	return nil
}

func (s *drawSystem) Render(*World) error {
	s.tr.calls = append(s.tr.calls, "draw.render")
	return nil
}

type alphaSystem struct{ plainSystem }
type betaSystem struct{ plainSystem }

func TestSystemManager_DispatchByRenderCapability(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	tr := &trace{}
	require.NoError(t, RegisterSystems(w,
		&drawSystem{tr: tr},
		&alphaSystem{plainSystem{tr: tr, name: "alpha"}},
	))

	assert.Equal(t, []string{"drawSystem", "alphaSystem"}, w.RegisteredSystems())
	assert.Len(t, w.systems.systems, 1)
	assert.Len(t, w.systems.renderSystems, 1)
}

func TestSystemManager_InitRunsAtRegistration(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	tr := &trace{}
	require.NoError(t, RegisterSystems(w, &alphaSystem{plainSystem{tr: tr, name: "alpha"}}))
	assert.Equal(t, []string{"alpha.init"}, tr.calls)
}

func TestSystemManager_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	tr := &trace{}

	err := RegisterSystems(w,
		&alphaSystem{plainSystem{tr: tr, name: "a1"}},
		&alphaSystem{plainSystem{tr: tr, name: "a2"}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate system")
	// The duplicate is caught before any init hook runs.
	assert.Empty(t, tr.calls)
	assert.Empty(t, w.RegisteredSystems())

	require.NoError(t, RegisterSystems(w, &alphaSystem{plainSystem{tr: tr, name: "a1"}}))
	err = RegisterSystems(w, &alphaSystem{plainSystem{tr: tr, name: "a3"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

// Plain systems always run before render systems within a pass, regardless of
// registration order.
func TestSystemManager_PlainBeforeRender(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	tr := &trace{}
	require.NoError(t, RegisterSystems(w,
		&drawSystem{tr: tr},
		&alphaSystem{plainSystem{tr: tr, name: "alpha"}},
		&betaSystem{plainSystem{tr: tr, name: "beta"}},
	))
	tr.calls = nil

	require.NoError(t, w.Init())
	require.NoError(t, w.Update())
	require.NoError(t, w.Render())

	assert.Equal(t, []string{
		"alpha.init", "beta.init", "draw.init",
		"alpha.update", "beta.update", "draw.update",
		"draw.render",
	}, tr.calls)
}

func TestSystemManager_RenderPassSkipsPlainSystems(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	tr := &trace{}
	require.NoError(t, RegisterSystems(w, &alphaSystem{plainSystem{tr: tr, name: "alpha"}}))
	tr.calls = nil

	require.NoError(t, w.Render())
	assert.Empty(t, tr.calls)
}

func TestSystemManager_ErrorAbortsPassWithSystemName(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	tr := &trace{}
	boom := eris.New("boom")
	require.NoError(t, RegisterSystems(w,
		&alphaSystem{plainSystem{tr: tr, name: "alpha", fail: boom}},
		&betaSystem{plainSystem{tr: tr, name: "beta"}},
	))
	tr.calls = nil

	err := w.Update()
	require.Error(t, err)
	assert.True(t, eris.Is(err, boom))
	assert.Contains(t, err.Error(), "system alphaSystem generated an error in update")

	// beta never ran.
	assert.Equal(t, []string{"alpha.update"}, tr.calls)
}

func TestSystemName(t *testing.T) {
	t.Parallel()

	tr := &trace{}
	assert.Equal(t, "alphaSystem", systemName(&alphaSystem{plainSystem{tr: tr}}))
	assert.Equal(t, "drawSystem", systemName(&drawSystem{tr: tr}))
	// Value systems resolve to the same name as pointer systems.
	assert.Equal(t, "chattySystem", systemName(chattySystem{}))
}

type chattySystem struct{}

func (chattySystem) Init(*World) error { return nil }

func (chattySystem) Update(w *World) error {
	w.Logger().Info().Msg("tick")
	return nil
}

// During a hook the world's logger is the system's sub-logger, so every event
// a system emits carries its name.
func TestSystemManager_HookUsesSystemSubLogger(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	w, err := NewWorld(WithLogger(zerolog.New(buf)))
	require.NoError(t, err)
	require.NoError(t, RegisterSystems(w, chattySystem{}))
	buf.Reset()

	require.NoError(t, w.Update())

	assert.Contains(t, buf.String(), `"system":"chattySystem"`)
	assert.Contains(t, buf.String(), `"message":"tick"`)

	// Outside a pass the world logger is active again.
	assert.Same(t, &w.logger, w.Logger())
}
