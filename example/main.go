// A small top-down simulation: movers bounce around a grid, a render system
// draws the board to stdout each frame.
//
// Profiling:
//
//	go run ./example -frames 10000 -quiet -profile
//	go tool pprof -http=":8000" cpu.pprof
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	ecpps "github.com/rogerthat52/ecpps"
	"github.com/rogerthat52/ecpps/types"
)

const (
	boardWidth  = 32
	boardHeight = 12
)

type Position struct {
	X, Y int
}

func (Position) Name() string { return "Position" }

type Velocity struct {
	DX, DY int
}

func (Velocity) Name() string { return "Velocity" }

type Sprite struct {
	types.RenderMarker
	Glyph rune
}

func (Sprite) Name() string { return "Sprite" }

// Board is a world singleton holding the frame buffer.
type Board struct {
	Cells []rune
}

func (Board) Name() string { return "Board" }

// moverSpawner drops an entity at a random cell with a random heading.
type moverSpawner struct {
	rng   *rand.Rand
	glyph rune
}

func (s moverSpawner) Spawn(e *ecpps.Entity) error {
	w := e.World()
	if err := ecpps.AddComponent(w, e.ID(), Position{
		X: s.rng.Intn(boardWidth),
		Y: s.rng.Intn(boardHeight),
	}); err != nil {
		return err
	}
	if err := ecpps.AddComponent(w, e.ID(), Velocity{
		DX: s.rng.Intn(3) - 1,
		DY: s.rng.Intn(3) - 1,
	}); err != nil {
		return err
	}
	return ecpps.AddComponent(w, e.ID(), Sprite{Glyph: s.glyph})
}

// movementSystem advances every promoted mover and bounces it off the board
// edges. New movers are promoted at the end of the pass so they start moving
// on the next frame.
type movementSystem struct{}

func (movementSystem) Init(w *ecpps.World) error { return nil }

func (movementSystem) Update(w *ecpps.World) error {
	var firstErr error
	ecpps.EachLive[Position](w, func(id types.EntityID) {
		pos, err := ecpps.GetComponent[Position](w, id)
		if err != nil {
			firstErr = err
			return
		}
		vel, err := ecpps.GetComponent[Velocity](w, id)
		if err != nil {
			firstErr = err
			return
		}

		pos.X += vel.DX
		pos.Y += vel.DY
		if pos.X < 0 || pos.X >= boardWidth {
			vel.DX = -vel.DX
			pos.X += 2 * vel.DX
		}
		if pos.Y < 0 || pos.Y >= boardHeight {
			vel.DY = -vel.DY
			pos.Y += 2 * vel.DY
		}
	})
	if firstErr != nil {
		return firstErr
	}

	count := len(ecpps.NewEntities[Position](w))
	if count > 0 {
		w.Logger().Info().Int("count", count).Msg("promoting new movers")
	}
	ecpps.GroupEntities[Position](w)
	ecpps.GroupEntities[Velocity](w)
	ecpps.GroupEntities[Sprite](w)
	return nil
}

// renderSystem rasterizes promoted sprites into the board singleton and
// prints it.
type renderSystem struct {
	quiet bool
}

func (renderSystem) Init(w *ecpps.World) error {
	// Init runs at registration and again on the Init pass.
	if _, err := ecpps.GetWorldComponent[Board](w); err == nil {
		return nil
	}
	return ecpps.AddWorldComponent(w, Board{
		Cells: make([]rune, boardWidth*boardHeight),
	})
}

func (renderSystem) Update(w *ecpps.World) error { return nil }

func (s renderSystem) Render(w *ecpps.World) error {
	board, err := ecpps.GetWorldComponent[Board](w)
	if err != nil {
		return err
	}

	for i := range board.Cells {
		board.Cells[i] = '.'
	}
	var renderErr error
	ecpps.EachLive[Sprite](w, func(id types.EntityID) {
		pos, err := ecpps.GetComponent[Position](w, id)
		if err != nil {
			renderErr = err
			return
		}
		sprite, _ := ecpps.GetComponent[Sprite](w, id)
		board.Cells[pos.Y*boardWidth+pos.X] = sprite.Glyph
	})
	if renderErr != nil {
		return renderErr
	}

	if s.quiet {
		return nil
	}
	var sb strings.Builder
	for y := 0; y < boardHeight; y++ {
		sb.WriteString(string(board.Cells[y*boardWidth : (y+1)*boardWidth]))
		sb.WriteByte('\n')
	}
	fmt.Print("\033[H\033[2J", sb.String())
	return nil
}

func main() {
	var (
		frames     = flag.Int("frames", 100, "number of frames to simulate")
		movers     = flag.Int("movers", 12, "number of moving entities")
		seed       = flag.Int64("seed", 42, "RNG seed")
		quiet      = flag.Bool("quiet", false, "skip printing the board")
		profileRun = flag.Bool("profile", false, "write a CPU profile to the working directory")
	)
	flag.Parse()

	if *profileRun {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	if err := run(*frames, *movers, *seed, *quiet); err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, true))
		os.Exit(1)
	}
}

func run(frames, movers int, seed int64, quiet bool) error {
	w, err := ecpps.NewWorld(ecpps.WithLogger(zerolog.Nop()))
	if err != nil {
		return err
	}
	if err := ecpps.RegisterSystems(w, movementSystem{}, renderSystem{quiet: quiet}); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	glyphs := []rune{'@', '#', '%', '&', '*'}
	for i := 0; i < movers; i++ {
		e, err := w.CreateEntityFrom(moverSpawner{rng: rng, glyph: glyphs[i%len(glyphs)]})
		if err != nil {
			return err
		}
		if i == 0 {
			w.SetSpecialEntity("leader", e)
		}
	}

	if err := w.Init(); err != nil {
		return err
	}
	for frame := 0; frame < frames; frame++ {
		if err := w.Update(); err != nil {
			return err
		}
		if err := w.Render(); err != nil {
			return err
		}
	}

	leader, err := w.GetSpecialEntity("leader")
	if err != nil {
		return err
	}
	pos, err := ecpps.GetComponent[Position](w, leader)
	if err != nil {
		return err
	}
	fmt.Printf("simulated %d frames, %d entities; leader ended at (%d,%d)\n",
		frames, w.NumEntities()-1, pos.X, pos.Y)
	return nil
}
