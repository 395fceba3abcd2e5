// Package testutils provides shared fixture components for tests.
package testutils

import "github.com/rogerthat52/ecpps/types"

type Position struct {
	X, Y float64
}

func (Position) Name() string { return "Position" }

type Velocity struct {
	DX, DY float64
}

func (Velocity) Name() string { return "Velocity" }

type Health struct {
	Value int
}

func (Health) Name() string { return "Health" }

type Tag struct{}

func (Tag) Name() string { return "Tag" }

// Clock is a world-scoped singleton used by the self-routing tests.
type Clock struct {
	T uint64
}

func (Clock) Name() string { return "Clock" }

// Sprite opts into the render marker.
type Sprite struct {
	types.RenderMarker
	Glyph rune
}

func (Sprite) Name() string { return "Sprite" }
