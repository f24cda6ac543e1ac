// Package host is a terminal reference host for the drop engine. It backs the
// core capability interfaces with a square grid, a SQLite scene, a disk
// upload store and terminal or scripted dialogs.
package host

import (
	"math"

	"droppables/core"
)

// View is the canvas pan and zoom. A client point p maps to the canvas point
// (p - Offset) / Scale.
type View struct {
	Offset core.Point
	Scale  float64
}

// SquareGrid snaps canvas points to square cells of Size pixels.
type SquareGrid struct {
	Size float64
	View View
}

// NewSquareGrid returns a grid of size-pixel cells with an identity view.
func NewSquareGrid(size float64) *SquareGrid {
	return &SquareGrid{Size: size, View: View{Scale: 1}}
}

// ToCanvas converts a client point to canvas coordinates.
func (g *SquareGrid) ToCanvas(clientX, clientY float64) core.Point {
	scale := g.View.Scale
	if scale <= 0 {
		scale = 1
	}
	return core.Point{
		X: (clientX - g.View.Offset.X) / scale,
		Y: (clientY - g.View.Offset.Y) / scale,
	}
}

func (g *SquareGrid) TopLeft(clientX, clientY float64) core.Point {
	p := g.ToCanvas(clientX, clientY)
	return core.Point{
		X: math.Floor(p.X/g.Size) * g.Size,
		Y: math.Floor(p.Y/g.Size) * g.Size,
	}
}

func (g *SquareGrid) CellSize() core.Size {
	return core.Size{Width: g.Size, Height: g.Size}
}
