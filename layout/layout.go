// Package layout computes grid-aligned placement coordinates for the
// entities of a multi-entity drop.
package layout

import (
	"errors"
	"fmt"

	"droppables/core"
)

// Style selects a placement algorithm.
type Style string

// Styles. StyleDialog is a setting value meaning "ask the user"; it is not a
// placement algorithm and Positions rejects it.
const (
	StyleDialog         Style = "dialog"
	StyleStack          Style = "stack"
	StyleRandom         Style = "random"
	StyleHorizontalLine Style = "horizontalLine"
	StyleVerticalLine   Style = "verticalLine"
)

// ErrUnknownStyle is returned for a style that has no placement algorithm.
var ErrUnknownStyle = errors.New("unknown drop style")

// PlacementStyles lists the styles with a placement algorithm, in the order
// they are offered to the user.
func PlacementStyles() []Style {
	return []Style{StyleStack, StyleRandom, StyleHorizontalLine, StyleVerticalLine}
}

// IsPlacement reports whether s names a placement algorithm.
func (s Style) IsPlacement() bool {
	switch s {
	case StyleStack, StyleRandom, StyleHorizontalLine, StyleVerticalLine:
		return true
	}
	return false
}

// Valid reports whether s is a placement style or StyleDialog.
func (s Style) Valid() bool {
	return s == StyleDialog || s.IsPlacement()
}

// Item is anything with a footprint measured in grid cells.
type Item interface {
	Footprint() core.Size
}

// Request is one layout job: place Items around Origin.
type Request[T Item] struct {
	Items     []T
	Origin    core.Point
	Elevation float64
	Hidden    bool
	Style     Style
}

// Placement is one laid out item.
type Placement[T Item] struct {
	Item      T
	X         float64
	Y         float64
	Elevation float64
	Hidden    bool
}

// Plan lays out req.Items using the given grid cell size. Placements are in
// item order. Elevation and Hidden are copied through unchanged.
func Plan[T Item](req Request[T], cell core.Size) ([]Placement[T], error) {
	footprints := make([]core.Size, len(req.Items))
	for i, item := range req.Items {
		footprints[i] = item.Footprint()
	}

	points, err := Positions(req.Style, req.Origin, cell, footprints)
	if err != nil {
		return nil, err
	}

	placements := make([]Placement[T], len(points))
	for i, p := range points {
		placements[i] = Placement[T]{
			Item:      req.Items[i],
			X:         p.X,
			Y:         p.Y,
			Elevation: req.Elevation,
			Hidden:    req.Hidden,
		}
	}
	return placements, nil
}

// Positions returns one coordinate per footprint. Footprints only matter for
// the line styles; a non-positive dimension counts as one cell.
func Positions(style Style, origin core.Point, cell core.Size, footprints []core.Size) ([]core.Point, error) {
	switch style {
	case StyleStack:
		return stack(origin, len(footprints)), nil
	case StyleRandom:
		return spiral(origin, cell, len(footprints)), nil
	case StyleHorizontalLine:
		return line(origin, cell, footprints, true), nil
	case StyleVerticalLine:
		return line(origin, cell, footprints, false), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
}

// Uniform returns count footprints of one cell each.
func Uniform(count int) []core.Size {
	if count < 0 {
		count = 0
	}
	out := make([]core.Size, count)
	for i := range out {
		out[i] = core.Size{Width: 1, Height: 1}
	}
	return out
}

func stack(origin core.Point, count int) []core.Point {
	out := make([]core.Point, count)
	for i := range out {
		out[i] = origin
	}
	return out
}

func line(origin core.Point, cell core.Size, footprints []core.Size, horizontal bool) []core.Point {
	out := make([]core.Point, len(footprints))
	var offsetX, offsetY float64
	for i, fp := range footprints {
		out[i] = core.Point{X: origin.X + offsetX, Y: origin.Y + offsetY}

		if horizontal {
			offsetX += cells(fp.Width) * cell.Width
		} else {
			offsetY += cells(fp.Height) * cell.Height
		}
	}
	return out
}

func cells(n float64) float64 {
	if n <= 0 {
		return 1
	}
	return n
}
