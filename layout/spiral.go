package layout

import "droppables/core"

// spiral fills concentric square rings around origin. Ring d spans
// (2d+1)^2 - (2d-1)^2 cells. Within a ring the offset steps +x, +y, -x, -y,
// switching direction each time the number of cells already visited in the
// ring crosses a quarter of the ring. When a ring is full the offset jumps
// to the next ring's top-left corner.
//
// Despite the "random" style name the order is fully deterministic.
func spiral(origin core.Point, cell core.Size, count int) []core.Point {
	out := make([]core.Point, count)

	distance := 0
	dropped := 0
	var offsetX, offsetY float64

	for i := range out {
		side := 2*distance + 1
		inner := 2*distance - 1
		filled := side * side

		// Ring 0 evaluates to 0 here; its single cell always steps +x below
		// before moving to ring 1.
		totalTries := float64(filled - inner*inner)
		tries := float64(filled - dropped)

		out[i] = core.Point{X: origin.X + offsetX, Y: origin.Y + offsetY}

		visited := totalTries - tries
		switch {
		case visited < totalTries/4:
			offsetX += cell.Width
		case visited < 2*totalTries/4:
			offsetY += cell.Height
		case visited < 3*totalTries/4:
			offsetX -= cell.Width
		default:
			offsetY -= cell.Height
		}

		dropped++

		if dropped == filled {
			distance++
			offsetX = -float64(distance) * cell.Width
			offsetY = -float64(distance) * cell.Height
		}
	}
	return out
}
