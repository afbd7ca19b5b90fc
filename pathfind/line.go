package pathfind

import "github.com/caffeine-storm/shipyard/grid"

// Line returns the Bresenham rasterisation of the segment from a to b,
// including both endpoints.
func Line(a, b grid.Coord) []grid.Coord {
	dx := b.X - a.X
	if dx < 0 {
		dx = -dx
	}
	dy := b.Y - a.Y
	if dy > 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	line := make([]grid.Coord, 0, max(-dy, dx)+1)
	cur := a
	err := dx + dy
	for {
		line = append(line, cur)
		if cur == b {
			return line
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			cur.X += sx
		}
		if e2 <= dx {
			err += dx
			cur.Y += sy
		}
	}
}
