package grid

import "fmt"

// Coord addresses a cell. X grows to the right and Y grows downward in row
// order, so cells are stored row-major.
type Coord struct {
	X, Y int
}

func (c Coord) Add(d Coord) Coord {
	return Coord{c.X + d.X, c.Y + d.Y}
}

func (c Coord) Sub(d Coord) Coord {
	return Coord{c.X - d.X, c.Y - d.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Manhattan distance between two cells.
func Manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Orders coordinates row-major.
func rowMajorLess(a, b Coord) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
