package placement

import (
	"fmt"

	"github.com/caffeine-storm/shipyard/grid"
)

// Footprint is the rectangle of cells an object covers. Origin is the
// top-left cell.
type Footprint struct {
	Origin        grid.Coord
	Width, Height int
}

func (fp Footprint) String() string {
	return fmt.Sprintf("%dx%d@%v", fp.Width, fp.Height, fp.Origin)
}

func (fp Footprint) Valid() bool {
	return fp.Width > 0 && fp.Height > 0
}

// Cells lists every covered cell in row-major order.
func (fp Footprint) Cells() []grid.Coord {
	if !fp.Valid() {
		return nil
	}
	cells := make([]grid.Coord, 0, fp.Width*fp.Height)
	for y := 0; y < fp.Height; y++ {
		for x := 0; x < fp.Width; x++ {
			cells = append(cells, fp.Origin.Add(grid.Coord{X: x, Y: y}))
		}
	}
	return cells
}

func (fp Footprint) Contains(c grid.Coord) bool {
	return c.X >= fp.Origin.X && c.X < fp.Origin.X+fp.Width &&
		c.Y >= fp.Origin.Y && c.Y < fp.Origin.Y+fp.Height
}

func (fp Footprint) At(origin grid.Coord) Footprint {
	fp.Origin = origin
	return fp
}

// Rotated turns the footprint a quarter turn about its origin.
func (fp Footprint) Rotated() Footprint {
	fp.Width, fp.Height = fp.Height, fp.Width
	return fp
}
