// Package spawn keeps named spawn regions on a grid and drops new objects
// into the first free cell of a matching region.
package spawn

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/logging"
	"github.com/oklog/ulid/v2"
	"github.com/runningwild/glop/util/algorithm"
)

var ErrNoFreeCell = errors.New("no free cell to spawn into")

// Point is a named rectangle of cells with its top-left corner at X, Y.
type Point struct {
	Name string `json:"name" yaml:"name"`
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
	Dx   int    `json:"dx" yaml:"dx"`
	Dy   int    `json:"dy" yaml:"dy"`
}

func (sp *Point) Dims() (int, int) {
	return sp.Dx, sp.Dy
}

func (sp *Point) Pos() (int, int) {
	return sp.X, sp.Y
}

// Cells in row-major order.
func (sp *Point) Cells() []grid.Coord {
	var cells []grid.Coord
	for y := sp.Y; y < sp.Y+sp.Dy; y++ {
		for x := sp.X; x < sp.X+sp.Dx; x++ {
			cells = append(cells, grid.Coord{X: x, Y: y})
		}
	}
	return cells
}

type Spawner struct {
	grid   *grid.Grid
	points []*Point
}

func New(g *grid.Grid) *Spawner {
	return &Spawner{grid: g}
}

func (s *Spawner) Points() []*Point {
	return s.points
}

func (s *Spawner) Add(sp *Point) error {
	if sp.Name == "" {
		return fmt.Errorf("spawn point needs a name")
	}
	if sp.Dx <= 0 || sp.Dy <= 0 {
		return fmt.Errorf("spawn point %q has no area (%dx%d)", sp.Name, sp.Dx, sp.Dy)
	}
	corner := grid.Coord{X: sp.X + sp.Dx - 1, Y: sp.Y + sp.Dy - 1}
	if !s.grid.IsValidPosition(grid.Coord{X: sp.X, Y: sp.Y}) || !s.grid.IsValidPosition(corner) {
		return fmt.Errorf("spawn point %q: %w", sp.Name, grid.ErrOutOfBounds)
	}
	for _, other := range s.points {
		if other.Name == sp.Name {
			return fmt.Errorf("spawn point %q already exists", sp.Name)
		}
	}
	s.points = append(s.points, sp)
	return nil
}

func (s *Spawner) Remove(name string) bool {
	before := len(s.points)
	algorithm.Choose(&s.points, func(sp *Point) bool {
		return sp.Name != name
	})
	return len(s.points) != before
}

// Matching returns the points whose names match pattern, in the order they
// were added.
func (s *Spawner) Matching(pattern string) ([]*Point, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad spawn pattern %q: %w", pattern, err)
	}
	var matches []*Point
	for _, sp := range s.points {
		if !re.MatchString(sp.Name) {
			continue
		}
		matches = append(matches, sp)
	}
	return matches, nil
}

// Spawn puts a new object of the given kind on the first free cell of the
// first matching point that has one.
func (s *Spawner) Spawn(pattern string, kind grid.Kind) (ulid.ULID, grid.Coord, error) {
	points, err := s.Matching(pattern)
	if err != nil {
		return ulid.ULID{}, grid.Coord{}, err
	}
	for _, sp := range points {
		for _, c := range sp.Cells() {
			cell, ok := s.grid.GetCell(c)
			if !ok || cell.Occupied() {
				continue
			}
			id := grid.NewObjectID()
			if err := s.grid.OccupyCell(c, id, kind); err != nil {
				return ulid.ULID{}, grid.Coord{}, err
			}
			logging.Debug("spawn.Spawn", "point", sp.Name, "pos", c, "kind", kind, "id", id)
			return id, c, nil
		}
	}
	logging.Warn("spawn.Spawn: nowhere to spawn", "pattern", pattern, "kind", kind)
	return ulid.ULID{}, grid.Coord{}, fmt.Errorf("spawn %v matching %q: %w", kind, pattern, ErrNoFreeCell)
}
