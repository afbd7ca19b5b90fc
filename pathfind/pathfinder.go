// Package pathfind routes agents across a grid. It tries a straight line
// first and falls back to a 4-directional A* search.
package pathfind

import (
	"errors"
	"fmt"

	"github.com/MobRulesGames/mathgl"
	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/logging"
	"github.com/runningwild/glop/util/algorithm"
)

var (
	ErrInvalidStart = errors.New("start is out of bounds")
	ErrInvalidEnd   = errors.New("end is out of bounds")
)

type Status int

const (
	// Start and end are the same cell.
	Arrived Status = iota

	// The straight line between start and end was clear.
	Direct

	// Found by search.
	Searched

	// No route exists. The path holds only the end cell and callers decide
	// how far to move.
	Unreachable
)

func (s Status) String() string {
	switch s {
	case Arrived:
		return "Arrived"
	case Direct:
		return "Direct"
	case Searched:
		return "Searched"
	case Unreachable:
		return "Unreachable"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Path is a computed route. Steps excludes the start cell and, unless Status
// is Arrived, ends with the end cell.
type Path struct {
	Steps  []grid.Coord
	Status Status
}

func (p Path) Found() bool {
	return p.Status != Unreachable
}

type Option func(*Pathfinder)

// WithPassable replaces the rule deciding which cells may be walked through.
func WithPassable(fn func(grid.Cell) bool) Option {
	return func(pf *Pathfinder) {
		pf.isPassable = fn
	}
}

type Pathfinder struct {
	grid       *grid.Grid
	isPassable func(grid.Cell) bool
}

// A cell is passable when it is free or its occupant's kind lets agents
// through.
func DefaultPassable(c grid.Cell) bool {
	return !c.Occupied() || c.Kind.Passable()
}

func New(g *grid.Grid, opts ...Option) *Pathfinder {
	pf := &Pathfinder{
		grid:       g,
		isPassable: DefaultPassable,
	}
	for _, opt := range opts {
		opt(pf)
	}
	return pf
}

func (pf *Pathfinder) passable(c grid.Coord) bool {
	cell, ok := pf.grid.GetCell(c)
	return ok && pf.isPassable(cell)
}

func (pf *Pathfinder) FindPath(start, end grid.Coord) (Path, error) {
	if !pf.grid.IsValidPosition(start) {
		return Path{}, fmt.Errorf("path %v -> %v: %w", start, end, ErrInvalidStart)
	}
	if !pf.grid.IsValidPosition(end) {
		return Path{}, fmt.Errorf("path %v -> %v: %w", start, end, ErrInvalidEnd)
	}
	if start == end {
		return Path{Steps: []grid.Coord{}, Status: Arrived}, nil
	}

	if steps, ok := pf.direct(start, end); ok {
		return Path{Steps: steps, Status: Direct}, nil
	}

	if steps := pf.search(start, end); steps != nil {
		logging.Trace("pathfind.FindPath: searched", "start", start, "end", end, "len", len(steps))
		return Path{Steps: steps, Status: Searched}, nil
	}

	logging.Debug("pathfind.FindPath: unreachable", "start", start, "end", end)
	return Path{Steps: []grid.Coord{end}, Status: Unreachable}, nil
}

func (pf *Pathfinder) direct(start, end grid.Coord) ([]grid.Coord, bool) {
	steps := Line(start, end)[1:]
	for _, c := range steps {
		if !pf.passable(c) {
			return nil, false
		}
	}
	return steps, true
}

// WorldPath maps each step of a path to the centre of its cell.
func WorldPath(g *grid.Grid, p Path) []mathgl.Vec2 {
	var world []mathgl.Vec2
	algorithm.Map(p.Steps, &world, func(c grid.Coord) mathgl.Vec2 {
		return g.GridToWorld(c)
	})
	return world
}
