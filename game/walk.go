package game

import (
	"fmt"
	"sort"

	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/logging"
	"github.com/caffeine-storm/shipyard/pathfind"
	"github.com/oklog/ulid/v2"
)

// Walk routes a character towards end. The character moves one cell per call
// to Step. An unreachable end leaves the character where it is; the returned
// path says so.
func (g *Game) Walk(id ulid.ULID, end grid.Coord) (pathfind.Path, error) {
	start, ok := g.Position(id)
	if !ok {
		return pathfind.Path{}, fmt.Errorf("walk %v: %w", id, grid.ErrInvalidObject)
	}
	if cell, _ := g.Grid.GetCell(start); g.passing[start] != id && cell.Kind != grid.KindCharacter {
		return pathfind.Path{}, fmt.Errorf("walk %v: %v can't walk: %w", id, cell.Kind, grid.ErrInvalidObject)
	}

	path, err := g.Paths.FindPath(start, end)
	if err != nil {
		return path, err
	}
	delete(g.walkers, id)
	if path.Status == pathfind.Unreachable || len(path.Steps) == 0 {
		return path, nil
	}
	steps := make([]grid.Coord, len(path.Steps))
	copy(steps, path.Steps)
	g.walkers[id] = &walker{target: end, steps: steps}
	return path, nil
}

// Walking returns how many steps id has left.
func (g *Game) Walking(id ulid.ULID) int {
	w, ok := g.walkers[id]
	if !ok {
		return 0
	}
	return len(w.steps)
}

// Step moves every walker one cell along its path and returns how many
// moved. A walker whose next cell is taken waits. Walkers are stepped in id
// order.
func (g *Game) Step() int {
	ids := make([]ulid.ULID, 0, len(g.walkers))
	for id := range g.walkers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Compare(ids[j]) < 0
	})

	moved := 0
	for _, id := range ids {
		if g.stepWalker(id, g.walkers[id]) {
			moved++
		}
	}
	return moved
}

func (g *Game) stepWalker(id ulid.ULID, w *walker) bool {
	pos, ok := g.Position(id)
	if !ok {
		logging.Warn("walker vanished", "id", id)
		delete(g.walkers, id)
		return false
	}

	next := w.steps[0]
	cell, _ := g.Grid.GetCell(next)
	if g.crewAt(cell) || !pathfind.DefaultPassable(cell) {
		w.blocked++
		logging.Trace("walker blocked", "id", id, "pos", pos, "next", next, "by", cell.Kind, "blocked", w.blocked)
		if w.blocked >= replanAfter {
			g.replan(id, pos, w)
		}
		return false
	}

	if err := g.move(id, pos, cell); err != nil {
		logging.Error("walker couldn't move", "id", id, "from", pos, "to", next, "err", err)
		return false
	}
	w.blocked = 0
	w.steps = w.steps[1:]
	if len(w.steps) == 0 {
		delete(g.walkers, id)
	}
	return true
}

func (g *Game) replan(id ulid.ULID, pos grid.Coord, w *walker) {
	path, err := g.detours.FindPath(pos, w.target)
	if err != nil || path.Status == pathfind.Unreachable || len(path.Steps) == 0 {
		logging.Debug("walker gave up", "id", id, "pos", pos, "target", w.target)
		delete(g.walkers, id)
		return
	}
	w.steps = path.Steps
	w.blocked = 0
}

// Moves character id from 'from' into to. A character entering a cell that
// something else holds stands on it without taking it over.
func (g *Game) move(id ulid.ULID, from grid.Coord, to grid.Cell) error {
	g.leave(id, from)
	if to.Occupied() {
		g.passing[to.Pos] = id
		return nil
	}
	if err := g.Grid.OccupyCell(to.Pos, id, grid.KindCharacter); err != nil {
		g.enter(id, from)
		return err
	}
	return nil
}

func (g *Game) leave(id ulid.ULID, c grid.Coord) {
	if g.passing[c] == id {
		delete(g.passing, c)
		return
	}
	g.Grid.FreeCell(c)
}

func (g *Game) enter(id ulid.ULID, c grid.Coord) {
	if cell, _ := g.Grid.GetCell(c); cell.Occupied() {
		g.passing[c] = id
		return
	}
	g.Grid.OccupyCell(c, id, grid.KindCharacter)
}
