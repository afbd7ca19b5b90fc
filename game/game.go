package game

import (
	"fmt"
	"sort"

	"github.com/caffeine-storm/shipyard/catalog"
	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/logging"
	"github.com/caffeine-storm/shipyard/pathfind"
	"github.com/caffeine-storm/shipyard/placement"
	"github.com/caffeine-storm/shipyard/spawn"
	"github.com/oklog/ulid/v2"
)

// A walker that has been blocked this many steps in a row looks for a new
// route.
const replanAfter = 3

// Game owns every component built for one level. Nothing in here is global;
// hosts that want two levels make two Games.
type Game struct {
	Level *LevelDef

	Grid      *grid.Grid
	Paths     *pathfind.Pathfinder
	Validator *placement.Validator
	Spawner   *spawn.Spawner

	// Routes around other characters for walkers stuck behind one.
	detours *pathfind.Pathfinder

	Buildings []*Building

	crew    map[string]ulid.ULID
	walkers map[ulid.ULID]*walker

	// Crew standing on a passable cell another object holds, such as a door.
	// The grid keeps the cell's own occupant.
	passing map[grid.Coord]ulid.ULID
}

// Building is a catalog def placed on the grid.
type Building struct {
	Def *catalog.Building
	*placement.Placement
}

type walker struct {
	target  grid.Coord
	steps   []grid.Coord
	blocked int
}

func (g *Game) avoidCrew(c grid.Cell) bool {
	return !g.crewAt(c) && pathfind.DefaultPassable(c)
}

// Whether a character is standing in c, either holding it or passing
// through.
func (g *Game) crewAt(c grid.Cell) bool {
	_, passing := g.passing[c.Pos]
	return passing || c.Kind == grid.KindCharacter
}

func MakeGame(def *LevelDef) (*Game, error) {
	g, err := grid.New(def.Grid)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", def.Name, err)
	}
	game := &Game{
		Level:     def,
		Grid:      g,
		Paths:     pathfind.New(g),
		Validator: placement.NewValidator(g),
		Spawner:   spawn.New(g),
		crew:      make(map[string]ulid.ULID),
		walkers:   make(map[ulid.ULID]*walker),
		passing:   make(map[grid.Coord]ulid.ULID),
	}
	game.detours = pathfind.New(g, pathfind.WithPassable(game.avoidCrew))

	for i := range def.Spawns {
		if err := game.Spawner.Add(&def.Spawns[i]); err != nil {
			return nil, fmt.Errorf("level %q: %w", def.Name, err)
		}
	}

	for _, pb := range def.Buildings {
		b, err := game.AddBuilding(pb)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", def.Name, err)
		}
		logging.Debug("placed building", "level", def.Name, "building", b.Def.Defname, "footprint", b.Footprint())
	}

	for _, member := range def.Crew {
		if _, dup := game.crew[member.Name]; dup {
			return nil, fmt.Errorf("level %q: crew member %q listed twice", def.Name, member.Name)
		}
		id, pos, err := game.Spawner.Spawn(member.Spawn, grid.KindCharacter)
		if err != nil {
			return nil, fmt.Errorf("level %q: crew member %q: %w", def.Name, member.Name, err)
		}
		game.crew[member.Name] = id
		logging.Debug("spawned crew", "level", def.Name, "name", member.Name, "pos", pos)
	}

	logging.Info("made game", "level", def.Name, "buildings", len(game.Buildings), "crew", len(game.crew))
	return game, nil
}

// AddBuilding places a catalog building onto the grid.
func (g *Game) AddBuilding(pb PlacedBuilding) (*Building, error) {
	def, err := catalog.MakeBuilding(pb.Building)
	if err != nil {
		return nil, err
	}
	dx, dy := def.Dims()
	if pb.Rotated {
		dx, dy = dy, dx
	}
	p := g.Validator.NewPlacement(grid.NewObjectID(), def.Kind, dx, dy)
	if err := p.Place(grid.Coord{X: pb.X, Y: pb.Y}); err != nil {
		return nil, fmt.Errorf("building %q at (%d,%d): %w", pb.Building, pb.X, pb.Y, err)
	}
	b := &Building{Def: def, Placement: p}
	g.Buildings = append(g.Buildings, b)
	return b, nil
}

// Names of every crew member, sorted.
func (g *Game) Crew() []string {
	var names []string
	for name := range g.crew {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *Game) CrewID(name string) (ulid.ULID, bool) {
	id, ok := g.crew[name]
	return id, ok
}

// Position of a single-cell object or of a character passing through
// another object's cell.
func (g *Game) Position(id ulid.ULID) (grid.Coord, bool) {
	for c, who := range g.passing {
		if who == id {
			return c, true
		}
	}
	cells := g.Grid.ObjectCells(id)
	if len(cells) != 1 {
		return grid.Coord{}, false
	}
	return cells[0], true
}
