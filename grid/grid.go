package grid

import (
	"fmt"
	"math"

	"github.com/MobRulesGames/mathgl"
	"github.com/caffeine-storm/shipyard/logging"
	"github.com/oklog/ulid/v2"
)

type Config struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	// Edge length of a cell in world units. Zero means 1.
	CellSize float32 `json:"cell_size" yaml:"cell_size"`

	// World position of the top-left corner of cell (0,0).
	Origin mathgl.Vec2 `json:"origin" yaml:"origin"`
}

// Grid is the single source of truth for which object holds which cell. Its
// dimensions are fixed at construction and every access is bounds-checked.
type Grid struct {
	width, height int
	cellSize      float32
	origin        mathgl.Vec2

	cells []Cell
	index *Index
}

func New(cfg Config) (*Grid, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, cfg.Width, cfg.Height)
	}
	if !(cfg.CellSize >= 0) {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidDimension, cfg.CellSize)
	}
	if cfg.CellSize == 0 {
		cfg.CellSize = 1
	}

	g := &Grid{
		width:    cfg.Width,
		height:   cfg.Height,
		cellSize: cfg.CellSize,
		origin:   cfg.Origin,
		cells:    make([]Cell, cfg.Width*cfg.Height),
		index:    newIndex(),
	}
	g.Reset()
	logging.Debug("grid.New", "width", g.width, "height", g.height, "cellsize", g.cellSize)
	return g, nil
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) CellSize() float32 { return g.cellSize }
func (g *Grid) Origin() mathgl.Vec2 { return g.origin }
func (g *Grid) Index() *Index { return g.index }
func (g *Grid) offset(c Coord) int { return c.Y*g.width + c.X }
func (g *Grid) coordAt(i int) Coord { return Coord{i % g.width, i / g.width} }

// Maps a world position onto the cell containing it. The result may be out
// of bounds.
func (g *Grid) WorldToGrid(p mathgl.Vec2) Coord {
	x := math.Floor(float64((p.X - g.origin.X) / g.cellSize))
	y := math.Floor(float64((p.Y - g.origin.Y) / g.cellSize))
	return Coord{int(x), int(y)}
}

// Returns the world position of the centre of a cell.
func (g *Grid) GridToWorld(c Coord) mathgl.Vec2 {
	return mathgl.Vec2{
		X: g.origin.X + (float32(c.X)+0.5)*g.cellSize,
		Y: g.origin.Y + (float32(c.Y)+0.5)*g.cellSize,
	}
}

func (g *Grid) IsValidPosition(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// GetCell returns a copy of the cell at c, or false if c is out of bounds.
func (g *Grid) GetCell(c Coord) (Cell, bool) {
	if !g.IsValidPosition(c) {
		return Cell{}, false
	}
	return g.cells[g.offset(c)], true
}

// Marks c as held by id. Occupying a cell the same object already holds only
// updates its kind.
func (g *Grid) OccupyCell(c Coord, id ulid.ULID, kind Kind) error {
	if !g.IsValidPosition(c) {
		return fmt.Errorf("occupy %v: %w", c, ErrOutOfBounds)
	}
	if id == noObject || kind == KindNone || !kind.Valid() {
		return fmt.Errorf("occupy %v with %v %v: %w", c, kind, id, ErrInvalidObject)
	}

	cell := &g.cells[g.offset(c)]
	if cell.Occupied() {
		if cell.Occupant != id {
			return fmt.Errorf("occupy %v: %w by %v %v", c, ErrAlreadyOccupied, cell.Kind, cell.Occupant)
		}
		if cell.Kind == kind {
			return nil
		}
		g.index.remove(c)
	}

	cell.Occupant = id
	cell.Kind = kind
	g.index.add(c, id, kind)
	logging.Trace("grid.OccupyCell", "pos", c, "id", id, "kind", kind)
	return nil
}

// Clears c. Freeing a free cell does nothing.
func (g *Grid) FreeCell(c Coord) error {
	if !g.IsValidPosition(c) {
		return fmt.Errorf("free %v: %w", c, ErrOutOfBounds)
	}
	cell := &g.cells[g.offset(c)]
	if !cell.Occupied() {
		return nil
	}
	logging.Trace("grid.FreeCell", "pos", c, "id", cell.Occupant, "kind", cell.Kind)
	cell.Occupant = noObject
	cell.Kind = KindNone
	g.index.remove(c)
	return nil
}

// Every cell held by id, row-major.
func (g *Grid) ObjectCells(id ulid.ULID) []Coord {
	return g.index.objectCells(id)
}

// Frees every cell held by id and returns how many there were.
func (g *Grid) RemoveObject(id ulid.ULID) int {
	cells := g.index.objectCells(id)
	for _, c := range cells {
		g.FreeCell(c)
	}
	return len(cells)
}

// Reset frees every cell.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Cell{Pos: g.coordAt(i)}
	}
	g.index.clear()
}

// Calls fn with every cell in row-major order.
func (g *Grid) Each(fn func(Cell)) {
	for _, cell := range g.cells {
		fn(cell)
	}
}
