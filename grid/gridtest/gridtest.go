package gridtest

import (
	"strings"
	"testing"

	"github.com/caffeine-storm/shipyard/grid"
	"github.com/oklog/ulid/v2"
)

func MakeGrid(t testing.TB, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.New(grid.Config{Width: w, Height: h})
	if err != nil {
		t.Fatalf("couldn't make a %dx%d grid: %v", w, h, err)
	}
	return g
}

// Fill occupies every listed cell with one new object of the given kind and
// returns its id.
func Fill(t testing.TB, g *grid.Grid, kind grid.Kind, cells ...grid.Coord) ulid.ULID {
	t.Helper()
	id := grid.NewObjectID()
	for _, c := range cells {
		if err := g.OccupyCell(c, id, kind); err != nil {
			t.Fatalf("couldn't fill %v with %v: %v", c, kind, err)
		}
	}
	return id
}

// Dump draws the grid one glyph per cell, one row per line.
func Dump(g *grid.Grid) string {
	var sb strings.Builder
	g.Each(func(c grid.Cell) {
		sb.WriteRune(c.Kind.Glyph())
		if c.Pos.X == g.Width()-1 {
			sb.WriteByte('\n')
		}
	})
	return sb.String()
}
