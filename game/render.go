package game

import (
	"strings"

	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/pathfind"
)

const pathGlyph = '*'

// Render draws the grid one glyph per cell.
func (g *Game) Render() string {
	return g.RenderPath(pathfind.Path{})
}

// Like Render but marks the free cells of path.
func (g *Game) RenderPath(path pathfind.Path) string {
	marked := make(map[grid.Coord]bool, len(path.Steps))
	for _, c := range path.Steps {
		marked[c] = true
	}

	var sb strings.Builder
	g.Grid.Each(func(c grid.Cell) {
		_, passing := g.passing[c.Pos]
		switch {
		case passing:
			sb.WriteRune(grid.KindCharacter.Glyph())
		case marked[c.Pos] && !c.Occupied():
			sb.WriteRune(pathGlyph)
		default:
			sb.WriteRune(c.Kind.Glyph())
		}
		if c.Pos.X == g.Grid.Width()-1 {
			sb.WriteByte('\n')
		}
	})
	return sb.String()
}
