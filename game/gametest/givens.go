package gametest

import (
	"testing"

	"github.com/caffeine-storm/shipyard/game"
	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/spawn"
)

// An empty w x h level with one crew member named "mate" at (0,0).
func GivenALevelDef(w, h int) *game.LevelDef {
	return &game.LevelDef{
		Name: "stubbed",
		Grid: grid.Config{Width: w, Height: h},
		Spawns: []spawn.Point{
			{Name: "bow", X: 0, Y: 0, Dx: 1, Dy: 1},
		},
		Crew: []game.CrewDef{
			{Name: "mate", Spawn: "bow"},
		},
	}
}

func GivenAGame(t testing.TB, def *game.LevelDef) *game.Game {
	t.Helper()
	g, err := game.MakeGame(def)
	if err != nil {
		t.Fatalf("couldn't make game %q: %v", def.Name, err)
	}
	return g
}

// Steps g until nobody is walking or limit steps have passed. Returns the
// number of steps taken.
func StepUntilStill(g *game.Game, limit int) int {
	for i := 0; i < limit; i++ {
		if len(g.Crew()) == 0 || !anyoneWalking(g) {
			return i
		}
		g.Step()
	}
	return limit
}

func anyoneWalking(g *game.Game) bool {
	for _, name := range g.Crew() {
		id, _ := g.CrewID(name)
		if g.Walking(id) > 0 {
			return true
		}
	}
	return false
}
