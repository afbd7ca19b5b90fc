package game_test

import (
	"strings"
	"testing"

	"github.com/caffeine-storm/shipyard/game/gametest"
	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/logging/logtesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepTracesBlockedWalkers(t *testing.T) {
	def := gametest.GivenALevelDef(4, 1)
	g := gametest.GivenAGame(t, def)
	mate, _ := g.CrewID("mate")
	gridFill := grid.NewObjectID()
	require.NoError(t, g.Grid.OccupyCell(grid.Coord{X: 1, Y: 0}, gridFill, grid.KindCharacter))

	_, err := g.Walk(mate, grid.Coord{X: 3, Y: 0})
	require.NoError(t, err)

	out := logtesting.CollectOutput(func() {
		assert.Equal(t, 0, gametest.StepWithTrace(g))
	})
	assert.Contains(t, strings.Join(out, "\n"), "walker blocked")
}

func TestWalkersCrossTheHold(t *testing.T) {
	def := gametest.GivenALevelDef(6, 3)
	g := gametest.GivenAGame(t, def)
	mate, _ := g.CrewID("mate")

	_, err := g.Walk(mate, grid.Coord{X: 5, Y: 2})
	require.NoError(t, err)
	steps := gametest.StepUntilStill(g, 20)

	assert.Equal(t, 5, steps)
	pos, _ := g.Position(mate)
	assert.Equal(t, grid.Coord{X: 5, Y: 2}, pos)
}

func TestWalkThroughDoor(t *testing.T) {
	def := gametest.GivenALevelDef(5, 3)
	g := gametest.GivenAGame(t, def)
	mate, _ := g.CrewID("mate")
	door := grid.Coord{X: 2, Y: 1}
	require.NoError(t, g.Grid.OccupyCell(grid.Coord{X: 2, Y: 0}, grid.NewObjectID(), grid.KindWall))
	require.NoError(t, g.Grid.OccupyCell(grid.Coord{X: 2, Y: 2}, grid.NewObjectID(), grid.KindWall))
	doorID := grid.NewObjectID()
	require.NoError(t, g.Grid.OccupyCell(door, doorID, grid.KindDoor))

	path, err := g.Walk(mate, grid.Coord{X: 4, Y: 1})
	require.NoError(t, err)
	require.True(t, path.Found())
	require.Contains(t, path.Steps, door)

	sawDoor := false
	for i := 0; i < 20 && g.Walking(mate) > 0; i++ {
		g.Step()
		if pos, _ := g.Position(mate); pos == door {
			sawDoor = true
			cell, _ := g.Grid.GetCell(door)
			assert.Equal(t, doorID, cell.Occupant)
			assert.Equal(t, "..#..\n..@..\n..#..\n", g.Render())
		}
	}

	assert.True(t, sawDoor)
	assert.Equal(t, 0, g.Walking(mate))
	pos, _ := g.Position(mate)
	assert.Equal(t, grid.Coord{X: 4, Y: 1}, pos)
	cell, _ := g.Grid.GetCell(door)
	assert.Equal(t, grid.KindDoor, cell.Kind)
	assert.Equal(t, doorID, cell.Occupant)
}

func TestWalkStartingOnADoor(t *testing.T) {
	def := gametest.GivenALevelDef(3, 1)
	g := gametest.GivenAGame(t, def)
	mate, _ := g.CrewID("mate")
	require.NoError(t, g.Grid.OccupyCell(grid.Coord{X: 1, Y: 0}, grid.NewObjectID(), grid.KindDoor))

	_, err := g.Walk(mate, grid.Coord{X: 1, Y: 0})
	require.NoError(t, err)
	gametest.StepUntilStill(g, 5)

	_, err = g.Walk(mate, grid.Coord{X: 2, Y: 0})
	require.NoError(t, err)
	gametest.StepUntilStill(g, 5)

	pos, _ := g.Position(mate)
	assert.Equal(t, grid.Coord{X: 2, Y: 0}, pos)
	assert.Equal(t, ".+@\n", g.Render())
}
