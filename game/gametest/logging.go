package gametest

import (
	"github.com/caffeine-storm/shipyard/game"
	"github.com/caffeine-storm/shipyard/logging"
)

// Step with trace logging turned on. Useful while working out why a walker
// won't budge.
func StepWithTrace(g *game.Game) int {
	var moved int
	logging.TraceBracket(func() {
		moved = g.Step()
	})
	return moved
}
