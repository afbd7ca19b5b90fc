package leveltests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caffeine-storm/shipyard/game"
	"github.com/caffeine-storm/shipyard/registry"
	"github.com/smartystreets/goconvey/convey"
)

type LevelChoice int

var (
	Cutter LevelChoice = 1
)

// Relative to this package.
const datadir = "../../data"

func levelName(lvl LevelChoice) string {
	return map[LevelChoice]string{
		Cutter: "cutter",
	}[lvl]
}

type Tester interface {
	Game() *game.Game

	// Compares the rendered map against testdata/<level>/<testcase>.txt.
	ValidateExpectations(testcase string)
}

type renderingTester struct {
	lvl  LevelChoice
	game *game.Game
}

func (rt *renderingTester) Game() *game.Game {
	return rt.game
}

func (rt *renderingTester) ValidateExpectations(testcase string) {
	expectedFile := filepath.Join("testdata", levelName(rt.lvl), testcase+".txt")
	expected, err := os.ReadFile(expectedFile)
	convey.So(err, convey.ShouldBeNil)
	convey.So(rt.game.Render(), convey.ShouldEqual, string(expected))
}

// Loads the shipped data dir and the given level, then hands a Tester to
// testBody inside a goconvey context.
func EndToEndTest(t *testing.T, lvl LevelChoice, testBody func(Tester)) {
	convey.Convey("end to end: "+levelName(lvl), t, func() {
		convey.So(registry.LoadAllRegistries(datadir), convey.ShouldBeNil)

		def, err := game.LoadLevel(filepath.Join(datadir, "levels", levelName(lvl)+".yaml"))
		convey.So(err, convey.ShouldBeNil)
		g, err := game.MakeGame(def)
		convey.So(err, convey.ShouldBeNil)

		testBody(&renderingTester{lvl: lvl, game: g})
	})
}
