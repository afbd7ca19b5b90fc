package spawn_test

import (
	"errors"
	"testing"

	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/grid/gridtest"
	"github.com/caffeine-storm/shipyard/spawn"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawner(t *testing.T) {
	Convey("spawn.Spawner", t, func() {
		g := gridtest.MakeGrid(t, 6, 6)
		s := spawn.New(g)
		So(s.Add(&spawn.Point{Name: "crew-fore", X: 0, Y: 0, Dx: 2, Dy: 1}), ShouldBeNil)
		So(s.Add(&spawn.Point{Name: "crew-aft", X: 4, Y: 4, Dx: 2, Dy: 2}), ShouldBeNil)
		So(s.Add(&spawn.Point{Name: "cargo", X: 2, Y: 2, Dx: 1, Dy: 1}), ShouldBeNil)

		Convey("rejects bad points", func() {
			So(s.Add(&spawn.Point{Name: "", Dx: 1, Dy: 1}), ShouldNotBeNil)
			So(s.Add(&spawn.Point{Name: "flat", Dx: 0, Dy: 1}), ShouldNotBeNil)
			So(s.Add(&spawn.Point{Name: "cargo", X: 3, Y: 3, Dx: 1, Dy: 1}), ShouldNotBeNil)
			err := s.Add(&spawn.Point{Name: "overboard", X: 5, Y: 5, Dx: 2, Dy: 1})
			So(errors.Is(err, grid.ErrOutOfBounds), ShouldBeTrue)
			So(len(s.Points()), ShouldEqual, 3)
		})

		Convey("matches by pattern", func() {
			crew, err := s.Matching("^crew-")
			So(err, ShouldBeNil)
			So(len(crew), ShouldEqual, 2)
			So(crew[0].Name, ShouldEqual, "crew-fore")

			_, err = s.Matching("(")
			So(err, ShouldNotBeNil)
		})

		Convey("spawns into the first free cell", func() {
			first, pos, err := s.Spawn("^crew-", grid.KindCharacter)
			So(err, ShouldBeNil)
			So(pos, ShouldResemble, grid.Coord{X: 0, Y: 0})

			_, pos, err = s.Spawn("^crew-", grid.KindCharacter)
			So(err, ShouldBeNil)
			So(pos, ShouldResemble, grid.Coord{X: 1, Y: 0})

			_, pos, err = s.Spawn("^crew-", grid.KindCharacter)
			So(err, ShouldBeNil)
			So(pos, ShouldResemble, grid.Coord{X: 4, Y: 4})

			So(g.ObjectCells(first), ShouldResemble, []grid.Coord{{X: 0, Y: 0}})
			So(g.Index().Count(grid.KindCharacter), ShouldEqual, 3)
		})

		Convey("reports when every cell is taken", func() {
			gridtest.Fill(t, g, grid.KindFurniture, grid.Coord{X: 2, Y: 2})
			_, _, err := s.Spawn("cargo", grid.KindCharacter)
			So(errors.Is(err, spawn.ErrNoFreeCell), ShouldBeTrue)

			_, _, err = s.Spawn("nowhere", grid.KindCharacter)
			So(errors.Is(err, spawn.ErrNoFreeCell), ShouldBeTrue)
		})

		Convey("removes by name", func() {
			So(s.Remove("cargo"), ShouldBeTrue)
			So(s.Remove("cargo"), ShouldBeFalse)
			So(len(s.Points()), ShouldEqual, 2)
		})
	})
}

func TestPointCells(t *testing.T) {
	sp := &spawn.Point{Name: "p", X: 1, Y: 1, Dx: 2, Dy: 2}
	require.Len(t, sp.Cells(), 4)
	assert.Equal(t, grid.Coord{X: 2, Y: 1}, sp.Cells()[1])
	dx, dy := sp.Dims()
	assert.Equal(t, [2]int{2, 2}, [2]int{dx, dy})
}
