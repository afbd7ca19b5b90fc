package catalog_test

import (
	"testing"

	"github.com/caffeine-storm/shipyard/catalog"
	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllBuildings(t *testing.T) {
	require.NoError(t, catalog.LoadAllBuildingsInDir("testdata/buildings"))

	t.Run("loads every format and skips bad or hidden files", func(t *testing.T) {
		assert.Equal(t, []string{"Bulkhead", "Bunk", "Galley"}, catalog.GetAllBuildingNames())
	})

	t.Run("makes buildings from defs", func(t *testing.T) {
		galley, err := catalog.MakeBuilding("Galley")
		require.NoError(t, err)
		assert.Equal(t, grid.KindRoom, galley.Kind)
		assert.Equal(t, placement.Footprint{Origin: grid.Coord{X: 1, Y: 2}, Width: 3, Height: 2}, galley.Footprint(grid.Coord{X: 1, Y: 2}))

		other, err := catalog.MakeBuilding("Galley")
		require.NoError(t, err)
		assert.Same(t, galley.BuildingDef, other.BuildingDef)
	})

	t.Run("fails on unknown names", func(t *testing.T) {
		_, err := catalog.MakeBuilding("Brig")
		assert.Error(t, err)
	})

	t.Run("reloading replaces the registry", func(t *testing.T) {
		require.NoError(t, catalog.LoadAllBuildingsInDir(t.TempDir()))
		assert.Empty(t, catalog.GetAllBuildingNames())
	})
}
