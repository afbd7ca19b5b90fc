package registry

import (
	"path/filepath"

	"github.com/caffeine-storm/shipyard/catalog"
	"github.com/caffeine-storm/shipyard/logging"
)

// Loads every def registry from its subdirectory of datadir.
func LoadAllRegistries(datadir string) error {
	if err := catalog.LoadAllBuildingsInDir(filepath.Join(datadir, "buildings")); err != nil {
		return err
	}
	logging.Info("loaded registries", "datadir", datadir, "buildings", len(catalog.GetAllBuildingNames()))
	return nil
}
