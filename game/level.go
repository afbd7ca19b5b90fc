package game

import (
	"fmt"

	"github.com/caffeine-storm/shipyard/base"
	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/spawn"
)

// A building from the catalog and where it goes.
type PlacedBuilding struct {
	Building string `json:"building" yaml:"building"`
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`

	// Swap the def's width and height.
	Rotated bool `json:"rotated" yaml:"rotated"`
}

// A named character placed by spawn pattern when the level starts.
type CrewDef struct {
	Name  string `json:"name" yaml:"name"`
	Spawn string `json:"spawn" yaml:"spawn"`
}

type LevelDef struct {
	Name      string           `json:"name" yaml:"name"`
	Grid      grid.Config      `json:"grid" yaml:"grid"`
	Spawns    []spawn.Point    `json:"spawns" yaml:"spawns"`
	Buildings []PlacedBuilding `json:"buildings" yaml:"buildings"`
	Crew      []CrewDef        `json:"crew" yaml:"crew"`
}

// Reads a level from a .json, .yaml or .yml file.
func LoadLevel(path string) (*LevelDef, error) {
	format, err := base.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	var def LevelDef
	if err := base.LoadAndProcessObject(path, format, &def); err != nil {
		return nil, fmt.Errorf("couldn't load level %q: %w", path, err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("level %q has no name", path)
	}
	return &def, nil
}
