package catalog

import (
	"fmt"

	"github.com/caffeine-storm/shipyard/base"
	"github.com/caffeine-storm/shipyard/grid"
	"github.com/caffeine-storm/shipyard/placement"
)

const registryName = "buildings"

func MakeBuilding(name string) (*Building, error) {
	b := Building{Defname: name}
	if err := base.GetObject(registryName, &b); err != nil {
		return nil, fmt.Errorf("no building %q: %w", name, err)
	}
	return &b, nil
}

func GetAllBuildingNames() []string {
	return base.GetAllNamesInRegistry(registryName)
}

// Replaces the building registry with every .json, .yaml and .yml def found
// under dir.
func LoadAllBuildingsInDir(dir string) error {
	base.RemoveRegistry(registryName)
	if err := base.RegisterRegistry(registryName, make(map[string]*BuildingDef)); err != nil {
		return err
	}
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		format, _ := base.FormatForPath(ext)
		if err := base.RegisterAllObjectsInDir(registryName, dir, ext, format); err != nil {
			return err
		}
	}
	return nil
}

type Building struct {
	Defname string
	*BuildingDef
}

// BuildingDef is anything with a fixed rectangular footprint: rooms, walls,
// furniture and so on.
type BuildingDef struct {
	Name string    `json:"name" yaml:"name"`
	Kind grid.Kind `json:"kind" yaml:"kind"`

	// Size in cells when unrotated.
	Dx int `json:"dx" yaml:"dx"`
	Dy int `json:"dy" yaml:"dy"`
}

func (b *BuildingDef) Dims() (int, int) {
	return b.Dx, b.Dy
}

// Footprint of the building with its top-left corner at origin.
func (b *Building) Footprint(origin grid.Coord) placement.Footprint {
	return placement.Footprint{Origin: origin, Width: b.Dx, Height: b.Dy}
}
