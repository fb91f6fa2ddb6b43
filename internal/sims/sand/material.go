package sand

import (
	"fmt"
	"strings"
)

// Material enumerates what a cell holds.
type Material uint8

const (
	MaterialEmpty Material = iota
	MaterialObstacle
	MaterialGranular
	MaterialLiquid

	materialCount
)

var materialNames = [materialCount]string{
	MaterialEmpty:    "empty",
	MaterialObstacle: "obstacle",
	MaterialGranular: "granular",
	MaterialLiquid:   "liquid",
}

// Valid reports whether m is one of the defined materials.
func (m Material) Valid() bool { return m < materialCount }

func (m Material) String() string {
	if !m.Valid() {
		return fmt.Sprintf("material(%d)", uint8(m))
	}
	return materialNames[m]
}

// ParseMaterial accepts a material name (case-insensitive) or the aliases
// used by the hosts: brick/wall, sand, water.
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty", "air":
		return MaterialEmpty, nil
	case "obstacle", "brick", "wall":
		return MaterialObstacle, nil
	case "granular", "sand":
		return MaterialGranular, nil
	case "liquid", "water":
		return MaterialLiquid, nil
	}
	return MaterialEmpty, fmt.Errorf("%w: %q", ErrInvalidMaterial, s)
}

// Cell is the unit of grid state. Settled marks content that was already
// placed during the current tick and must not be processed again until the
// engine clears it.
type Cell struct {
	Material Material
	Settled  bool
}
