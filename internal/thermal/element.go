package thermal

import "fmt"

// BuildingElement is an integer enum naming the thermal nodes a network may
// contain. No two nodes in one network share an identity.
type BuildingElement int

const (
	ElementUnknown BuildingElement = iota
	ExternalAir
	InternalAir
	WallNorth
	WallEast
	WallSouth
	WallWest
	WindowsNorth
	WindowsEast
	WindowsSouth
	WindowsWest
	Floor
	Roof
	HeatingSystem

	elementCount
)

func (e BuildingElement) Valid() bool {
	return e > ElementUnknown && e < elementCount
}

// IsEnvelope reports whether the element is part of the building fabric,
// i.e. neither an air boundary nor the heating system.
func (e BuildingElement) IsEnvelope() bool {
	switch e {
	case WallNorth, WallEast, WallSouth, WallWest,
		WindowsNorth, WindowsEast, WindowsSouth, WindowsWest,
		Floor, Roof:
		return true
	default:
		return false
	}
}

func (e BuildingElement) String() string {
	switch e {
	case ExternalAir:
		return "external_air"
	case InternalAir:
		return "internal_air"
	case WallNorth:
		return "wall_north"
	case WallEast:
		return "wall_east"
	case WallSouth:
		return "wall_south"
	case WallWest:
		return "wall_west"
	case WindowsNorth:
		return "windows_north"
	case WindowsEast:
		return "windows_east"
	case WindowsSouth:
		return "windows_south"
	case WindowsWest:
		return "windows_west"
	case Floor:
		return "floor"
	case Roof:
		return "roof"
	case HeatingSystem:
		return "heating_system"
	default:
		return "unknown"
	}
}

// ParseBuildingElement is handy for config files and CLI flags.
func ParseBuildingElement(s string) (BuildingElement, error) {
	for e := ExternalAir; e < elementCount; e++ {
		if e.String() == s {
			return e, nil
		}
	}
	return ElementUnknown, fmt.Errorf("invalid building element: %q", s)
}
