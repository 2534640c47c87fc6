package testutil

import "github.com/Elemental-Power-Ltd/epoch-thermal/internal/thermal"

// Reference-building scenario shared by test packages. Put ONLY what multiple
// test packages need here.
const (
	ReferenceInternalTemp = 21.0
	ReferenceExternalTemp = -2.3
)

// ReferenceBuilding returns the 10×10×5 m cube with 1 m² of glazing and a
// 5000 m³ air volume used as the canonical sizing scenario.
func ReferenceBuilding() *thermal.CompleteNetwork {
	net, err := thermal.CreateSimpleStructure(10, 5, 1, 100, 100, 5000)
	if err != nil {
		panic(err)
	}
	return net
}
