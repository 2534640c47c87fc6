package thermal

import "time"

// Node holds the mutable per-simulation state of one thermal node. Nodes are
// owned by a HeatNetwork; the calculators set boundary temperatures before a
// pass and reset EnergyChange at the start of every solver step.
type Node struct {
	Temperature  float64 // °C
	EnergyChange float64 // J accumulated over the current step
	ThermalMass  float64 // J/K, may be +Inf for boundary/reference nodes
}

// Link is a stateless heat-transfer model between two nodes. Step returns the
// energy moved over dt and accumulates it into both nodes: the returned value
// is subtracted from u's EnergyChange and added to v's, so multiple incident
// links sum correctly within one timestep.
type Link interface {
	Step(u, v *Node, dt time.Duration) float64
}

func accumulate(u, v *Node, energy float64) float64 {
	u.EnergyChange -= energy
	v.EnergyChange += energy
	return energy
}

// ConductiveLink models conduction through a fabric element with a fixed
// U-value and interface area.
type ConductiveLink struct {
	InterfaceArea float64 // m²
	HeatTransfer  float64 // W/(m²·K)
}

func (l ConductiveLink) Step(u, v *Node, dt time.Duration) float64 {
	energy := l.HeatTransfer * l.InterfaceArea * (v.Temperature - u.Temperature) * dt.Seconds()
	return accumulate(u, v, energy)
}

// ConvectiveLink models air exchange at a given rate of air changes per hour.
// Air leaves u and is replaced at v's temperature, so only u's thermal mass
// enters the exchange.
type ConvectiveLink struct {
	ACH float64
}

func (l ConvectiveLink) Step(u, v *Node, dt time.Duration) float64 {
	energy := l.ACH * u.ThermalMass * (v.Temperature - u.Temperature) * (dt.Seconds() / 3600)
	return accumulate(u, v, energy)
}

// RadiativeLink delivers a constant power from u to v regardless of either
// temperature. A negative power reverses the direction.
type RadiativeLink struct {
	Power float64 // W
}

func (l RadiativeLink) Step(u, v *Node, dt time.Duration) float64 {
	return accumulate(u, v, l.Power*dt.Seconds())
}

// DefaultRadiatorDeltaT is the design temperature difference at which a
// radiator delivers its nameplate power.
const DefaultRadiatorDeltaT = 50.0

// ThermalRadiativeLink models a radiator: it delivers exactly Power when u
// runs DeltaT degrees above v and scales linearly otherwise.
type ThermalRadiativeLink struct {
	Power  float64 // W at design conditions
	DeltaT float64 // K
}

// NewThermalRadiativeLink builds a radiator link with the default design
// temperature difference.
func NewThermalRadiativeLink(power float64) ThermalRadiativeLink {
	return ThermalRadiativeLink{Power: power, DeltaT: DefaultRadiatorDeltaT}
}

func (l ThermalRadiativeLink) Step(u, v *Node, dt time.Duration) float64 {
	energy := l.Power * (u.Temperature - v.Temperature) / l.DeltaT * dt.Seconds()
	return accumulate(u, v, energy)
}
