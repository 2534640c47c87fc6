package thermal

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

// solverStep is the interpolation timestep. Envelope time constants sit in
// the 10³–10⁴ s range, so a minute keeps the implicit update well resolved.
const solverStep = time.Minute

// InterpolateHeatingPower solves the network's time-stepped thermal balance
// for the total heating energy, in joules, required to hold InternalAir at
// internalTemp over dt with ExternalAir fixed at externalTemp and the
// envelope thermal masses engaged from a cold start. The result is negative:
// it is the energy the building sheds and the heating system must replace.
//
// maxHeatPower is the radiator nameplate applied to the heating-system link;
// it sets the radiator temperature required to deliver each step's demand
// (flow = setpoint + ΔT·p/P) and leaves the delivered energy unchanged, so
// totals agree across any realistic nameplate. Zero selects the default
// boiler rating.
func InterpolateHeatingPower(g *CompleteNetwork, internalTemp, externalTemp float64, dt time.Duration, maxHeatPower float64) (float64, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeStep, dt)
	}
	if maxHeatPower < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPower, maxHeatPower)
	}
	if maxHeatPower == 0 {
		maxHeatPower = DefaultBoilerPower
	}

	net := g.net
	internal := net.Node(InternalAir)
	external := net.Node(ExternalAir)
	heating := net.Node(HeatingSystem)
	internal.Temperature = internalTemp
	external.Temperature = externalTemp

	// Gather the lumped state: one first-order node per envelope element,
	// plus the constant ventilation drain and free-gains credit.
	type state struct {
		node        *Node
		capacity    float64 // J/K
		conductance float64 // W/K
	}
	var states []state
	var ventRate, gains float64
	var radiator ThermalRadiativeLink

	for _, e := range net.edges {
		switch link := e.Link.(type) {
		case ConductiveLink:
			far := net.Node(e.V)
			if e.V == InternalAir {
				far = net.Node(e.U)
			}
			far.Temperature = externalTemp
			states = append(states, state{
				node:        far,
				capacity:    far.ThermalMass,
				conductance: link.HeatTransfer * link.InterfaceArea,
			})
		case ConvectiveLink:
			ventRate = link.ACH * internal.ThermalMass * (internalTemp - externalTemp) / 3600
		case RadiativeLink:
			gains = link.Power
		case ThermalRadiativeLink:
			radiator = link
		}
	}

	step := func(lu *mat.LU, rhs, next *mat.VecDense, h float64) float64 {
		net.resetEnergy()
		for i, s := range states {
			rhs.SetVec(i, s.capacity/h*s.node.Temperature+s.conductance*internalTemp)
		}
		if err := lu.SolveVecTo(next, false, rhs); err != nil {
			panic("thermal: singular transient system")
		}

		// Implicit flux into each envelope mass equals its stored change.
		var fabric float64
		for i, s := range states {
			t := next.AtVec(i)
			absorbed := s.capacity * (t - s.node.Temperature)
			s.node.Temperature = t
			s.node.EnergyChange += absorbed
			fabric += absorbed
		}

		vent := ventRate * h
		free := gains * h
		internal.EnergyChange += free - fabric - vent
		external.EnergyChange += vent - free

		demand := fabric + vent - free

		// The radiator replaces the step's demand; its required temperature
		// scales inversely with the nameplate.
		required := demand / h
		heating.Temperature = internalTemp + radiator.DeltaT*required/maxHeatPower
		heating.EnergyChange -= demand
		internal.EnergyChange += demand

		return demand
	}

	buildLU := func(h float64) *mat.LU {
		system := mat.NewDense(len(states), len(states), nil)
		for i, s := range states {
			system.Set(i, i, s.capacity/h+s.conductance)
		}
		var lu mat.LU
		lu.Factorize(system)
		return &lu
	}

	rhs := mat.NewVecDense(len(states), nil)
	next := mat.NewVecDense(len(states), nil)

	var total float64
	full := int(dt / solverStep)
	if full > 0 {
		lu := buildLU(solverStep.Seconds())
		for k := 0; k < full; k++ {
			total += step(lu, rhs, next, solverStep.Seconds())
		}
	}
	if rem := dt - time.Duration(full)*solverStep; rem > 0 {
		total += step(buildLU(rem.Seconds()), rhs, next, rem.Seconds())
	}

	return -total, nil
}
