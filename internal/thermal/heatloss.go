package thermal

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// prepareBoundary pins InternalAir to the setpoint and drags every other
// non-heating node down to the external temperature, the gains-free worst
// case of an envelope with no residual warmth.
func prepareBoundary(net *HeatNetwork, internalTemp, externalTemp float64) {
	net.resetEnergy()
	for e := ExternalAir; e < elementCount; e++ {
		node := net.Node(e)
		if node == nil || e == HeatingSystem {
			continue
		}
		if e == InternalAir {
			node.Temperature = internalTemp
		} else {
			node.Temperature = externalTemp
		}
	}
}

func isHeatingEdge(e Edge) bool {
	return e.U == HeatingSystem || e.V == HeatingSystem
}

func isGainsEdge(e Edge) bool {
	_, ok := e.Link.(RadiativeLink)
	return ok
}

// CalculateMaximumStaticHeatLoss returns the worst-case steady-state heat
// flow at InternalAir in watts, negative when heat leaves the building. The
// heating system and the free-gains link are excluded: this is the no-gains
// figure used for boiler and heat-pump sizing.
func CalculateMaximumStaticHeatLoss(g Structured, internalTemp, externalTemp float64) float64 {
	net := g.network()
	prepareBoundary(net, internalTemp, externalTemp)

	var total float64
	for _, e := range net.edges {
		if isHeatingEdge(e) || isGainsEdge(e) {
			continue
		}
		total += e.Link.Step(net.Node(e.U), net.Node(e.V), time.Second)
	}
	return total
}

// CalculateMaximumStaticHeatLossBreakdown runs the same pass as
// CalculateMaximumStaticHeatLoss but keeps the per-edge contributions, keyed
// by the element on the far side of InternalAir. Ventilation appears under
// ExternalAir.
func CalculateMaximumStaticHeatLossBreakdown(g Structured, internalTemp, externalTemp float64) map[BuildingElement]float64 {
	net := g.network()
	prepareBoundary(net, internalTemp, externalTemp)

	breakdown := make(map[BuildingElement]float64)
	for _, e := range net.edges {
		if isHeatingEdge(e) || isGainsEdge(e) {
			continue
		}
		far := e.V
		if far == InternalAir {
			far = e.U
		}
		breakdown[far] += e.Link.Step(net.Node(e.U), net.Node(e.V), time.Second)
	}
	return breakdown
}

// CalculateMaximumDynamicHeatLoss refines the static figure by letting every
// envelope node float between inside and outside through a split-conductance
// pair and crediting the free-gains link. The envelope temperatures come
// from a small linear system solved with gonum. For realistic buildings the
// result is strictly smaller in magnitude than the static figure and strictly
// larger than half of it.
func CalculateMaximumDynamicHeatLoss(g Structured, internalTemp, externalTemp float64) float64 {
	net := g.network()
	prepareBoundary(net, internalTemp, externalTemp)

	// One unknown temperature per envelope element reached from InternalAir.
	type envelope struct {
		element     BuildingElement
		conductance float64 // W/K, whole-assembly U·A
	}
	var envelopes []envelope
	var total float64

	for _, e := range net.edges {
		if isHeatingEdge(e) {
			continue
		}
		switch link := e.Link.(type) {
		case ConductiveLink:
			far := e.V
			if far == InternalAir {
				far = e.U
			}
			envelopes = append(envelopes, envelope{
				element:     far,
				conductance: link.HeatTransfer * link.InterfaceArea,
			})
		case ConvectiveLink:
			// Infiltration exchanges with outside air directly; thermal mass
			// buys no buffering here.
			total += link.Step(net.Node(e.U), net.Node(e.V), time.Second)
		case RadiativeLink:
			total += link.Power
		}
	}
	if len(envelopes) == 0 {
		return total
	}

	// Each envelope node couples to inside and outside through twice its
	// whole-assembly conductance, so the series path still measures U·A.
	n := len(envelopes)
	system := mat.NewDense(n, n, nil)
	rhs := mat.NewVecDense(n, nil)
	for i, env := range envelopes {
		system.Set(i, i, 4*env.conductance)
		rhs.SetVec(i, 2*env.conductance*(internalTemp+externalTemp))
	}

	var temps mat.VecDense
	if err := temps.SolveVec(system, rhs); err != nil {
		// Conductances are validated strictly positive at construction.
		panic("thermal: singular envelope system")
	}

	for i, env := range envelopes {
		t := temps.AtVec(i)
		net.Node(env.element).Temperature = t
		total += 2 * env.conductance * (t - internalTemp)
	}
	return total
}
