package retrofit

import "fmt"

// Intervention is an integer enum over the supported fabric measures.
type Intervention int

const (
	InterventionUnknown Intervention = iota
	Cladding
	DoubleGlazing
	Loft
)

func (i Intervention) Valid() bool {
	return i == Cladding || i == DoubleGlazing || i == Loft
}

func (i Intervention) String() string {
	switch i {
	case Cladding:
		return "cladding"
	case DoubleGlazing:
		return "double_glazing"
	case Loft:
		return "loft"
	default:
		return "unknown"
	}
}

func ParseIntervention(s string) (Intervention, error) {
	switch s {
	case "cladding":
		return Cladding, nil
	case "double_glazing":
		return DoubleGlazing, nil
	case "loft":
		return Loft, nil
	default:
		return InterventionUnknown, fmt.Errorf("%w: %q", ErrUnknownIntervention, s)
	}
}

// MinUValue is the physical floor below which no fabric measure can push a
// whole-building U-value.
const MinUValue = 0.1

// MinACH is the unavoidable background infiltration floor.
const MinACH = 0.05

// effect describes one intervention's fixed, composable impact. Factors
// multiply; the floors above clamp the result after every application.
type effect struct {
	uFactor    float64
	achFactor  float64
	heatFactor float64
	baseCost   float64 // GBP at ScaleFactor 1
}

var effects = map[Intervention]effect{
	Cladding:      {uFactor: 0.65, achFactor: 0.95, heatFactor: 0.80, baseCost: 9000},
	DoubleGlazing: {uFactor: 0.90, achFactor: 0.85, heatFactor: 0.93, baseCost: 6500},
	Loft:          {uFactor: 0.85, achFactor: 1.00, heatFactor: 0.90, baseCost: 1750},
}

func lookupEffect(iv Intervention) (effect, error) {
	eff, ok := effects[iv]
	if !ok {
		return effect{}, fmt.Errorf("%w: %v", ErrUnknownIntervention, iv)
	}
	return eff, nil
}

// ApplyThermalModelFabricInterventions returns a copy of result with each
// intervention's U-value and infiltration reductions applied in order,
// clamped at the physical floors. Once a value is at its floor, further
// interventions are no-ops for it.
func ApplyThermalModelFabricInterventions(result ThermalModelResult, interventions []Intervention) (ThermalModelResult, error) {
	if err := result.validate(); err != nil {
		return ThermalModelResult{}, err
	}
	for _, iv := range interventions {
		eff, err := lookupEffect(iv)
		if err != nil {
			return ThermalModelResult{}, err
		}
		result.UValue = max(result.UValue*eff.uFactor, MinUValue)
		result.ACH = max(result.ACH*eff.achFactor, MinACH)
	}
	return result, nil
}

// ApplyFabricInterventions is the analogous transform over the regression
// coefficients: the heating load shrinks monotonically as measures chain.
func ApplyFabricInterventions(coefs BaitAndModelCoefs, interventions []Intervention) (BaitAndModelCoefs, error) {
	if err := coefs.validate(); err != nil {
		return BaitAndModelCoefs{}, err
	}
	for _, iv := range interventions {
		eff, err := lookupEffect(iv)
		if err != nil {
			return BaitAndModelCoefs{}, err
		}
		coefs.HeatingKWh *= eff.heatFactor
	}
	return coefs, nil
}

// CalculateInterventionCosts prices an intervention package for a building:
// zero for the empty list, strictly positive otherwise, and linear in the
// model's scale factor.
func CalculateInterventionCosts(result ThermalModelResult, interventions []Intervention) (float64, error) {
	if err := result.validate(); err != nil {
		return 0, err
	}
	var cost float64
	for _, iv := range interventions {
		eff, err := lookupEffect(iv)
		if err != nil {
			return 0, err
		}
		cost += eff.baseCost * result.ScaleFactor
	}
	return cost, nil
}
