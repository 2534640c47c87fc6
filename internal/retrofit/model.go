// Package retrofit applies fabric interventions and their costs to fitted
// lumped-parameter building models. All transforms are pure: inputs are
// consumed by value and returned updated, never mutated in place.
package retrofit

import "fmt"

// ThermalModelResult is the lumped-parameter summary produced by the model
// fitting pipeline for one building.
type ThermalModelResult struct {
	ScaleFactor float64 // dimensionless size proxy used by the cost model
	ACH         float64 // fitted air changes per hour
	UValue      float64 // fitted whole-building W/(m²·K)
	BoilerPower float64 // W
	Setpoint    float64 // °C
	DHWUsage    float64 // kWh/day domestic hot water
}

func (r ThermalModelResult) validate() error {
	if r.UValue <= 0 {
		return fmt.Errorf("%w: u-value %v", ErrNonPhysicalModel, r.UValue)
	}
	if r.ACH <= 0 {
		return fmt.Errorf("%w: ach %v", ErrNonPhysicalModel, r.ACH)
	}
	if r.ScaleFactor <= 0 {
		return fmt.Errorf("%w: scale factor %v", ErrNonPhysicalModel, r.ScaleFactor)
	}
	return nil
}

// BaitAndModelCoefs carries the weather-regression coefficients fitted
// upstream. The intervention transforms touch only the heating load; the
// remaining coefficients pass through unchanged.
type BaitAndModelCoefs struct {
	HeatingKWh  float64 // annual space-heating load
	BaseLoadKWh float64 // annual non-heating load
	Smoothing   float64 // regression smoothing factor
}

func (c BaitAndModelCoefs) validate() error {
	if c.HeatingKWh < 0 {
		return fmt.Errorf("%w: heating load %v", ErrNonPhysicalModel, c.HeatingKWh)
	}
	return nil
}
