package thermal

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestConductiveLinkStep(t *testing.T) {
	cases := []struct {
		name string
		link ConductiveLink
		uT   float64
		vT   float64
		dt   time.Duration
		want float64
	}{
		{"flow toward colder u", ConductiveLink{InterfaceArea: 2, HeatTransfer: 0.5}, 10, 20, 2 * time.Second, 20},
		{"sign flips when swapped", ConductiveLink{InterfaceArea: 2, HeatTransfer: 0.5}, 20, 10, 2 * time.Second, -20},
		{"zero at equal temperatures", ConductiveLink{InterfaceArea: 5, HeatTransfer: 3}, 15, 15, time.Hour, 0},
		{"linear in area", ConductiveLink{InterfaceArea: 4, HeatTransfer: 0.5}, 10, 20, 2 * time.Second, 40},
		{"linear in dt", ConductiveLink{InterfaceArea: 2, HeatTransfer: 0.5}, 10, 20, 4 * time.Second, 40},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &Node{Temperature: tc.uT}
			v := &Node{Temperature: tc.vT}
			got := tc.link.Step(u, v, tc.dt)
			require.InDelta(t, tc.want, got, 1e-12)
			require.InDelta(t, -tc.want, u.EnergyChange, 1e-12)
			require.InDelta(t, tc.want, v.EnergyChange, 1e-12)
		})
	}
}

func TestConvectiveLinkStep(t *testing.T) {
	u := &Node{Temperature: 21, ThermalMass: 7200}
	v := &Node{Temperature: 11, ThermalMass: math.Inf(1)}

	// 0.5 ach over half an hour exchanges a quarter of u's mass.
	got := ConvectiveLink{ACH: 0.5}.Step(u, v, 30*time.Minute)
	require.InDelta(t, 0.5*7200*(11-21)*0.5, got, 1e-9)
	require.Equal(t, -got, u.EnergyChange)

	// Only u's thermal mass matters, infinite v included.
	u2 := &Node{Temperature: 21, ThermalMass: 7200}
	v2 := &Node{Temperature: 11, ThermalMass: 3}
	require.Equal(t, got, ConvectiveLink{ACH: 0.5}.Step(u2, v2, 30*time.Minute))
}

func TestConvectiveLinkZeroCases(t *testing.T) {
	u := &Node{Temperature: 21, ThermalMass: 7200}
	v := &Node{Temperature: 11}
	require.Zero(t, ConvectiveLink{ACH: 0}.Step(u, v, time.Hour))

	v.Temperature = 21
	require.Zero(t, ConvectiveLink{ACH: 2}.Step(u, v, time.Hour))
}

func TestRadiativeLinkStep(t *testing.T) {
	cases := []struct {
		name  string
		power float64
		uT    float64
		vT    float64
		dt    time.Duration
		want  float64
	}{
		{"independent of temperatures", 100, -40, 90, 3 * time.Second, 300},
		{"independent of temperatures again", 100, 90, -40, 3 * time.Second, 300},
		{"negative power reverses", -100, 0, 0, 3 * time.Second, -300},
		{"zero power", 0, 5, 25, time.Hour, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &Node{Temperature: tc.uT}
			v := &Node{Temperature: tc.vT}
			got := RadiativeLink{Power: tc.power}.Step(u, v, tc.dt)
			require.InDelta(t, tc.want, got, 1e-12)
			require.Equal(t, -u.EnergyChange, v.EnergyChange)
		})
	}
}

func TestThermalRadiativeLinkStep(t *testing.T) {
	link := NewThermalRadiativeLink(1000)
	require.Equal(t, DefaultRadiatorDeltaT, link.DeltaT)

	// Nameplate power exactly at the design temperature difference.
	u := &Node{Temperature: 71}
	v := &Node{Temperature: 21}
	require.InDelta(t, 1000, link.Step(u, v, time.Second), 1e-12)

	// Linear below design conditions.
	u = &Node{Temperature: 46}
	v = &Node{Temperature: 21}
	require.InDelta(t, 500, link.Step(u, v, time.Second), 1e-12)

	// Zero at equal temperatures.
	u = &Node{Temperature: 21}
	v = &Node{Temperature: 21}
	require.Zero(t, link.Step(u, v, time.Second))
}

// Every link variant must conserve energy exactly: with pre-zeroed
// accumulators, one step leaves u and v with equal and opposite changes.
func TestLinkConservation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	temp := gen.Float64Range(-50, 50)
	coeff := gen.Float64Range(0, 10)

	conserved := func(link Link, uT, vT float64) bool {
		u := &Node{Temperature: uT, ThermalMass: 5e6}
		v := &Node{Temperature: vT, ThermalMass: math.Inf(1)}
		energy := link.Step(u, v, 90*time.Second)
		return u.EnergyChange == -v.EnergyChange && v.EnergyChange == energy
	}

	properties.Property("conductive conserves", prop.ForAll(
		func(uT, vT, area, ht float64) bool {
			return conserved(ConductiveLink{InterfaceArea: area, HeatTransfer: ht}, uT, vT)
		},
		temp, temp, coeff, coeff,
	))

	properties.Property("convective conserves", prop.ForAll(
		func(uT, vT, ach float64) bool {
			return conserved(ConvectiveLink{ACH: ach}, uT, vT)
		},
		temp, temp, coeff,
	))

	properties.Property("radiative conserves", prop.ForAll(
		func(uT, vT, power float64) bool {
			return conserved(RadiativeLink{Power: power}, uT, vT)
		},
		temp, temp, gen.Float64Range(-1e4, 1e4),
	))

	properties.Property("thermal radiative conserves", prop.ForAll(
		func(uT, vT, power float64) bool {
			return conserved(NewThermalRadiativeLink(power), uT, vT)
		},
		temp, temp, gen.Float64Range(0, 1e4),
	))

	properties.TestingRun(t)
}

// Accumulators are additive: two incident links sum into the shared node.
func TestStepAccumulates(t *testing.T) {
	shared := &Node{Temperature: 20}
	a := &Node{Temperature: 30}
	b := &Node{Temperature: 10}

	link := ConductiveLink{InterfaceArea: 1, HeatTransfer: 1}
	first := link.Step(a, shared, time.Second)
	second := link.Step(b, shared, time.Second)

	require.InDelta(t, first+second, shared.EnergyChange, 1e-12)
}
