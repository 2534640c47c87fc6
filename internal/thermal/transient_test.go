package thermal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolateHeatingPowerReferenceDay(t *testing.T) {
	net := referenceNetwork(t)
	energy, err := InterpolateHeatingPower(net, referenceInternalTemp, referenceExternalTemp, 24*time.Hour, DefaultBoilerPower)
	require.NoError(t, err)

	avg := energy / (24 * time.Hour).Seconds()
	assert.InDelta(t, -5597.59, avg, 0.05)

	// Well below the static worst case: the cold envelope charges early in
	// the day and the free gains offset part of the demand throughout.
	static := CalculateMaximumStaticHeatLoss(net, referenceInternalTemp, referenceExternalTemp)
	assert.Greater(t, avg, static)
	assert.Less(t, avg, 0.0)
}

func TestInterpolateHeatingPowerNameplateInvariant(t *testing.T) {
	// The nameplate sets the radiator temperature needed per step, not the
	// delivered energy, so totals agree across any realistic rating.
	var baseline float64
	for i, power := range []float64{1e3, 5e3, 1e4, 5e4, 1e5} {
		net := referenceNetwork(t)
		energy, err := InterpolateHeatingPower(net, referenceInternalTemp, referenceExternalTemp, 24*time.Hour, power)
		require.NoError(t, err)
		if i == 0 {
			baseline = energy
			continue
		}
		assert.InDelta(t, baseline, energy, 1e-6, "nameplate %v", power)
	}
}

func TestInterpolateHeatingPowerZeroSelectsDefault(t *testing.T) {
	explicit, err := InterpolateHeatingPower(referenceNetwork(t), referenceInternalTemp, referenceExternalTemp, time.Hour, DefaultBoilerPower)
	require.NoError(t, err)
	implied, err := InterpolateHeatingPower(referenceNetwork(t), referenceInternalTemp, referenceExternalTemp, time.Hour, 0)
	require.NoError(t, err)
	assert.Equal(t, explicit, implied)
}

func TestInterpolateHeatingPowerBalancesInternalAir(t *testing.T) {
	net := referenceNetwork(t)
	_, err := InterpolateHeatingPower(net, referenceInternalTemp, referenceExternalTemp, 6*time.Hour, DefaultBoilerPower)
	require.NoError(t, err)

	// Every step the radiator replaces exactly what the zone sheds.
	assert.InDelta(t, 0, net.Network().Node(InternalAir).EnergyChange, 1.0)
}

func TestInterpolateHeatingPowerRadiatorTemperature(t *testing.T) {
	net := referenceNetwork(t)
	_, err := InterpolateHeatingPower(net, referenceInternalTemp, referenceExternalTemp, 24*time.Hour, DefaultBoilerPower)
	require.NoError(t, err)

	// Holding the setpoint against a net loss needs a radiator above it.
	heatingTemp := net.Network().Node(HeatingSystem).Temperature
	assert.Greater(t, heatingTemp, referenceInternalTemp)

	// An undersized emitter needs a hotter flow for the same demand.
	small := referenceNetwork(t)
	_, err = InterpolateHeatingPower(small, referenceInternalTemp, referenceExternalTemp, 24*time.Hour, 1e3)
	require.NoError(t, err)
	assert.Greater(t, small.Network().Node(HeatingSystem).Temperature, heatingTemp)
}

func TestInterpolateHeatingPowerTrends(t *testing.T) {
	net := referenceNetwork(t)
	day, err := InterpolateHeatingPower(net, referenceInternalTemp, referenceExternalTemp, 24*time.Hour, DefaultBoilerPower)
	require.NoError(t, err)

	colder, err := InterpolateHeatingPower(referenceNetwork(t), referenceInternalTemp, referenceExternalTemp-5, 24*time.Hour, DefaultBoilerPower)
	require.NoError(t, err)
	assert.Less(t, colder, day, "colder weather must increase the day's demand")

	halfDay, err := InterpolateHeatingPower(referenceNetwork(t), referenceInternalTemp, referenceExternalTemp, 12*time.Hour, DefaultBoilerPower)
	require.NoError(t, err)
	assert.Less(t, day, halfDay, "a longer window must demand more energy")
}

func TestInterpolateHeatingPowerPartialStep(t *testing.T) {
	// Windows that are not a whole number of solver steps still integrate.
	energy, err := InterpolateHeatingPower(referenceNetwork(t), referenceInternalTemp, referenceExternalTemp, 90*time.Second, DefaultBoilerPower)
	require.NoError(t, err)
	assert.Less(t, energy, 0.0)

	short, err := InterpolateHeatingPower(referenceNetwork(t), referenceInternalTemp, referenceExternalTemp, 30*time.Second, DefaultBoilerPower)
	require.NoError(t, err)
	assert.Less(t, short, 0.0)
	assert.Less(t, energy, short)
}

func TestInterpolateHeatingPowerInvalidInputs(t *testing.T) {
	net := referenceNetwork(t)

	_, err := InterpolateHeatingPower(net, referenceInternalTemp, referenceExternalTemp, 0, DefaultBoilerPower)
	require.ErrorIs(t, err, ErrInvalidTimeStep)

	_, err = InterpolateHeatingPower(net, referenceInternalTemp, referenceExternalTemp, -time.Hour, DefaultBoilerPower)
	require.ErrorIs(t, err, ErrInvalidTimeStep)

	_, err = InterpolateHeatingPower(net, referenceInternalTemp, referenceExternalTemp, time.Hour, -100)
	require.ErrorIs(t, err, ErrInvalidPower)
}
