package thermal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tbeam-mesh/pacool/internal/configuration"
)

func createThermalConfig() configuration.ThermalConfig {
	return configuration.ThermalConfig{
		SeriesResistor:     10000,
		NominalResistance:  10000,
		NominalTemperature: 25,
		BCoefficient:       3950,
		AdcMax:             4095,
		ReferenceVoltage:   3.3,
		High:               45,
		Low:                40,
		ValidRange: configuration.TemperatureRange{
			Min: -55,
			Max: 150,
		},
	}
}

func TestReadTemperatureCelsius_ZeroSampleIsFault(t *testing.T) {
	// GIVEN
	config := createThermalConfig()

	// WHEN
	_, err := ReadTemperatureCelsius(0, config)

	// THEN
	assert.Error(t, err)
	assert.True(t, IsSensorFault(err))
}

func TestReadTemperatureCelsius_OutOfRange(t *testing.T) {
	// GIVEN
	config := createThermalConfig()

	for _, sample := range []int{-1, config.AdcMax + 1, 100000} {
		// WHEN
		_, err := ReadTemperatureCelsius(sample, config)

		// THEN
		assert.True(t, IsSensorFault(err), "sample %d", sample)
	}
}

func TestReadTemperatureCelsius_NominalAtMidScale(t *testing.T) {
	// GIVEN
	config := createThermalConfig()
	config.AdcMax = 4000

	// WHEN
	result, err := ReadTemperatureCelsius(2000, config)

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 25.0, result, 0.000001)
}

func TestReadTemperatureCelsius_FiniteOverWholeRange(t *testing.T) {
	// GIVEN
	config := createThermalConfig()

	for sample := 1; sample <= config.AdcMax; sample++ {
		// WHEN
		result, err := ReadTemperatureCelsius(sample, config)

		// THEN
		if !assert.NoError(t, err, "sample %d", sample) {
			return
		}
		assert.False(t, math.IsNaN(result) || math.IsInf(result, 0), "sample %d", sample)
	}
}

func TestReadTemperatureCelsius_Monotonic(t *testing.T) {
	// GIVEN
	config := createThermalConfig()
	last := math.Inf(-1)

	for sample := 1; sample < config.AdcMax; sample++ {
		// WHEN
		result, err := ReadTemperatureCelsius(sample, config)

		// THEN
		assert.NoError(t, err)
		assert.Greater(t, result, last, "sample %d", sample)
		last = result
	}
}

func TestSampleForTemperature_RoundTrip(t *testing.T) {
	// GIVEN
	config := createThermalConfig()

	for _, celsius := range []float64{-10, 0, 25, 39.5, 40, 45, 60, 85} {
		// WHEN
		sample := SampleForTemperature(celsius, config)
		result, err := ReadTemperatureCelsius(sample, config)

		// THEN
		assert.NoError(t, err)
		assert.InDelta(t, celsius, result, 0.2, "temperature %.1f", celsius)
	}
}

func TestSampleForTemperature_Clamped(t *testing.T) {
	// GIVEN
	config := createThermalConfig()

	// WHEN
	hot := SampleForTemperature(10000, config)
	cold := SampleForTemperature(-273, config)

	// THEN
	assert.LessOrEqual(t, hot, config.AdcMax)
	assert.GreaterOrEqual(t, cold, 0)
}

func TestCurve(t *testing.T) {
	// GIVEN
	config := createThermalConfig()

	// WHEN
	result := Curve(config, 512)

	// THEN
	_, zeroPresent := result[0]
	assert.False(t, zeroPresent)
	assert.Contains(t, result, 512)
	assert.Contains(t, result, 3584)
	assert.Len(t, result, 7)
}
