// Package thermal converts raw thermistor ADC samples into temperatures.
package thermal

import (
	"errors"
	"fmt"
	"math"

	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/util"
)

const kelvinOffset = 273.15

// SensorFault is returned for readings which cannot be trusted, the caller
// must not make control decisions based on them.
type SensorFault struct {
	// Sample is the raw ADC sample, or -1 if none could be read
	Sample int
	Reason string
	Err    error
}

func (f *SensorFault) Error() string {
	if f.Sample < 0 {
		return fmt.Sprintf("sensor fault: %s", f.Reason)
	}
	return fmt.Sprintf("sensor fault (sample %d): %s", f.Sample, f.Reason)
}

func (f *SensorFault) Unwrap() error {
	return f.Err
}

// IsSensorFault reports whether any error in err's chain is a SensorFault
func IsSensorFault(err error) bool {
	var fault *SensorFault
	return errors.As(err, &fault)
}

// ReadTemperatureCelsius converts a raw ADC sample of the thermistor voltage
// divider into °C using the B-parameter form of the Steinhart-Hart equation.
func ReadTemperatureCelsius(sample int, config configuration.ThermalConfig) (float64, error) {
	if sample < 0 || sample > config.AdcMax {
		return 0, &SensorFault{
			Sample: sample,
			Reason: fmt.Sprintf("sample out of range [0..%d]", config.AdcMax),
		}
	}

	voltage := float64(sample) / float64(config.AdcMax) * config.ReferenceVoltage
	if voltage <= 0 {
		// R = (Vref * Rseries) / V - Rseries is undefined for V = 0
		return 0, &SensorFault{
			Sample: sample,
			Reason: "no voltage across the divider",
		}
	}

	resistance := (config.ReferenceVoltage*config.SeriesResistor)/voltage - config.SeriesResistor

	steinhart := math.Log(resistance/config.NominalResistance) / config.BCoefficient
	steinhart += 1.0 / (config.NominalTemperature + kelvinOffset)
	celsius := 1.0/steinhart - kelvinOffset

	if math.IsNaN(celsius) || math.IsInf(celsius, 0) {
		return 0, &SensorFault{
			Sample: sample,
			Reason: fmt.Sprintf("conversion yields no finite temperature (%.0fΩ)", resistance),
		}
	}

	return celsius, nil
}

// SampleForTemperature is the inverse of ReadTemperatureCelsius, it returns the
// ADC sample which is expected for the given temperature.
func SampleForTemperature(celsius float64, config configuration.ThermalConfig) int {
	exponent := config.BCoefficient * (1.0/(celsius+kelvinOffset) - 1.0/(config.NominalTemperature+kelvinOffset))
	resistance := config.NominalResistance * math.Exp(exponent)
	voltage := config.ReferenceVoltage * config.SeriesResistor / (resistance + config.SeriesResistor)
	sample := int(math.Round(voltage / config.ReferenceVoltage * float64(config.AdcMax)))
	return util.Coerce(sample, 0, config.AdcMax)
}

// Curve evaluates every step-th sample of the ADC range, samples which cannot
// be converted are left out.
func Curve(config configuration.ThermalConfig, step int) map[int]float64 {
	step = util.Coerce(step, 1, config.AdcMax)

	result := map[int]float64{}
	for sample := 0; sample <= config.AdcMax; sample += step {
		celsius, err := ReadTemperatureCelsius(sample, config)
		if err != nil {
			continue
		}
		result[sample] = celsius
	}
	return result
}
