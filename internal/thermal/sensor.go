package thermal

import (
	"fmt"

	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/hal"
)

type Sensor interface {
	// ReadTemperature returns the current temperature in °C
	ReadTemperature() (float64, error)
}

// ThermistorSensor samples an NTC thermistor divider on an ADC channel
type ThermistorSensor struct {
	adc    hal.AnalogInput
	pin    int
	config configuration.ThermalConfig
}

func NewThermistorSensor(adc hal.AnalogInput, pin int, config configuration.ThermalConfig) *ThermistorSensor {
	return &ThermistorSensor{
		adc:    adc,
		pin:    pin,
		config: config,
	}
}

func (s *ThermistorSensor) ReadTemperature() (float64, error) {
	sample, err := s.adc.ReadADC(s.pin)
	if err != nil {
		return 0, &SensorFault{
			Sample: -1,
			Reason: fmt.Sprintf("unable to read adc channel %d", s.pin),
			Err:    err,
		}
	}

	celsius, err := ReadTemperatureCelsius(sample, s.config)
	if err != nil {
		return 0, err
	}

	validRange := s.config.ValidRange
	if !validRange.Contains(celsius) {
		return 0, &SensorFault{
			Sample: sample,
			Reason: fmt.Sprintf("%.1f°C is outside of [%.1f..%.1f], thermistor open or shorted?", celsius, validRange.Min, validRange.Max),
		}
	}

	return celsius, nil
}
