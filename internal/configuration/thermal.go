package configuration

import "time"

// ThermalConfig describes the thermistor divider in front of the PA and the
// temperature thresholds the fan reacts to. It is loaded once at startup.
type ThermalConfig struct {
	// SeriesResistor is the fixed resistor of the voltage divider in ohm
	SeriesResistor float64 `json:"seriesResistor"`
	// NominalResistance is the thermistor resistance at NominalTemperature in ohm
	NominalResistance float64 `json:"nominalResistance"`
	// NominalTemperature in °C, usually 25
	NominalTemperature float64 `json:"nominalTemperature"`
	BCoefficient       float64 `json:"bCoefficient"`

	// AdcMax is the full scale value of the ADC (4095 for 12 bit)
	AdcMax           int     `json:"adcMax"`
	ReferenceVoltage float64 `json:"referenceVoltage"`

	// High is the temperature at (or above) which the fan is switched on
	High float64 `json:"high"`
	// Low is the temperature at (or below) which the fan is switched off again
	Low float64 `json:"low"`

	// RunDuration is how long the fan keeps running after a transmission started
	RunDuration time.Duration `json:"runDuration"`

	ValidRange TemperatureRange `json:"validRange"`
}

// TemperatureRange bounds plausible readings, anything outside is treated as
// an open or shorted thermistor.
type TemperatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r TemperatureRange) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}
