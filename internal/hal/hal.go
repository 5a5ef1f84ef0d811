// Package hal contains the platform adapters the thermal management needs:
// a monotonic millisecond clock, an ADC and digital outputs.
package hal

import "fmt"

// Level is the logic level of a digital output
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Int returns 1 for High and 0 for Low
func (l Level) Int() int {
	if l {
		return 1
	}
	return 0
}

// Clock is a monotonic millisecond counter. The counter is 32 bit wide and
// wraps around after ~49.7 days, so durations must always be computed using
// unsigned subtraction: elapsed := now - then.
type Clock interface {
	Millis() uint32
}

type AnalogInput interface {
	// ReadADC returns the raw sample of the given channel
	ReadADC(pin int) (int, error)
}

type DigitalOutput interface {
	// ConfigureOutput switches the pin to output mode, driving the given level
	ConfigureOutput(pin int, level Level) error
	// SetDigitalOutput drives the given level on an output pin
	SetDigitalOutput(pin int, level Level) error
}

// Elapsed returns the milliseconds between since and now, correct across one
// wraparound of the counter.
func Elapsed(now uint32, since uint32) uint32 {
	return now - since
}

func invalidPinError(pin int) error {
	return fmt.Errorf("invalid pin: %d", pin)
}
