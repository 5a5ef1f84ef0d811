package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Pin is a GPIO or ADC channel number.
type Pin int

// PinNotConnected marks a pin which does not exist on a board.
const PinNotConnected Pin = -1

// pinHookFunc returns a mapstructure decode hook that accepts pins written as
// plain numbers, as strings ("41", "GPIO41", "IO41") or as "NC".
func pinHookFunc() mapstructure.DecodeHookFuncType {
	pinType := reflect.TypeOf(Pin(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != pinType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return ParsePin(v)
		case int:
			return Pin(v), nil
		case float64:
			return Pin(int(v)), nil
		}
		return data, nil
	}
}

// ParsePin parses the textual representation of a pin.
func ParsePin(text string) (Pin, error) {
	value := strings.ToUpper(strings.TrimSpace(text))
	if value == "NC" || value == "" {
		return PinNotConnected, nil
	}
	for _, prefix := range []string{"GPIO", "IO"} {
		if strings.HasPrefix(value, prefix) {
			value = strings.TrimPrefix(value, prefix)
			break
		}
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		return PinNotConnected, fmt.Errorf("invalid pin '%s'", text)
	}
	if number < int(PinNotConnected) {
		return PinNotConnected, fmt.Errorf("invalid pin '%s'", text)
	}
	return Pin(number), nil
}
