package configuration

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	return Configuration{
		Board: BoardTBeam1W,
		Thermal: ThermalConfig{
			SeriesResistor:     10000,
			NominalResistance:  10000,
			NominalTemperature: 25,
			BCoefficient:       3950,
			AdcMax:             4095,
			ReferenceVoltage:   3.3,
			High:               45,
			Low:                40,
			RunDuration:        5 * time.Second,
			ValidRange: TemperatureRange{
				Min: -55,
				Max: 150,
			},
		},
		Fan: FanConfig{
			PollingRate: 2 * time.Second,
			WindowSize:  10,
			Threshold:   ThresholdPolicyConfig{Enabled: true},
			Timed: TimedPolicyConfig{
				Enabled:  true,
				TickRate: 100 * time.Millisecond,
			},
			FailSafe: FailSafeConfig{FaultLimit: 3},
		},
		Hal: HalConfig{
			Adc: AdcConfig{
				Static: &StaticAdcConfig{Value: 2048},
			},
			Gpio: GpioConfig{
				Memory: &MemoryGpioConfig{},
			},
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateThresholdsInverted(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Thermal.High = 40
	config.Thermal.Low = 45

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "thermal: low threshold (45.0) must be below high threshold (40.0)")
	var configErr *ConfigurationError
	assert.True(t, errors.As(err, &configErr))
	assert.Equal(t, "thermal", configErr.Section)
}

func TestValidateThresholdsEqual(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Thermal.High = 42
	config.Thermal.Low = 42

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	var configErr *ConfigurationError
	assert.ErrorAs(t, err, &configErr)
}

func TestValidateNonPositiveResistor(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Thermal.SeriesResistor = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "thermal: seriesResistor must be > 0")
}

func TestValidateAdcMaxMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Thermal.AdcMax = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "thermal: adcMax must be > 0")
}

func TestValidateRunDurationMissingWithTimedPolicy(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Thermal.RunDuration = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "thermal: runDuration must be > 0 when the timed policy is enabled")
}

func TestValidateRunDurationMissingWithoutTimedPolicy(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Thermal.RunDuration = 0
	config.Fan.Timed.Enabled = false

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateNoPolicyEnabled(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fan.Threshold.Enabled = false
	config.Fan.Timed.Enabled = false

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan: at least one policy must be enabled, use one of: threshold | timed")
}

func TestValidatePollingRateMissing(t *testing.T) {
	for _, threshold := range []bool{true, false} {
		// GIVEN
		config := createValidConfig()
		config.Fan.Threshold.Enabled = threshold
		config.Fan.PollingRate = 0

		// WHEN
		err := validateConfig(&config, "")

		// THEN
		assert.EqualError(t, err, "fan: pollingRate must be > 0", "threshold enabled: %v", threshold)
	}
}

func TestValidateWindowSize(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Fan.WindowSize = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan: windowSize must be >= 1")
}

func TestValidateAdcSubConfigMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Hal.Adc = AdcConfig{}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "hal: sub-configuration for adc is missing, use one of: file | cmd | static")
}

func TestValidateAdcMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Hal.Adc.File = &FileAdcConfig{Path: "/sys/bus/iio/devices/iio:device0/in_voltage%d_raw"}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "hal: only one adc type can be used")
}

func TestValidateAdcFilePathWithoutPlaceholder(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Hal.Adc = AdcConfig{
		File: &FileAdcConfig{Path: "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "hal: adc file path must contain a %d placeholder for the channel")
}

func TestValidateGpioSubConfigMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Hal.Gpio = GpioConfig{}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "hal: sub-configuration for gpio is missing, use one of: file | cmd | memory")
}

func TestValidateUnknownBoard(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Board = "heltec-v3"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.ErrorContains(t, err, "board: no board definition with name 'heltec-v3' found")
}

func TestValidateCustomBoardExtendsUnknownBoard(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Boards = []BoardConfig{
		{
			Name:    "custom",
			Extends: "unknown",
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "boards: board custom: no board definition with name 'unknown' found")
}

func TestValidateCustomBoardExtendsItself(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Boards = []BoardConfig{
		{
			Name:    "custom",
			Extends: "custom",
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "boards: board custom: a board cannot extend itself")
}

func TestValidateBoardInheritanceCycle(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Boards = []BoardConfig{
		{
			Name:    "a",
			Extends: "b",
		},
		{
			Name:    "b",
			Extends: "a",
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.ErrorContains(t, err, "boards: you have created a board inheritance cycle")
}

func TestValidateDuplicateBoardName(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Boards = []BoardConfig{
		{Name: "custom", Extends: BoardTBeam1W},
		{Name: "custom", Extends: BoardTBeam1W},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "boards: duplicate board name detected: custom")
}

func TestValidateCustomBoardSelected(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	fanPin := Pin(7)
	config.Boards = []BoardConfig{
		{
			Name:       "custom",
			Extends:    BoardTBeam1W,
			FanCtrlPin: &fanPin,
		},
	}
	config.Board = "custom"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateNatsSubjectMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Radio.Nats = &NatsRadioConfig{
		Url: "nats://localhost:4222",
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "radio: nats subject is missing")
}

func TestAllBoardsCustomOverridesBuiltin(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Boards = []BoardConfig{
		{Name: BoardTBeam1W, Manufacturer: "Custom"},
	}

	// WHEN
	boards := AllBoards(&config)

	// THEN
	assert.Len(t, boards, len(BuiltinBoards))
	count := 0
	for _, b := range boards {
		if b.Name == BoardTBeam1W {
			count++
			assert.Equal(t, "Custom", b.Manufacturer)
		}
	}
	assert.Equal(t, 1, count)
}
