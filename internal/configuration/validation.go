package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/looplab/tarjan"
	"github.com/tbeam-mesh/pacool/internal/ui"
	"github.com/tbeam-mesh/pacool/internal/util"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateThermal(config)
	if err != nil {
		return err
	}
	err = validateFan(config)
	if err != nil {
		return err
	}
	err = validateBoards(config)
	if err != nil {
		return err
	}
	err = validateHal(config)
	if err != nil {
		return err
	}
	err = validateRadio(config)
	if err != nil {
		return err
	}

	if containsCmdBackends(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return errors.New(fmt.Sprintf("config file '%s' has invalid permissions: %s", path, err))
		}
	}

	return nil
}

func containsCmdBackends(config *Configuration) bool {
	return config.Hal.Adc.Cmd != nil || config.Hal.Gpio.Cmd != nil
}

func validateThermal(config *Configuration) error {
	thermal := config.Thermal

	if thermal.SeriesResistor <= 0 {
		return newConfigurationError("thermal", "seriesResistor must be > 0")
	}
	if thermal.NominalResistance <= 0 {
		return newConfigurationError("thermal", "nominalResistance must be > 0")
	}
	if thermal.BCoefficient <= 0 {
		return newConfigurationError("thermal", "bCoefficient must be > 0")
	}
	if thermal.NominalTemperature <= -273.15 {
		return newConfigurationError("thermal", "nominalTemperature must be above absolute zero")
	}
	if thermal.AdcMax <= 0 {
		return newConfigurationError("thermal", "adcMax must be > 0")
	}
	if thermal.ReferenceVoltage <= 0 {
		return newConfigurationError("thermal", "referenceVoltage must be > 0")
	}
	if err := ValidateThresholds(thermal); err != nil {
		return err
	}
	if thermal.ValidRange.Min >= thermal.ValidRange.Max {
		return newConfigurationError("thermal", "validRange min (%.1f) must be below max (%.1f)", thermal.ValidRange.Min, thermal.ValidRange.Max)
	}
	if !thermal.ValidRange.Contains(thermal.High) || !thermal.ValidRange.Contains(thermal.Low) {
		ui.Warning("Thresholds %.1f/%.1f are outside of the valid sensor range, the threshold policy can not trigger", thermal.Low, thermal.High)
	}
	if config.Fan.Timed.Enabled && thermal.RunDuration <= 0 {
		return newConfigurationError("thermal", "runDuration must be > 0 when the timed policy is enabled")
	}
	if thermal.RunDuration.Milliseconds() > int64(^uint32(0)) {
		return newConfigurationError("thermal", "runDuration must fit into the 32 bit millisecond clock")
	}

	return nil
}

// ValidateThresholds rejects an empty or inverted hysteresis band
func ValidateThresholds(thermal ThermalConfig) error {
	if thermal.Low >= thermal.High {
		return newConfigurationError("thermal", "low threshold (%.1f) must be below high threshold (%.1f)", thermal.Low, thermal.High)
	}
	return nil
}

func validateFan(config *Configuration) error {
	fan := config.Fan

	if !fan.Threshold.Enabled && !fan.Timed.Enabled {
		return newConfigurationError("fan", "at least one policy must be enabled, use one of: threshold | timed")
	}
	if fan.PollingRate <= 0 {
		return newConfigurationError("fan", "pollingRate must be > 0")
	}
	if fan.Timed.Enabled && fan.Timed.TickRate <= 0 {
		return newConfigurationError("fan", "timed tickRate must be > 0")
	}
	if fan.WindowSize <= 0 {
		return newConfigurationError("fan", "windowSize must be >= 1")
	}
	if fan.FailSafe.FaultLimit < 0 {
		return newConfigurationError("fan", "failSafe faultLimit must be >= 0")
	}
	if fan.ResyncRate < 0 {
		return newConfigurationError("fan", "resyncRate must be >= 0")
	}

	return nil
}

func validateBoards(config *Configuration) error {
	var names []string
	for _, boardConfig := range config.Boards {
		if len(boardConfig.Name) <= 0 {
			return newConfigurationError("boards", "board name must not be empty")
		}
		for _, name := range names {
			if name == boardConfig.Name {
				return newConfigurationError("boards", "duplicate board name detected: %s", boardConfig.Name)
			}
		}
		names = append(names, boardConfig.Name)
	}

	boards := AllBoards(config)
	graph := make(map[interface{}][]interface{})
	for _, boardConfig := range boards {
		for _, p := range []*Pin{boardConfig.FanCtrlPin, boardConfig.ThermistorPin, boardConfig.TxLedPin} {
			if p != nil && *p < PinNotConnected {
				return newConfigurationError("boards", "board %s: invalid pin %d", boardConfig.Name, *p)
			}
		}

		var connections []interface{}
		if len(boardConfig.Extends) > 0 {
			if boardConfig.Extends == boardConfig.Name {
				return newConfigurationError("boards", "board %s: a board cannot extend itself", boardConfig.Name)
			}
			if !boardExists(boardConfig.Extends, boards) {
				return newConfigurationError("boards", "board %s: no board definition with name '%s' found", boardConfig.Name, boardConfig.Extends)
			}
			connections = append(connections, boardConfig.Extends)
		}
		graph[boardConfig.Name] = connections
	}

	err := validateNoLoops(graph)
	if err != nil {
		return err
	}

	if len(config.Board) <= 0 {
		return newConfigurationError("board", "no board selected")
	}
	if !boardExists(config.Board, boards) {
		var available []string
		for _, b := range boards {
			available = append(available, b.Name)
		}
		return newConfigurationError("board", "no board definition with name '%s' found, options: %s", config.Board, strings.Join(available, " | "))
	}

	return nil
}

func boardExists(name string, boards []BoardConfig) bool {
	for _, b := range boards {
		if b.Name == name {
			return true
		}
	}
	return false
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return newConfigurationError("boards", "you have created a board inheritance cycle: %v", items)
		}
	}
	return nil
}

func validateHal(config *Configuration) error {
	adc := config.Hal.Adc
	subConfigs := 0
	if adc.File != nil {
		subConfigs++
	}
	if adc.Cmd != nil {
		subConfigs++
	}
	if adc.Static != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return newConfigurationError("hal", "only one adc type can be used")
	}
	if subConfigs <= 0 {
		return newConfigurationError("hal", "sub-configuration for adc is missing, use one of: file | cmd | static")
	}
	if adc.File != nil && !strings.Contains(adc.File.Path, "%d") {
		return newConfigurationError("hal", "adc file path must contain a %%d placeholder for the channel")
	}
	if adc.Cmd != nil && len(adc.Cmd.Exec) <= 0 {
		return newConfigurationError("hal", "adc executable is missing")
	}
	if adc.Static != nil && (adc.Static.Value < 0 || adc.Static.Value > config.Thermal.AdcMax) {
		return newConfigurationError("hal", "static adc value must be within [0..%d]", config.Thermal.AdcMax)
	}

	gpio := config.Hal.Gpio
	subConfigs = 0
	if gpio.File != nil {
		subConfigs++
	}
	if gpio.Cmd != nil {
		subConfigs++
	}
	if gpio.Memory != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return newConfigurationError("hal", "only one gpio type can be used")
	}
	if subConfigs <= 0 {
		return newConfigurationError("hal", "sub-configuration for gpio is missing, use one of: file | cmd | memory")
	}
	if gpio.File != nil && !strings.Contains(gpio.File.ValuePath, "%d") {
		return newConfigurationError("hal", "gpio valuePath must contain a %%d placeholder for the pin")
	}
	if gpio.Cmd != nil && len(gpio.Cmd.Exec) <= 0 {
		return newConfigurationError("hal", "gpio executable is missing")
	}

	return nil
}

func validateRadio(config *Configuration) error {
	natsConfig := config.Radio.Nats
	if natsConfig == nil {
		return nil
	}
	if len(natsConfig.Url) <= 0 {
		return newConfigurationError("radio", "nats url is missing")
	}
	if len(natsConfig.Subject) <= 0 {
		return newConfigurationError("radio", "nats subject is missing")
	}
	return nil
}
