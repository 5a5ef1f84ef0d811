package hal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/util"
)

const cmdTimeout = 2 * time.Second

func NewAnalogInput(config configuration.AdcConfig) (AnalogInput, error) {
	if config.File != nil {
		return &FileAnalogInput{
			Config: *config.File,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdAnalogInput{
			Config: *config.Cmd,
		}, nil
	}

	if config.Static != nil {
		return &StaticAnalogInput{
			Value: config.Static.Value,
		}, nil
	}

	return nil, fmt.Errorf("no matching adc type")
}

// FileAnalogInput reads raw samples from files, f.ex. the IIO sysfs interface
type FileAnalogInput struct {
	Config configuration.FileAdcConfig
}

func (a *FileAnalogInput) ReadADC(pin int) (int, error) {
	if pin < 0 {
		return 0, invalidPinError(pin)
	}
	filePath, err := util.ExpandPath(substitutePin(a.Config.Path, pin))
	if err != nil {
		return 0, err
	}
	return util.ReadIntFromFile(filePath)
}

// CmdAnalogInput runs an executable and parses its output as the raw sample
type CmdAnalogInput struct {
	Config configuration.CmdAdcConfig
}

func (a *CmdAnalogInput) ReadADC(pin int) (int, error) {
	if pin < 0 {
		return 0, invalidPinError(pin)
	}
	var args []string
	for _, arg := range a.Config.Args {
		args = append(args, substitutePin(arg, pin))
	}

	result, err := util.SafeCmdExecution(a.Config.Exec, args, cmdTimeout)
	if err != nil {
		return 0, fmt.Errorf("adc channel %d: %w", pin, err)
	}

	value, err := strconv.Atoi(result)
	if err != nil {
		return 0, fmt.Errorf("adc channel %d: unable to parse command output '%s'", pin, result)
	}
	return value, nil
}

// StaticAnalogInput always returns the same sample
type StaticAnalogInput struct {
	Value int
}

func (a *StaticAnalogInput) ReadADC(pin int) (int, error) {
	return a.Value, nil
}

func substitutePin(template string, pin int) string {
	return strings.ReplaceAll(template, "%d", strconv.Itoa(pin))
}
