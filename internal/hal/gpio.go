package hal

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/ui"
	"github.com/tbeam-mesh/pacool/internal/util"
)

func NewDigitalOutput(config configuration.GpioConfig) (DigitalOutput, error) {
	if config.File != nil {
		return &FileDigitalOutput{
			Config: *config.File,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdDigitalOutput{
			Config: *config.Cmd,
		}, nil
	}

	if config.Memory != nil {
		return NewMemoryDigitalOutput(), nil
	}

	return nil, fmt.Errorf("no matching gpio type")
}

// FileDigitalOutput drives pins through the sysfs gpio interface
type FileDigitalOutput struct {
	Config configuration.FileGpioConfig
}

func (g *FileDigitalOutput) ConfigureOutput(pin int, level Level) error {
	if pin < 0 {
		return invalidPinError(pin)
	}
	if len(g.Config.DirectionPath) <= 0 {
		return g.SetDigitalOutput(pin, level)
	}

	directionPath, err := util.ExpandPath(substitutePin(g.Config.DirectionPath, pin))
	if err != nil {
		return err
	}
	// "high" and "low" switch to output and set the initial value without a glitch
	return util.WriteStringToFile(level.String(), directionPath)
}

func (g *FileDigitalOutput) SetDigitalOutput(pin int, level Level) error {
	if pin < 0 {
		return invalidPinError(pin)
	}
	valuePath, err := util.ExpandPath(substitutePin(g.Config.ValuePath, pin))
	if err != nil {
		return err
	}
	if g.Config.Atomic {
		return util.WriteIntToFileAtomic(level.Int(), valuePath)
	}
	return util.WriteIntToFile(level.Int(), valuePath)
}

// CmdDigitalOutput runs an executable to drive a pin
type CmdDigitalOutput struct {
	Config configuration.CmdGpioConfig
}

func (g *CmdDigitalOutput) ConfigureOutput(pin int, level Level) error {
	return g.SetDigitalOutput(pin, level)
}

func (g *CmdDigitalOutput) SetDigitalOutput(pin int, level Level) error {
	if pin < 0 {
		return invalidPinError(pin)
	}
	var args []string
	for _, arg := range g.Config.Args {
		arg = substitutePin(arg, pin)
		arg = strings.ReplaceAll(arg, "%l", strconv.Itoa(level.Int()))
		args = append(args, arg)
	}

	_, err := util.SafeCmdExecution(g.Config.Exec, args, cmdTimeout)
	if err != nil {
		return fmt.Errorf("gpio %d: %w", pin, err)
	}
	return nil
}

// MemoryDigitalOutput only remembers the levels, useful for dry runs
type MemoryDigitalOutput struct {
	mu     sync.Mutex
	levels map[int]Level
}

func NewMemoryDigitalOutput() *MemoryDigitalOutput {
	return &MemoryDigitalOutput{
		levels: map[int]Level{},
	}
}

func (g *MemoryDigitalOutput) ConfigureOutput(pin int, level Level) error {
	ui.Debug("GPIO %d: configured as output (%s)", pin, level)
	return g.SetDigitalOutput(pin, level)
}

func (g *MemoryDigitalOutput) SetDigitalOutput(pin int, level Level) error {
	if pin < 0 {
		return invalidPinError(pin)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.levels[pin] = level
	ui.Debug("GPIO %d: %s", pin, level)
	return nil
}

// Level returns the last level driven on the given pin
func (g *MemoryDigitalOutput) Level(pin int) (Level, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	level, ok := g.levels[pin]
	return level, ok
}
