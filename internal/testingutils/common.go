package testingutils

import (
	"sync"

	"github.com/tbeam-mesh/pacool/internal/hal"
	"github.com/tbeam-mesh/pacool/internal/thermal"
)

// MockGpio records the level of every pin and counts writes
type MockGpio struct {
	mu         sync.Mutex
	levels     map[int]hal.Level
	configured map[int]bool
	writes     int
	err        error
}

func NewMockGpio() *MockGpio {
	return &MockGpio{
		levels:     map[int]hal.Level{},
		configured: map[int]bool{},
	}
}

func (g *MockGpio) ConfigureOutput(pin int, level hal.Level) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.configured[pin] = true
	g.levels[pin] = level
	return nil
}

func (g *MockGpio) SetDigitalOutput(pin int, level hal.Level) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.writes++
	if g.err != nil {
		return g.err
	}
	g.levels[pin] = level
	return nil
}

// SetError makes all following writes fail with err, nil restores them
func (g *MockGpio) SetError(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

// Preset sets a level without counting it as a write
func (g *MockGpio) Preset(pin int, level hal.Level) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.levels[pin] = level
}

func (g *MockGpio) Level(pin int) hal.Level {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levels[pin]
}

func (g *MockGpio) IsConfigured(pin int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.configured[pin]
}

// Touched reports whether the pin was ever configured or written
func (g *MockGpio) Touched(pin int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.levels[pin]
	return ok || g.configured[pin]
}

func (g *MockGpio) Writes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.writes
}

// ScriptedSensor returns the given readings in order, a nil entry is a fault
type ScriptedSensor struct {
	mu       sync.Mutex
	readings []*float64
	index    int
}

func Reading(value float64) *float64 {
	return &value
}

func NewScriptedSensor(readings ...*float64) *ScriptedSensor {
	return &ScriptedSensor{readings: readings}
}

func (s *ScriptedSensor) ReadTemperature() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index >= len(s.readings) {
		panic("no more readings")
	}
	r := s.readings[s.index]
	s.index++
	if r == nil {
		return 0, &thermal.SensorFault{Sample: 0, Reason: "no voltage across the divider"}
	}
	return *r, nil
}
