package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/hal"
	"github.com/tbeam-mesh/pacool/internal/thermal"
	"github.com/tbeam-mesh/pacool/internal/ui"
	"github.com/tbeam-mesh/pacool/internal/util"
)

// number of activations which can be queued before RequestActivation drops them
const activationQueueSize = 16

type FanController interface {
	// Init configures the fan pin as an output and switches the fan off
	Init() error
	// Poll evaluates both policies and updates the fan accordingly
	Poll()
	// Activate starts (or restarts) the post-transmit run timer
	Activate()
	// RequestActivation queues an activation, safe to call from any goroutine
	RequestActivation()
	// CheckTimer only evaluates the timed policy
	CheckTimer()
	// Resync writes the current fan level again
	Resync()
	// CurrentTemperature returns the last valid reading, false if there is none
	CurrentTemperature() (float64, bool)
	IsFanRunning() bool
	Status() Status
	// Run owns the controller until ctx is done
	Run(ctx context.Context) error
	// Shutdown drives the fan to its configured shutdown level
	Shutdown() error
}

type DefaultFanController struct {
	sensor thermal.Sensor
	gpio   hal.DigitalOutput
	clock  hal.Clock
	pin    int

	thermalConfig configuration.ThermalConfig
	fanConfig     configuration.FanConfig

	// guards everything below, Status reads it from other goroutines
	mu sync.RWMutex

	state       FanState
	thresholdOn bool
	timedOn     bool
	failSafeOn  bool
	activatedAt uint32
	onSince     uint32

	temperature       float64
	hasTemperature    bool
	window            *rolling.PointPolicy
	windowSamples     int
	lastFault         error
	consecutiveFaults int

	statistics Statistics

	activations chan struct{}
}

func NewFanController(
	sensor thermal.Sensor,
	gpio hal.DigitalOutput,
	clock hal.Clock,
	pin int,
	thermalConfig configuration.ThermalConfig,
	fanConfig configuration.FanConfig,
) *DefaultFanController {
	if sensor == nil && fanConfig.Threshold.Enabled {
		ui.Warning("No thermistor available, disabling the threshold policy")
		fanConfig.Threshold.Enabled = false
	}

	return &DefaultFanController{
		sensor:        sensor,
		gpio:          gpio,
		clock:         clock,
		pin:           pin,
		thermalConfig: thermalConfig,
		fanConfig:     fanConfig,
		state:         FanOff,
		window:        util.CreateRollingWindow(max(fanConfig.WindowSize, 1)),
		activations:   make(chan struct{}, activationQueueSize),
	}
}

func (f *DefaultFanController) Init() error {
	err := configuration.ValidateThresholds(f.thermalConfig)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = FanOff
	f.thresholdOn = false
	f.timedOn = false
	f.failSafeOn = false

	err = f.gpio.ConfigureOutput(f.pin, hal.Low)
	if err != nil {
		return fmt.Errorf("unable to configure fan pin %d as output: %w", f.pin, err)
	}
	ui.Info("Fan control initialized on pin %d", f.pin)
	return nil
}

func (f *DefaultFanController) Poll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.statistics.Polls++
	if f.fanConfig.Threshold.Enabled {
		f.updateThresholdPolicy()
	}
	now := f.clock.Millis()
	if f.fanConfig.Timed.Enabled {
		f.updateTimedPolicy(now)
	}
	f.apply(now)
}

func (f *DefaultFanController) Activate() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.fanConfig.Timed.Enabled {
		ui.Debug("Timed policy is disabled, ignoring activation")
		return
	}

	now := f.clock.Millis()
	f.timedOn = true
	f.activatedAt = now
	f.statistics.Activations++
	f.apply(now)
}

func (f *DefaultFanController) RequestActivation() {
	select {
	case f.activations <- struct{}{}:
	default:
		ui.Debug("Activation queue is full, dropping activation")
	}
}

func (f *DefaultFanController) CheckTimer() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.fanConfig.Timed.Enabled {
		return
	}
	now := f.clock.Millis()
	f.updateTimedPolicy(now)
	f.apply(now)
}

func (f *DefaultFanController) Resync() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.write(f.state)
}

func (f *DefaultFanController) CurrentTemperature() (float64, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.temperature, f.hasTemperature
}

func (f *DefaultFanController) IsFanRunning() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state == FanOn
}

func (f *DefaultFanController) Status() Status {
	f.mu.RLock()
	defer f.mu.RUnlock()

	now := f.clock.Millis()
	status := Status{
		Pin:               f.pin,
		State:             f.state,
		ThresholdOn:       f.thresholdOn,
		TimedOn:           f.timedOn,
		FailSafeOn:        f.failSafeOn,
		ConsecutiveFaults: f.consecutiveFaults,
		Statistics:        f.statistics,
	}

	if f.hasTemperature {
		temperature := f.temperature
		windowMax := util.GetWindowMax(f.window, f.windowSamples)
		windowAvg := util.GetWindowAvg(f.window, f.windowSamples)
		status.Temperature = &temperature
		status.WindowMax = &windowMax
		status.WindowAvg = &windowAvg
	}
	if f.lastFault != nil {
		status.LastFault = f.lastFault.Error()
	}
	if f.timedOn {
		elapsed := time.Duration(hal.Elapsed(now, f.activatedAt)) * time.Millisecond
		if elapsed < f.thermalConfig.RunDuration {
			status.TimedRemaining = f.thermalConfig.RunDuration - elapsed
		}
	}
	if f.state == FanOn {
		status.Statistics.OnTimeMillis += uint64(hal.Elapsed(now, f.onSince))
	}
	return status
}

func (f *DefaultFanController) Run(ctx context.Context) error {
	// the timer tick covers the timed policy, polling is only needed for the threshold
	var pollTick <-chan time.Time
	if f.fanConfig.Threshold.Enabled && f.fanConfig.PollingRate > 0 {
		pollTicker := time.NewTicker(f.fanConfig.PollingRate)
		defer pollTicker.Stop()
		pollTick = pollTicker.C
	}

	var timerTick <-chan time.Time
	if f.fanConfig.Timed.Enabled && f.fanConfig.Timed.TickRate > 0 {
		timerTicker := time.NewTicker(f.fanConfig.Timed.TickRate)
		defer timerTicker.Stop()
		timerTick = timerTicker.C
	}

	var resyncTick <-chan time.Time
	if f.fanConfig.ResyncRate > 0 {
		resyncTicker := time.NewTicker(f.fanConfig.ResyncRate)
		defer resyncTicker.Stop()
		resyncTick = resyncTicker.C
	}

	ui.Info("Starting fan controller loop")
	f.Poll()
	for {
		select {
		case <-ctx.Done():
			ui.Info("Stopping fan controller loop")
			return nil
		case <-f.activations:
			f.Activate()
		case <-timerTick:
			f.CheckTimer()
		case <-pollTick:
			f.Poll()
		case <-resyncTick:
			f.Resync()
		}
	}
}

func (f *DefaultFanController) Shutdown() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	target := FanOff
	if f.fanConfig.ShutdownOn {
		target = FanOn
	}
	f.transition(f.clock.Millis(), target)

	level := target.Level()
	ui.Info("Leaving fan %s on shutdown", target)
	err := f.gpio.SetDigitalOutput(f.pin, level)
	if err != nil {
		return fmt.Errorf("unable to set fan pin %d %s: %w", f.pin, level, err)
	}
	return nil
}

func (f *DefaultFanController) updateThresholdPolicy() {
	temperature, err := f.sensor.ReadTemperature()
	if err != nil {
		f.statistics.SensorFaults++
		f.consecutiveFaults++
		f.lastFault = err
		ui.Warning("Unable to read PA temperature: %v", err)

		limit := f.fanConfig.FailSafe.FaultLimit
		if limit > 0 && f.consecutiveFaults >= limit && !f.failSafeOn {
			ui.Error("%d consecutive sensor faults, forcing fan on", f.consecutiveFaults)
			f.failSafeOn = true
		}
		return
	}

	if f.failSafeOn {
		ui.Info("Sensor recovered at %.1f°C", temperature)
	}
	f.failSafeOn = false
	f.consecutiveFaults = 0
	f.temperature = temperature
	f.hasTemperature = true
	f.window.Append(temperature)
	f.windowSamples = min(f.windowSamples+1, max(f.fanConfig.WindowSize, 1))

	if !f.thresholdOn && temperature >= f.thermalConfig.High {
		f.thresholdOn = true
		f.statistics.ThresholdTrips++
	} else if f.thresholdOn && temperature <= f.thermalConfig.Low {
		f.thresholdOn = false
	}
}

func (f *DefaultFanController) updateTimedPolicy(now uint32) {
	if !f.timedOn {
		return
	}
	runDuration := uint32(f.thermalConfig.RunDuration.Milliseconds())
	if hal.Elapsed(now, f.activatedAt) >= runDuration {
		f.timedOn = false
	}
}

// apply writes the combined state of all policies if it changed
func (f *DefaultFanController) apply(now uint32) {
	target := FanState(f.thresholdOn || f.failSafeOn || f.timedOn)
	if target == f.state {
		return
	}
	f.transition(now, target)

	if f.hasTemperature {
		ui.Info("Fan %s at %.1f°C (%s)", target, f.temperature, f.reason())
	} else {
		ui.Info("Fan %s (%s)", target, f.reason())
	}
	f.write(target)
}

// transition updates the state and the on-time bookkeeping
func (f *DefaultFanController) transition(now uint32, target FanState) {
	if target == f.state {
		return
	}
	if target == FanOn {
		f.statistics.TransitionsOn++
		f.onSince = now
	} else {
		f.statistics.TransitionsOff++
		f.statistics.OnTimeMillis += uint64(hal.Elapsed(now, f.onSince))
	}
	f.state = target
}

func (f *DefaultFanController) write(state FanState) {
	f.statistics.GpioWrites++
	err := f.gpio.SetDigitalOutput(f.pin, state.Level())
	if err != nil {
		f.statistics.GpioWriteErrors++
		ui.Error("Unable to switch fan %s: %v", state, err)
	}
}

func (f *DefaultFanController) reason() string {
	switch {
	case f.failSafeOn:
		return "fail-safe"
	case f.thresholdOn && f.timedOn:
		return "threshold, timed"
	case f.thresholdOn:
		return "threshold"
	case f.timedOn:
		return "timed"
	default:
		return "idle"
	}
}
