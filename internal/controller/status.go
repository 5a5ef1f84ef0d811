package controller

import (
	"time"

	"github.com/tbeam-mesh/pacool/internal/hal"
)

type FanState bool

const (
	FanOff FanState = false
	FanOn  FanState = true
)

func (s FanState) String() string {
	if s {
		return "ON"
	}
	return "OFF"
}

func (s FanState) Level() hal.Level {
	return hal.Level(s)
}

type Statistics struct {
	Polls           uint64 `json:"polls"`
	SensorFaults    uint64 `json:"sensorFaults"`
	TransitionsOn   uint64 `json:"transitionsOn"`
	TransitionsOff  uint64 `json:"transitionsOff"`
	Activations     uint64 `json:"activations"`
	ThresholdTrips  uint64 `json:"thresholdTrips"`
	GpioWrites      uint64 `json:"gpioWrites"`
	GpioWriteErrors uint64 `json:"gpioWriteErrors"`
	OnTimeMillis    uint64 `json:"onTimeMillis"`
}

// Status is a point in time copy of the controller state
type Status struct {
	Pin         int      `json:"pin"`
	State       FanState `json:"running"`
	ThresholdOn bool     `json:"thresholdOn"`
	TimedOn     bool     `json:"timedOn"`
	FailSafeOn  bool     `json:"failSafeOn"`

	// Temperature is the last valid reading in °C, nil before the first one
	Temperature *float64 `json:"temperature"`
	WindowMax   *float64 `json:"windowMax"`
	WindowAvg   *float64 `json:"windowAvg"`

	TimedRemaining time.Duration `json:"timedRemaining"`

	LastFault         string `json:"lastFault,omitempty"`
	ConsecutiveFaults int    `json:"consecutiveFaults"`

	Statistics Statistics `json:"statistics"`
}
