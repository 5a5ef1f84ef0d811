// Package bridge connects the transmit lifecycle of the radio to the fan
// controller and the TX LED.
package bridge

import (
	"sync"

	"github.com/tbeam-mesh/pacool/internal/board"
	"github.com/tbeam-mesh/pacool/internal/hal"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

// Activator is notified whenever a transmission starts
type Activator interface {
	RequestActivation()
}

type TransmitListener interface {
	OnTransmitBegin()
	OnTransmitEnd()
}

type Statistics struct {
	Begins         uint64 `json:"begins"`
	Ends           uint64 `json:"ends"`
	LedWriteErrors uint64 `json:"ledWriteErrors"`
	Transmitting   bool   `json:"transmitting"`
}

type TransmitBridge struct {
	activator Activator
	gpio      hal.DigitalOutput

	ledPin       int
	ledActiveLow bool

	mu         sync.Mutex
	statistics Statistics
}

func NewTransmitBridge(activator Activator, gpio hal.DigitalOutput, profile *board.Profile) *TransmitBridge {
	return &TransmitBridge{
		activator:    activator,
		gpio:         gpio,
		ledPin:       profile.TxLedPin,
		ledActiveLow: profile.TxLedActiveLow,
	}
}

// Init switches the TX LED off
func (b *TransmitBridge) Init() error {
	if b.ledPin < 0 {
		return nil
	}
	return b.gpio.ConfigureOutput(b.ledPin, b.ledLevel(false))
}

func (b *TransmitBridge) OnTransmitBegin() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.statistics.Begins++
	b.statistics.Transmitting = true
	b.setLed(true)
	if b.activator != nil {
		b.activator.RequestActivation()
	}
}

// OnTransmitEnd only switches the LED off, the fan cools down on its own timer
func (b *TransmitBridge) OnTransmitEnd() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.statistics.Ends++
	b.statistics.Transmitting = false
	b.setLed(false)
}

func (b *TransmitBridge) Statistics() Statistics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statistics
}

func (b *TransmitBridge) setLed(on bool) {
	if b.ledPin < 0 {
		return
	}
	err := b.gpio.SetDigitalOutput(b.ledPin, b.ledLevel(on))
	if err != nil {
		b.statistics.LedWriteErrors++
		ui.Warning("Unable to switch TX LED on pin %d: %v", b.ledPin, err)
	}
}

func (b *TransmitBridge) ledLevel(on bool) hal.Level {
	return hal.Level(on != b.ledActiveLow)
}
