package internal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/persistence"
)

func createConfig(t *testing.T) *configuration.Configuration {
	return &configuration.Configuration{
		DbPath: filepath.Join(t.TempDir(), "pacool.db"),
		Board:  configuration.BoardTBeam1W,
		Thermal: configuration.ThermalConfig{
			SeriesResistor:     10000,
			NominalResistance:  10000,
			NominalTemperature: 25,
			BCoefficient:       3950,
			AdcMax:             4095,
			ReferenceVoltage:   3.3,
			High:               45,
			Low:                40,
			RunDuration:        30 * time.Second,
			ValidRange:         configuration.TemperatureRange{Min: -55, Max: 150},
		},
		Fan: configuration.FanConfig{
			PollingRate: 10 * time.Millisecond,
			WindowSize:  30,
			ShutdownOn:  true,
			Threshold:   configuration.ThresholdPolicyConfig{Enabled: true},
			Timed: configuration.TimedPolicyConfig{
				Enabled:  true,
				TickRate: 10 * time.Millisecond,
			},
			FailSafe: configuration.FailSafeConfig{FaultLimit: 3},
		},
		Hal: configuration.HalConfig{
			Adc: configuration.AdcConfig{
				// ~25°C
				Static: &configuration.StaticAdcConfig{Value: 2048},
			},
			Gpio: configuration.GpioConfig{
				Memory: &configuration.MemoryGpioConfig{},
			},
		},
	}
}

func TestNewDaemon(t *testing.T) {
	// GIVEN
	config := createConfig(t)

	// WHEN
	daemon, err := NewDaemon(config)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 41, daemon.Profile.FanCtrlPin)
	assert.False(t, daemon.Controller.IsFanRunning())
}

func TestNewDaemon_BoardWithoutFan(t *testing.T) {
	// GIVEN
	config := createConfig(t)
	config.Board = configuration.BoardTBeamSupreme

	// WHEN
	_, err := NewDaemon(config)

	// THEN
	assert.ErrorIs(t, err, ErrNoFan)
}

func TestNewDaemon_UnknownBoard(t *testing.T) {
	// GIVEN
	config := createConfig(t)
	config.Board = "unknown"

	// WHEN
	_, err := NewDaemon(config)

	// THEN
	assert.Error(t, err)
}

func TestDaemon_RunAndShutdown(t *testing.T) {
	// GIVEN
	config := createConfig(t)
	daemon, err := NewDaemon(config)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- daemon.Run(ctx)
	}()

	// WHEN
	daemon.Bridge.OnTransmitBegin()

	// THEN
	assert.Eventually(t, daemon.Controller.IsFanRunning, time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)

	// WHEN
	err = daemon.Shutdown()

	// THEN
	assert.NoError(t, err)
	assert.True(t, daemon.Controller.IsFanRunning())

	usage, err := persistence.NewPersistence(config.DbPath).LoadFanUsage(configuration.BoardTBeam1W)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, usage.Activations)
	assert.EqualValues(t, 1, usage.Starts)
}
