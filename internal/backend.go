package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tbeam-mesh/pacool/internal/api"
	"github.com/tbeam-mesh/pacool/internal/board"
	"github.com/tbeam-mesh/pacool/internal/bridge"
	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/controller"
	"github.com/tbeam-mesh/pacool/internal/events"
	"github.com/tbeam-mesh/pacool/internal/hal"
	"github.com/tbeam-mesh/pacool/internal/persistence"
	"github.com/tbeam-mesh/pacool/internal/statistics"
	"github.com/tbeam-mesh/pacool/internal/thermal"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

const serverShutdownTimeout = 5 * time.Second

// ErrNoFan is returned for boards without a fan, they run no thermal management
var ErrNoFan = errors.New("board has no fan")

// Daemon holds all components of a running pacool instance
type Daemon struct {
	Config     *configuration.Configuration
	Profile    *board.Profile
	Controller controller.FanController
	Bridge     *bridge.TransmitBridge
	Ledger     *persistence.Ledger
}

func RunDaemon() {
	config := &configuration.CurrentConfig
	if config.Hal.Gpio.File != nil && getProcessOwner() != "root" {
		ui.Warning("Writing sysfs gpio files usually requires root permissions")
	}

	daemon, err := NewDaemon(config)
	if errors.Is(err, ErrNoFan) {
		ui.Info("Board '%s' has no fan, nothing to control.", config.Board)
		return
	}
	if err != nil {
		ui.Fatal("Unable to initialize: %v", err)
	}

	statistics.Register(statistics.NewControllerCollector(daemon.Controller, daemon.Profile.Name))
	statistics.Register(statistics.NewBridgeCollector(daemon.Bridge))

	err = daemon.Run(context.Background())

	ui.Info("Shutting down...")
	if shutdownErr := daemon.Shutdown(); shutdownErr != nil {
		ui.Error("%v", shutdownErr)
	}

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ui.Info("Done.")
}

// NewDaemon creates and initializes all components for the configured board
func NewDaemon(config *configuration.Configuration) (*Daemon, error) {
	err := board.LoadProfiles(config)
	if err != nil {
		return nil, err
	}
	profile, err := board.Get(config.Board)
	if err != nil {
		return nil, err
	}
	if !profile.HasFan() {
		return nil, ErrNoFan
	}

	clock := hal.NewMonotonicClockWithOffset(config.Hal.ClockOffset)
	gpio, err := hal.NewDigitalOutput(config.Hal.Gpio)
	if err != nil {
		return nil, err
	}

	var sensor thermal.Sensor
	if profile.HasThermistor() {
		adc, err := hal.NewAnalogInput(config.Hal.Adc)
		if err != nil {
			return nil, err
		}
		sensor = thermal.NewThermistorSensor(adc, profile.ThermistorPin, config.Thermal)
	}

	fanController := controller.NewFanController(sensor, gpio, clock, profile.FanCtrlPin, config.Thermal, config.Fan)
	err = fanController.Init()
	if err != nil {
		return nil, err
	}

	transmitBridge := bridge.NewTransmitBridge(fanController, gpio, profile)
	err = transmitBridge.Init()
	if err != nil {
		return nil, fmt.Errorf("unable to configure TX LED pin %d: %w", profile.TxLedPin, err)
	}

	pers := persistence.NewPersistence(config.DbPath)
	err = pers.Init()
	if err != nil {
		return nil, err
	}

	ui.Info("Running on board '%s' (fan: %d, thermistor: %d, tx led: %d)",
		profile.Name, profile.FanCtrlPin, profile.ThermistorPin, profile.TxLedPin)

	return &Daemon{
		Config:     config,
		Profile:    profile,
		Controller: fanController,
		Bridge:     transmitBridge,
		Ledger:     persistence.NewLedger(pers, profile.Name),
	}, nil
}

// Run blocks until a termination signal is received, ctx is done or one of
// the components fails.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	{
		if d.Config.Statistics.Enabled {
			// === Prometheus Exporter
			port := d.Config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			addEchoServer(&g, "statistics", api.CreateWebserver(), fmt.Sprintf(":%d", port))
		}
	}
	{
		if d.Config.Api.Enabled {
			// === REST api
			rest := api.CreateRestService(api.Services{
				Controller: d.Controller,
				Bridge:     d.Bridge,
				Profile:    d.Profile,
			}, prometheus.DefaultRegisterer)
			addr := fmt.Sprintf("%s:%d", d.Config.Api.Host, d.Config.Api.Port)
			addEchoServer(&g, "api", rest, addr)
		}
	}
	{
		if d.Config.Radio.Nats != nil {
			// === transmit events
			source := events.NewNatsSource(*d.Config.Radio.Nats, d.Bridge)
			g.Add(func() error {
				return source.Run(ctx)
			}, func(err error) {
				if err != nil {
					ui.Warning("Error receiving transmit events: %v", err)
				}
			})
		}
	}
	{
		// === fan controller
		g.Add(func() error {
			err := d.Controller.Run(ctx)
			ui.Info("Fan controller stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
		})
	}
	{
		// === fan usage ledger
		flushRate := d.Config.LedgerFlushRate
		if flushRate > 0 {
			g.Add(func() error {
				tick := time.NewTicker(flushRate)
				defer tick.Stop()
				for {
					select {
					case <-ctx.Done():
						return nil
					case <-tick.C:
						d.flushLedger()
					}
				}
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	return g.Run()
}

// Shutdown leaves the fan at its configured shutdown level and persists the
// fan usage.
func (d *Daemon) Shutdown() error {
	err := d.Controller.Shutdown()
	d.flushLedger()
	return err
}

func (d *Daemon) flushLedger() {
	err := d.Ledger.Flush(d.Controller.Status().Statistics)
	if err != nil {
		ui.Warning("Unable to persist fan usage: %v", err)
	}
}

func addEchoServer(g *run.Group, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		err := server.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.Error("Cannot start %s server (%s)", name, err.Error())
			return err
		}
		return nil
	}, func(err error) {
		ui.Info("Stopping %s server...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		}
	})
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Warning("Error checking process owner: %v", err)
		return ""
	}
	return strings.TrimSpace(string(stdout))
}
