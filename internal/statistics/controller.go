package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tbeam-mesh/pacool/internal/controller"
)

const controllerSubsystem = "fan"

type ControllerCollector struct {
	controller controller.FanController
	board      string

	running           *prometheus.Desc
	temperature       *prometheus.Desc
	temperatureMax    *prometheus.Desc
	temperatureAvg    *prometheus.Desc
	failSafe          *prometheus.Desc
	consecutiveFaults *prometheus.Desc

	polls           *prometheus.Desc
	sensorFaults    *prometheus.Desc
	transitions     *prometheus.Desc
	activations     *prometheus.Desc
	thresholdTrips  *prometheus.Desc
	gpioWrites      *prometheus.Desc
	gpioWriteErrors *prometheus.Desc
	onTime          *prometheus.Desc
}

func newControllerDesc(name string, help string, labels ...string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, name),
		help,
		append([]string{"board"}, labels...), nil,
	)
}

func NewControllerCollector(c controller.FanController, board string) *ControllerCollector {
	return &ControllerCollector{
		controller:        c,
		board:             board,
		running:           newControllerDesc("running", "1 if the fan is currently running"),
		temperature:       newControllerDesc("temperature_celsius", "Last valid PA temperature reading"),
		temperatureMax:    newControllerDesc("temperature_window_max_celsius", "Max of the recent PA temperature readings"),
		temperatureAvg:    newControllerDesc("temperature_window_avg_celsius", "Average of the recent PA temperature readings"),
		failSafe:          newControllerDesc("fail_safe", "1 if the fan is forced on due to consecutive sensor faults"),
		consecutiveFaults: newControllerDesc("consecutive_sensor_faults", "Number of sensor faults since the last valid reading"),
		polls:             newControllerDesc("polls_total", "Number of threshold evaluations"),
		sensorFaults:      newControllerDesc("sensor_faults_total", "Number of temperature readings which could not be used"),
		transitions:       newControllerDesc("transitions_total", "Number of fan state changes", "state"),
		activations:       newControllerDesc("activations_total", "Number of post-transmit activations"),
		thresholdTrips:    newControllerDesc("threshold_trips_total", "Number of times the high threshold was reached"),
		gpioWrites:        newControllerDesc("gpio_writes_total", "Number of writes to the fan pin"),
		gpioWriteErrors:   newControllerDesc("gpio_write_errors_total", "Number of failed writes to the fan pin"),
		onTime:            newControllerDesc("on_seconds_total", "Time the fan was running since start"),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.running
	ch <- collector.temperature
	ch <- collector.temperatureMax
	ch <- collector.temperatureAvg
	ch <- collector.failSafe
	ch <- collector.consecutiveFaults
	ch <- collector.polls
	ch <- collector.sensorFaults
	ch <- collector.transitions
	ch <- collector.activations
	ch <- collector.thresholdTrips
	ch <- collector.gpioWrites
	ch <- collector.gpioWriteErrors
	ch <- collector.onTime
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	status := collector.controller.Status()
	stats := status.Statistics
	board := collector.board

	ch <- prometheus.MustNewConstMetric(collector.running, prometheus.GaugeValue, boolToFloat(bool(status.State)), board)
	if status.Temperature != nil {
		ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, *status.Temperature, board)
		ch <- prometheus.MustNewConstMetric(collector.temperatureMax, prometheus.GaugeValue, *status.WindowMax, board)
		ch <- prometheus.MustNewConstMetric(collector.temperatureAvg, prometheus.GaugeValue, *status.WindowAvg, board)
	}
	ch <- prometheus.MustNewConstMetric(collector.failSafe, prometheus.GaugeValue, boolToFloat(status.FailSafeOn), board)
	ch <- prometheus.MustNewConstMetric(collector.consecutiveFaults, prometheus.GaugeValue, float64(status.ConsecutiveFaults), board)

	ch <- prometheus.MustNewConstMetric(collector.polls, prometheus.CounterValue, float64(stats.Polls), board)
	ch <- prometheus.MustNewConstMetric(collector.sensorFaults, prometheus.CounterValue, float64(stats.SensorFaults), board)
	ch <- prometheus.MustNewConstMetric(collector.transitions, prometheus.CounterValue, float64(stats.TransitionsOn), board, "on")
	ch <- prometheus.MustNewConstMetric(collector.transitions, prometheus.CounterValue, float64(stats.TransitionsOff), board, "off")
	ch <- prometheus.MustNewConstMetric(collector.activations, prometheus.CounterValue, float64(stats.Activations), board)
	ch <- prometheus.MustNewConstMetric(collector.thresholdTrips, prometheus.CounterValue, float64(stats.ThresholdTrips), board)
	ch <- prometheus.MustNewConstMetric(collector.gpioWrites, prometheus.CounterValue, float64(stats.GpioWrites), board)
	ch <- prometheus.MustNewConstMetric(collector.gpioWriteErrors, prometheus.CounterValue, float64(stats.GpioWriteErrors), board)
	ch <- prometheus.MustNewConstMetric(collector.onTime, prometheus.CounterValue, float64(stats.OnTimeMillis)/1000, board)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
