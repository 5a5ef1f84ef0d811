package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tbeam-mesh/pacool/internal/bridge"
)

const bridgeSubsystem = "transmit"

type BridgeCollector struct {
	bridge *bridge.TransmitBridge

	events         *prometheus.Desc
	transmitting   *prometheus.Desc
	ledWriteErrors *prometheus.Desc
}

func NewBridgeCollector(b *bridge.TransmitBridge) *BridgeCollector {
	return &BridgeCollector{
		bridge: b,
		events: prometheus.NewDesc(prometheus.BuildFQName(namespace, bridgeSubsystem, "events_total"),
			"Number of transmit lifecycle events",
			[]string{"event"}, nil,
		),
		transmitting: prometheus.NewDesc(prometheus.BuildFQName(namespace, bridgeSubsystem, "active"),
			"1 while the radio is transmitting",
			nil, nil,
		),
		ledWriteErrors: prometheus.NewDesc(prometheus.BuildFQName(namespace, bridgeSubsystem, "led_write_errors_total"),
			"Number of failed writes to the TX LED pin",
			nil, nil,
		),
	}
}

func (collector *BridgeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.events
	ch <- collector.transmitting
	ch <- collector.ledWriteErrors
}

// Collect implements required collect function for all prometheus collectors
func (collector *BridgeCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.bridge.Statistics()
	ch <- prometheus.MustNewConstMetric(collector.events, prometheus.CounterValue, float64(stats.Begins), "begin")
	ch <- prometheus.MustNewConstMetric(collector.events, prometheus.CounterValue, float64(stats.Ends), "end")
	ch <- prometheus.MustNewConstMetric(collector.transmitting, prometheus.GaugeValue, boolToFloat(stats.Transmitting))
	ch <- prometheus.MustNewConstMetric(collector.ledWriteErrors, prometheus.CounterValue, float64(stats.LedWriteErrors))
}
