package persistence

import (
	"time"

	"github.com/tbeam-mesh/pacool/internal/controller"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

// FanUsage is wear bookkeeping of a fan over the lifetime of the node
type FanUsage struct {
	OnTimeMillis   uint64    `json:"onTimeMillis"`
	Activations    uint64    `json:"activations"`
	ThresholdTrips uint64    `json:"thresholdTrips"`
	SensorFaults   uint64    `json:"sensorFaults"`
	Starts         uint64    `json:"starts"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u FanUsage) Add(other FanUsage) FanUsage {
	u.OnTimeMillis += other.OnTimeMillis
	u.Activations += other.Activations
	u.ThresholdTrips += other.ThresholdTrips
	u.SensorFaults += other.SensorFaults
	u.Starts += other.Starts
	return u
}

func (u FanUsage) OnTime() time.Duration {
	return time.Duration(u.OnTimeMillis) * time.Millisecond
}

func (u FanUsage) IsZero() bool {
	return u.OnTimeMillis == 0 && u.Activations == 0 && u.ThresholdTrips == 0 && u.SensorFaults == 0 && u.Starts == 0
}

func usageOf(statistics controller.Statistics) FanUsage {
	return FanUsage{
		OnTimeMillis:   statistics.OnTimeMillis,
		Activations:    statistics.Activations,
		ThresholdTrips: statistics.ThresholdTrips,
		SensorFaults:   statistics.SensorFaults,
		Starts:         statistics.TransitionsOn,
	}
}

func difference(current FanUsage, last FanUsage) FanUsage {
	return FanUsage{
		OnTimeMillis:   current.OnTimeMillis - last.OnTimeMillis,
		Activations:    current.Activations - last.Activations,
		ThresholdTrips: current.ThresholdTrips - last.ThresholdTrips,
		SensorFaults:   current.SensorFaults - last.SensorFaults,
		Starts:         current.Starts - last.Starts,
	}
}

// Ledger adds the growth of the controller statistics since the last flush
// to the stored totals. The controller never reads them back.
type Ledger struct {
	persistence Persistence
	key         string
	last        FanUsage
}

func NewLedger(persistence Persistence, key string) *Ledger {
	return &Ledger{
		persistence: persistence,
		key:         key,
	}
}

func (l *Ledger) Flush(statistics controller.Statistics) error {
	current := usageOf(statistics)
	delta := difference(current, l.last)
	if delta.IsZero() {
		return nil
	}

	total, err := l.persistence.AddFanUsage(l.key, delta)
	if err != nil {
		return err
	}
	l.last = current
	ui.Debug("Fan usage of %s: %s on, %d starts, %d activations", l.key, total.OnTime(), total.Starts, total.Activations)
	return nil
}
