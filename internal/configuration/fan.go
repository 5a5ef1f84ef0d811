package configuration

import "time"

type FanConfig struct {
	// Time interval between each threshold evaluation
	PollingRate time.Duration `json:"pollingRate"`
	// Number of readings kept for the recent max/avg diagnostics
	WindowSize int `json:"windowSize"`
	// ShutdownOn leaves the fan running when the daemon exits
	ShutdownOn bool `json:"shutdownOn"`
	// ResyncRate rewrites the current fan level periodically, 0 disables it
	ResyncRate time.Duration `json:"resyncRate"`

	Threshold ThresholdPolicyConfig `json:"threshold"`
	Timed     TimedPolicyConfig     `json:"timed"`
	FailSafe  FailSafeConfig        `json:"failSafe"`
}

type ThresholdPolicyConfig struct {
	Enabled bool `json:"enabled"`
}

type TimedPolicyConfig struct {
	Enabled bool `json:"enabled"`
	// Time interval between checks of the post-transmit run timer
	TickRate time.Duration `json:"tickRate"`
}

type FailSafeConfig struct {
	// FaultLimit is the number of consecutive sensor faults after which the
	// fan is forced on. 0 disables this.
	FaultLimit int `json:"faultLimit"`
}
