package util

import "github.com/asecurityteam/rolling"

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// GetWindowMax returns the max of the first samples values in the window.
// A PointPolicy fills its buckets in order and starts out with zeros, so
// samples must be the number of values appended so far (capped at the size).
func GetWindowMax(window *rolling.PointPolicy, samples int) float64 {
	return window.Reduce(filled(samples, rolling.Max))
}

// GetWindowAvg returns the average of the first samples values in the window
func GetWindowAvg(window *rolling.PointPolicy, samples int) float64 {
	return window.Reduce(filled(samples, rolling.Avg))
}

func filled(samples int, reduce func(rolling.Window) float64) func(rolling.Window) float64 {
	return func(w rolling.Window) float64 {
		if samples >= 0 && samples < len(w) {
			w = w[:samples]
		}
		return reduce(w)
	}
}
