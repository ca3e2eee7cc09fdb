// Package metrics accumulates scalar summaries of a run from its samples.
package metrics

import "github.com/san-kum/mdsim/internal/md"

// Targeted is a metric measured against a target temperature that may move
// during a run.
type Targeted interface {
	md.Metric
	SetTarget(target float64)
}

// Standard returns the metrics recorded for every run. Target-relative
// metrics are omitted when target is zero.
func Standard(target float64) []md.Metric {
	ms := []md.Metric{
		NewMeanTemperature(),
		NewMeanEnergy(),
		NewEnergyDrift(),
	}
	if target > 0 {
		ms = append(ms, NewTemperatureRMSD(target), NewStability(target, 0.1))
	}
	return ms
}
