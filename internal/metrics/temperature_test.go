package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/mdsim/internal/md"
)

func TestMeanTemperature(t *testing.T) {
	m := NewMeanTemperature()
	for _, temp := range []float64{100, 110, 120} {
		m.Observe(md.Sample{Temperature: temp})
	}
	if m.Value() != 110 {
		t.Errorf("expected 110, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestTemperatureRMSD(t *testing.T) {
	m := NewTemperatureRMSD(100)
	m.Observe(md.Sample{Temperature: 103})
	m.Observe(md.Sample{Temperature: 96})

	want := math.Sqrt((9.0 + 16.0) / 2)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, m.Value())
	}

	m.Reset()
	m.SetTarget(96)
	m.Observe(md.Sample{Temperature: 96})
	if m.Value() != 0 {
		t.Errorf("expected zero deviation at the new target, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	s := NewStability(100, 0.1)
	if s.Value() != 1 {
		t.Error("no samples counts as stable")
	}
	for _, temp := range []float64{95, 105, 120, 100} {
		s.Observe(md.Sample{Temperature: temp})
	}
	if s.Value() != 0.75 {
		t.Errorf("expected 0.75, got %f", s.Value())
	}
}

func TestStandard(t *testing.T) {
	names := func(ms []md.Metric) map[string]bool {
		out := make(map[string]bool)
		for _, m := range ms {
			out[m.Name()] = true
		}
		return out
	}

	nvt := names(Standard(300))
	for _, want := range []string{"mean_temperature", "temperature_rmsd", "energy_drift", "temperature_stability"} {
		if !nvt[want] {
			t.Errorf("missing metric %s", want)
		}
	}
	if names(Standard(0))["temperature_rmsd"] {
		t.Error("rmsd needs a target")
	}

	for _, m := range Standard(300) {
		if _, ok := m.(Targeted); ok && m.Name() == "mean_temperature" {
			t.Error("mean temperature does not track a target")
		}
	}
}
