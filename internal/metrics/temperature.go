package metrics

import (
	"math"

	"github.com/san-kum/mdsim/internal/md"
)

type MeanTemperature struct {
	name    string
	sum     float64
	samples int
}

func NewMeanTemperature() *MeanTemperature {
	return &MeanTemperature{name: "mean_temperature"}
}

func (m *MeanTemperature) Name() string { return m.name }

func (m *MeanTemperature) Observe(s md.Sample) {
	m.sum += s.Temperature
	m.samples++
}

func (m *MeanTemperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanTemperature) Reset() {
	m.sum = 0
	m.samples = 0
}

// TemperatureRMSD is the root-mean-square deviation of the observed
// temperature from the thermostat target.
type TemperatureRMSD struct {
	name    string
	target  float64
	sumSq   float64
	samples int
}

func NewTemperatureRMSD(target float64) *TemperatureRMSD {
	return &TemperatureRMSD{name: "temperature_rmsd", target: target}
}

func (m *TemperatureRMSD) Name() string { return m.name }

// SetTarget applies to later observations only.
func (m *TemperatureRMSD) SetTarget(target float64) { m.target = target }

func (m *TemperatureRMSD) Observe(s md.Sample) {
	d := s.Temperature - m.target
	m.sumSq += d * d
	m.samples++
}

func (m *TemperatureRMSD) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return math.Sqrt(m.sumSq / float64(m.samples))
}

func (m *TemperatureRMSD) Reset() {
	m.sumSq = 0
	m.samples = 0
}
