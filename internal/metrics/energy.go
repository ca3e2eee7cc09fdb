package metrics

import (
	"math"

	"github.com/san-kum/mdsim/internal/md"
)

type MeanEnergy struct {
	name    string
	total   float64
	samples int
}

func NewMeanEnergy() *MeanEnergy {
	return &MeanEnergy{name: "mean_energy"}
}

func (e *MeanEnergy) Name() string { return e.name }

func (e *MeanEnergy) Observe(s md.Sample) {
	e.total += s.Total()
	e.samples++
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *MeanEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift is the largest relative departure of kinetic plus potential
// energy from its first observed value.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s md.Sample) {
	energy := s.Total()
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
