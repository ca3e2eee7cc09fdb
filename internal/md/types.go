package md

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Potential is a pair potential energy in kcal/mol as a function of the
// inter-particle distance in Angstroms.
type Potential func(r float64) float64

// System holds per-particle state aligned by index.
type System struct {
	Positions  []r3.Vec
	Velocities []r3.Vec
	Masses     []float64
}

// NewSystem creates a system at rest with the given positions and masses.
func NewSystem(positions []r3.Vec, masses []float64) (*System, error) {
	s := &System{
		Positions:  CloneVecs(positions),
		Velocities: make([]r3.Vec, len(positions)),
		Masses:     append([]float64(nil), masses...),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// UniformMasses returns n copies of mass.
func UniformMasses(n int, mass float64) []float64 {
	m := make([]float64, n)
	for i := range m {
		m[i] = mass
	}
	return m
}

func (s *System) Len() int { return len(s.Masses) }

func (s *System) Clone() *System {
	return &System{
		Positions:  CloneVecs(s.Positions),
		Velocities: CloneVecs(s.Velocities),
		Masses:     append([]float64(nil), s.Masses...),
	}
}

// Validate checks index alignment and that every mass is positive.
func (s *System) Validate() error {
	if len(s.Positions) != len(s.Masses) || len(s.Velocities) != len(s.Masses) {
		return fmt.Errorf("%w: %d positions, %d velocities, %d masses",
			ErrInvalidInput, len(s.Positions), len(s.Velocities), len(s.Masses))
	}
	return CheckMasses(s.Masses)
}

// IsFinite reports whether no position or velocity component is NaN or Inf.
func (s *System) IsFinite() bool {
	return finite(s.Positions) && finite(s.Velocities)
}

// CheckAligned fails with ErrInvalidInput unless velocities and masses have
// the same length and every mass is positive.
func CheckAligned(velocities []r3.Vec, masses []float64) error {
	if len(velocities) != len(masses) {
		return fmt.Errorf("%w: %d velocities but %d masses", ErrInvalidInput, len(velocities), len(masses))
	}
	return CheckMasses(masses)
}

// CheckMasses fails with ErrInvalidInput on the first non-positive mass.
func CheckMasses(masses []float64) error {
	for i, m := range masses {
		if !(m > 0) {
			return fmt.Errorf("%w: mass[%d] = %g must be positive", ErrInvalidInput, i, m)
		}
	}
	return nil
}

func CloneVecs(v []r3.Vec) []r3.Vec {
	c := make([]r3.Vec, len(v))
	copy(c, v)
	return c
}

func finite(vs []r3.Vec) bool {
	for _, v := range vs {
		for _, x := range [3]float64{v.X, v.Y, v.Z} {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}

// Sample is the thermodynamic record of one step.
type Sample struct {
	Step        int
	Time        float64
	Kinetic     float64
	Potential   float64
	Temperature float64
}

// Total returns kinetic plus potential energy.
func (s Sample) Total() float64 { return s.Kinetic + s.Potential }

// Integrator advances a system by one time step under a pair potential.
type Integrator interface {
	Step(sys *System, pot Potential, dt float64) error
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample, sys *System)
}
