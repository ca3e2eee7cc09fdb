// Package energy computes the thermodynamic observables of a particle set:
// kinetic energy, pairwise potential energy and instantaneous temperature.
package energy

import (
	"fmt"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/units"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kinetic returns the instantaneous kinetic energy in kcal/mol as
// KineticConversion * sum(m_i * |v_i|).
func Kinetic(velocities []r3.Vec, masses []float64) (float64, error) {
	if err := md.CheckAligned(velocities, masses); err != nil {
		return 0, err
	}
	return units.KineticConversion * floats.Dot(masses, Speeds(velocities)), nil
}

// Temperature returns 2/(3 kB) * KineticConversion * mean(m_i * |v_i|).
func Temperature(velocities []r3.Vec, masses []float64) (float64, error) {
	if err := md.CheckAligned(velocities, masses); err != nil {
		return 0, err
	}
	if len(masses) == 0 {
		return 0, fmt.Errorf("%w: temperature of an empty system", md.ErrInvalidInput)
	}
	mean := floats.Dot(masses, Speeds(velocities)) / float64(len(masses))
	return 2.0 / (3.0 * units.KBoltzmann) * units.KineticConversion * mean, nil
}

// Potential returns half the entrywise L1 norm of a pairwise potential matrix.
func Potential(pairwise [][]float64) float64 {
	total := 0.0
	for _, row := range pairwise {
		total += floats.Norm(row, 1)
	}
	return total / 2.0
}

// PairMatrix evaluates pot for every pair of positions. The result is
// symmetric with a zero diagonal.
func PairMatrix(positions []r3.Vec, pot md.Potential) [][]float64 {
	n := len(positions)
	u := make([][]float64, n)
	for i := range u {
		u[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := pot(r3.Norm(r3.Sub(positions[i], positions[j])))
			u[i][j] = v
			u[j][i] = v
		}
	}
	return u
}

// Speeds returns the Euclidean norm of each velocity.
func Speeds(velocities []r3.Vec) []float64 {
	s := make([]float64, len(velocities))
	for i, v := range velocities {
		s[i] = r3.Norm(v)
	}
	return s
}

// Observe computes the sample of a system at the given step and time.
func Observe(sys *md.System, pot md.Potential, step int, t float64) (md.Sample, error) {
	ke, err := Kinetic(sys.Velocities, sys.Masses)
	if err != nil {
		return md.Sample{}, err
	}
	temp, err := Temperature(sys.Velocities, sys.Masses)
	if err != nil {
		return md.Sample{}, err
	}
	pe := 0.0
	if pot != nil {
		pe = Potential(PairMatrix(sys.Positions, pot))
	}
	return md.Sample{Step: step, Time: t, Kinetic: ke, Potential: pe, Temperature: temp}, nil
}
