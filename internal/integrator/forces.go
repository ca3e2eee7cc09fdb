package integrator

import (
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/potential"
	"github.com/san-kum/mdsim/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
)

// Accelerations returns the pair-force accelerations in Angstrom/ps^2 for
// every particle. A nil potential exerts no force.
func Accelerations(positions []r3.Vec, masses []float64, pot md.Potential) []r3.Vec {
	acc := make([]r3.Vec, len(positions))
	if pot == nil {
		return acc
	}
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			d := r3.Sub(positions[i], positions[j])
			r := r3.Norm(d)
			if r == 0 {
				continue
			}
			f := r3.Scale(-potential.Derivative(pot, r)/r, d)
			acc[i] = r3.Add(acc[i], f)
			acc[j] = r3.Sub(acc[j], f)
		}
	}
	for i, m := range masses {
		acc[i] = r3.Scale(units.AccelConversion/m, acc[i])
	}
	return acc
}
