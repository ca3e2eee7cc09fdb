// Package liquid packs particles at random into a box sized for a target
// mass density.
package liquid

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

type Liquid struct {
	Density   float64  // g/ml
	Mass      float64  // g/mol
	Boundary  r3.Vec   // box edge lengths in Angstroms after rescaling
	Positions []r3.Vec
}

// New counts the particles the nominal boundary holds at the given density,
// rescales the boundary so those particles give exactly that density, and
// places them uniformly inside it.
func New(density, mass float64, boundary r3.Vec, rnd *rand.Rand) (*Liquid, error) {
	if !(density > 0) || !(mass > 0) {
		return nil, fmt.Errorf("%w: density %g and mass %g must be positive", md.ErrInvalidInput, density, mass)
	}
	if !(boundary.X > 0) || !(boundary.Y > 0) || !(boundary.Z > 0) {
		return nil, fmt.Errorf("%w: boundary %v must be positive", md.ErrInvalidInput, boundary)
	}

	nominal := volume(boundary)
	n := ParticleCount(density, mass, nominal)
	if n == 0 {
		return nil, fmt.Errorf("%w: boundary %v holds no particles at density %g", md.ErrInvalidInput, boundary, density)
	}

	target := float64(n) * mass / (density * units.Angstrom3InCm3 * units.NAvogadro)
	scaled := r3.Scale(math.Cbrt(target/nominal), boundary)

	l := &Liquid{Density: density, Mass: mass, Boundary: scaled, Positions: make([]r3.Vec, n)}
	x := distuv.Uniform{Min: 0, Max: scaled.X, Src: rnd}
	y := distuv.Uniform{Min: 0, Max: scaled.Y, Src: rnd}
	z := distuv.Uniform{Min: 0, Max: scaled.Z, Src: rnd}
	for i := range l.Positions {
		l.Positions[i] = r3.Vec{X: x.Rand(), Y: y.Rand(), Z: z.Rand()}
	}
	return l, nil
}

// ParticleCount is the whole number of particles of the given molar mass
// in vol cubic Angstroms at density g/ml.
func ParticleCount(density, mass, vol float64) int {
	return int(density * units.Angstrom3InCm3 / mass * units.NAvogadro * vol)
}

func (l *Liquid) Len() int { return len(l.Positions) }

func (l *Liquid) Volume() float64 { return volume(l.Boundary) }

func (l *Liquid) Box() r3.Box {
	return r3.Box{Max: l.Boundary}
}

// PairwiseDistances returns the condensed distance vector: entry for (i, j)
// with i < j, row-major.
func (l *Liquid) PairwiseDistances() []float64 {
	n := len(l.Positions)
	d := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d = append(d, r3.Norm(r3.Sub(l.Positions[i], l.Positions[j])))
		}
	}
	return d
}

func volume(b r3.Vec) float64 { return b.X * b.Y * b.Z }
