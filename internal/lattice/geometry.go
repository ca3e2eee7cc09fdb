package lattice

import (
	"fmt"
	"math"

	"github.com/san-kum/mdsim/internal/md"
	"gonum.org/v1/gonum/spatial/r3"
)

// Degrees90 is a right angle in radians.
const Degrees90 = math.Pi / 2

// sinEpsilon bounds |sin(gamma)| below which the cell is treated as flat.
const sinEpsilon = 1e-12

// Geometry is a triclinic unit cell: edge lengths in Angstroms and
// interaxial angles in radians.
type Geometry struct {
	A, B, C            float64
	Alpha, Beta, Gamma float64
}

// Cubic returns the geometry of a cubic cell with edge length.
func Cubic(length float64) Geometry {
	return Geometry{
		A: length, B: length, C: length,
		Alpha: Degrees90, Beta: Degrees90, Gamma: Degrees90,
	}
}

// Validate reports ErrInvalidGeometry for non-positive lengths, angles
// outside (0, pi), or angle combinations without a real unit cell.
func (g Geometry) Validate() error {
	_, err := BravaisVectors(g)
	return err
}

// Bravais holds the three cell edge vectors.
type Bravais struct {
	A, B, C r3.Vec
}

// BravaisVectors places A along x, B in the xy-plane at gamma from A, and C
// by the standard crystallographic decomposition.
func BravaisVectors(g Geometry) (Bravais, error) {
	for _, l := range []struct {
		name string
		v    float64
	}{{"a", g.A}, {"b", g.B}, {"c", g.C}} {
		if !(l.v > 0) || math.IsInf(l.v, 0) {
			return Bravais{}, fmt.Errorf("%w: length %s = %g must be positive", md.ErrInvalidGeometry, l.name, l.v)
		}
	}
	for _, a := range []struct {
		name string
		v    float64
	}{{"alpha", g.Alpha}, {"beta", g.Beta}, {"gamma", g.Gamma}} {
		if !(a.v > 0 && a.v < math.Pi) {
			return Bravais{}, fmt.Errorf("%w: angle %s = %g outside (0, pi)", md.ErrInvalidGeometry, a.name, a.v)
		}
	}

	sinGamma, cosGamma := math.Sincos(g.Gamma)
	if math.Abs(sinGamma) < sinEpsilon {
		return Bravais{}, fmt.Errorf("%w: sin(gamma) is zero", md.ErrInvalidGeometry)
	}

	cx := math.Cos(g.Beta)
	cy := (math.Cos(g.Alpha) - cosGamma*cx) / sinGamma
	radicand := 1.0 - cx*cx - cy*cy
	if radicand < 0 {
		return Bravais{}, fmt.Errorf("%w: angles (%g, %g, %g) give no real c_z (1 - cx^2 - cy^2 = %g)",
			md.ErrInvalidGeometry, g.Alpha, g.Beta, g.Gamma, radicand)
	}
	cz := math.Sqrt(radicand)

	return Bravais{
		A: r3.Vec{X: g.A},
		B: r3.Scale(g.B, r3.Vec{X: cosGamma, Y: sinGamma}),
		C: r3.Scale(g.C, r3.Vec{X: cx, Y: cy, Z: cz}),
	}, nil
}

// At returns i*A + j*B + k*C.
func (b Bravais) At(i, j, k int) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(float64(i), b.A), r3.Scale(float64(j), b.B)), r3.Scale(float64(k), b.C))
}

// Volume returns the unit cell volume |A . (B x C)|.
func (b Bravais) Volume() float64 {
	return math.Abs(r3.Dot(b.A, r3.Cross(b.B, b.C)))
}
