package thermostat

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/san-kum/mdsim/internal/energy"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxwellBoltzmann draws initial velocities with each component from
// Normal(0, sqrt(kB*T/m)) and rescales them so that energy.Temperature
// reports exactly temperature. A zero temperature gives a system at rest.
func MaxwellBoltzmann(masses []float64, temperature float64, rnd *rand.Rand) ([]r3.Vec, error) {
	if err := md.CheckMasses(masses); err != nil {
		return nil, err
	}
	if !(temperature >= 0) || math.IsInf(temperature, 1) {
		return nil, fmt.Errorf("%w: temperature must be finite and non-negative, got %g", md.ErrInvalidInput, temperature)
	}
	v := make([]r3.Vec, len(masses))
	if temperature == 0 || len(masses) == 0 {
		return v, nil
	}
	for i, m := range masses {
		d := distuv.Normal{Mu: 0, Sigma: math.Sqrt(units.KBoltzmann * temperature / m), Src: rnd}
		v[i] = r3.Vec{X: d.Rand(), Y: d.Rand(), Z: d.Rand()}
	}
	current, err := energy.Temperature(v, masses)
	if err != nil {
		return nil, err
	}
	if current == 0 {
		return v, nil
	}
	scale := temperature / current
	for i := range v {
		v[i] = r3.Scale(scale, v[i])
	}
	return v, nil
}
