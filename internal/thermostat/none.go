package thermostat

import (
	"math/rand/v2"

	"github.com/san-kum/mdsim/internal/md"
	"gonum.org/v1/gonum/spatial/r3"
)

// None returns velocities unchanged.
type None struct {
	target
}

func NewNone(temperature float64) *None {
	return &None{target: target{temperature: temperature}}
}

func (n *None) Name() string { return "none" }

func (n *None) ScaleVelocities(velocities []r3.Vec, masses []float64, _ *rand.Rand) ([]r3.Vec, error) {
	if err := md.CheckAligned(velocities, masses); err != nil {
		return nil, err
	}
	return md.CloneVecs(velocities), nil
}
