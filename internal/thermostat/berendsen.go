package thermostat

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/mdsim/internal/energy"
	"github.com/san-kum/mdsim/internal/md"
	"gonum.org/v1/gonum/spatial/r3"
)

// Berendsen couples the system weakly to a bath with relaxation time tau.
// Each call scales every velocity by 1 + dt/tau (T0/T - 1). Temperature is
// linear in speed, so tau == dt lands exactly on the target.
type Berendsen struct {
	target
	timeStep float64
	tau      float64
}

func NewBerendsen(temperature, timeStep, tau float64) (*Berendsen, error) {
	if err := checkTemperature(temperature); err != nil {
		return nil, err
	}
	if err := checkTimeStep(timeStep); err != nil {
		return nil, err
	}
	if !(tau >= timeStep) {
		return nil, fmt.Errorf("%w: tau %g must not be shorter than the time step %g", md.ErrInvalidInput, tau, timeStep)
	}
	return &Berendsen{target: target{temperature: temperature}, timeStep: timeStep, tau: tau}, nil
}

func (b *Berendsen) Name() string { return "berendsen" }

func (b *Berendsen) Tau() float64 { return b.tau }

// Lambda returns the scale factor applied at the current temperature.
func (b *Berendsen) Lambda(current float64) float64 {
	return 1 + b.timeStep/b.tau*(b.temperature/current-1)
}

// ScaleVelocities leaves a system at rest unchanged.
func (b *Berendsen) ScaleVelocities(velocities []r3.Vec, masses []float64, _ *rand.Rand) ([]r3.Vec, error) {
	if err := md.CheckAligned(velocities, masses); err != nil {
		return nil, err
	}
	out := md.CloneVecs(velocities)
	if len(out) == 0 {
		return out, nil
	}
	current, err := energy.Temperature(velocities, masses)
	if err != nil {
		return nil, err
	}
	if current == 0 {
		return out, nil
	}
	lambda := b.Lambda(current)
	for i, v := range out {
		out[i] = r3.Scale(lambda, v)
	}
	return out, nil
}
