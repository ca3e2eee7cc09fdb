package thermostat

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/mdsim/internal/md"
	"gonum.org/v1/gonum/spatial/r3"
)

// Thermostat adjusts velocities toward a target temperature. Stochastic
// strategies draw from rnd and reject a nil stream with md.ErrInvalidInput;
// deterministic ones ignore it.
type Thermostat interface {
	Name() string
	Temperature() float64
	SetTemperature(t float64) error
	ScaleVelocities(velocities []r3.Vec, masses []float64, rnd *rand.Rand) ([]r3.Vec, error)
}

// target is the target-temperature state shared by every strategy.
type target struct {
	temperature float64
}

func (t *target) Temperature() float64 { return t.temperature }

// SetTemperature takes effect on the next ScaleVelocities call.
func (t *target) SetTemperature(temp float64) error {
	if err := checkTemperature(temp); err != nil {
		return err
	}
	t.temperature = temp
	return nil
}

func checkTemperature(temp float64) error {
	if !(temp > 0) {
		return fmt.Errorf("%w: temperature must be positive, got %g", md.ErrInvalidInput, temp)
	}
	return nil
}

func checkTimeStep(dt float64) error {
	if !(dt > 0) {
		return fmt.Errorf("%w: time step must be positive, got %g", md.ErrInvalidInput, dt)
	}
	return nil
}
