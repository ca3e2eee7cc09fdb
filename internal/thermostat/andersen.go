package thermostat

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

// ZeroSpeedPolicy decides what happens to a particle selected for a
// collision while at rest, where the rescale ratio is undefined.
type ZeroSpeedPolicy int

const (
	// ZeroSpeedSkip leaves the particle at rest.
	ZeroSpeedSkip ZeroSpeedPolicy = iota
	// ZeroSpeedError fails the call with md.ErrDegenerateVelocity.
	ZeroSpeedError
)

func (p ZeroSpeedPolicy) String() string {
	switch p {
	case ZeroSpeedSkip:
		return "skip"
	case ZeroSpeedError:
		return "error"
	default:
		return fmt.Sprintf("ZeroSpeedPolicy(%d)", int(p))
	}
}

// ParseZeroSpeedPolicy accepts "skip" (or empty) and "error".
func ParseZeroSpeedPolicy(s string) (ZeroSpeedPolicy, error) {
	switch s {
	case "", "skip":
		return ZeroSpeedSkip, nil
	case "error":
		return ZeroSpeedError, nil
	default:
		return 0, fmt.Errorf("%w: zero speed policy %q", md.ErrUnknownKind, s)
	}
}

// Andersen resamples the speed of each particle with probability
// min(1, frequency*dt) per call.
type Andersen struct {
	target
	timeStep  float64
	frequency float64
	threshold float64
	zeroSpeed ZeroSpeedPolicy
}

func NewAndersen(temperature, timeStep, frequency float64) (*Andersen, error) {
	if err := checkTemperature(temperature); err != nil {
		return nil, err
	}
	if err := checkTimeStep(timeStep); err != nil {
		return nil, err
	}
	a := &Andersen{target: target{temperature: temperature}, timeStep: timeStep}
	if err := a.SetCollisionFrequency(frequency); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Andersen) Name() string { return "andersen" }

// SetCollisionFrequency updates the frequency and recomputes the threshold
// from the stored time step.
func (a *Andersen) SetCollisionFrequency(frequency float64) error {
	if !(frequency >= 0) || math.IsInf(frequency, 1) {
		return fmt.Errorf("%w: collision frequency must be finite and non-negative, got %g", md.ErrInvalidInput, frequency)
	}
	a.frequency = frequency
	a.threshold = math.Min(1, frequency*a.timeStep)
	return nil
}

func (a *Andersen) CollisionFrequency() float64 { return a.frequency }

func (a *Andersen) TimeStep() float64 { return a.timeStep }

// Threshold is the per-step collision probability.
func (a *Andersen) Threshold() float64 { return a.threshold }

func (a *Andersen) SetZeroSpeedPolicy(p ZeroSpeedPolicy) { a.zeroSpeed = p }

func (a *Andersen) ZeroSpeedPolicy() ZeroSpeedPolicy { return a.zeroSpeed }

// ScaleVelocities draws u in [0,1) for every particle and, when u is below
// the threshold, rescales the velocity by s/|v|^2 where s is the square of a
// Normal(0, kB*T/m) sample (variance kB*T/m). Each selected particle draws
// its Gaussian before the zero-speed check, so the stream consumption does
// not depend on the velocities. A selected particle whose rescaled velocity
// is not representable is handled like one at rest. rnd must not be nil.
func (a *Andersen) ScaleVelocities(velocities []r3.Vec, masses []float64, rnd *rand.Rand) ([]r3.Vec, error) {
	if rnd == nil {
		return nil, fmt.Errorf("%w: andersen needs a random stream", md.ErrInvalidInput)
	}
	if err := md.CheckAligned(velocities, masses); err != nil {
		return nil, err
	}
	out := md.CloneVecs(velocities)
	for i, v := range velocities {
		if rnd.Float64() >= a.threshold {
			continue
		}
		bath := distuv.Normal{
			Mu:    0,
			Sigma: math.Sqrt(units.KBoltzmann * a.temperature / masses[i]),
			Src:   rnd,
		}
		sample := bath.Rand()
		scaled, ok := rescale(v, sample*sample)
		if !ok {
			if a.zeroSpeed == ZeroSpeedError {
				return nil, fmt.Errorf("%w: particle %d selected with speed %g", md.ErrDegenerateVelocity, i, r3.Norm(v))
			}
			continue
		}
		out[i] = scaled
	}
	return out, nil
}

// rescale returns v*s/|v|^2 as (s/|v|) along the unit vector of v, which
// stays finite for subnormal speeds. It reports false for a zero speed or
// a result that overflows.
func rescale(v r3.Vec, s float64) (r3.Vec, bool) {
	norm := r3.Norm(v)
	if norm == 0 {
		return r3.Vec{}, false
	}
	mag := s / norm
	if math.IsInf(mag, 0) || math.IsNaN(mag) {
		return r3.Vec{}, false
	}
	return r3.Vec{X: mag * (v.X / norm), Y: mag * (v.Y / norm), Z: mag * (v.Z / norm)}, true
}
