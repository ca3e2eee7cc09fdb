// Package ensemble runs the time-stepping loop: integrate, apply the
// thermostat for constant-temperature runs, validate, and sample.
package ensemble

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/san-kum/mdsim/internal/energy"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/rng"
	"github.com/san-kum/mdsim/internal/thermostat"
	"github.com/sirupsen/logrus"
)

type Kind int

const (
	// NVE conserves particle count, volume and energy.
	NVE Kind = iota
	// NVT holds the temperature with a thermostat.
	NVT
)

func (k Kind) String() string {
	switch k {
	case NVE:
		return "nve"
	case NVT:
		return "nvt"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "nve":
		return NVE, nil
	case "nvt":
		return NVT, nil
	default:
		return 0, fmt.Errorf("%w: ensemble %q", md.ErrUnknownKind, s)
	}
}

type Config struct {
	Dt          float64
	Steps       int
	SampleEvery int
}

type Result struct {
	Samples    []md.Sample
	Metrics    map[string]float64
	StepsTaken int
}

type Ensemble struct {
	kind       Kind
	integrator md.Integrator
	pot        md.Potential
	thermostat thermostat.Thermostat
	rnd        *rand.Rand
	metrics    []md.Metric
	observers  []md.Observer
	time       float64
}

// New builds an ensemble. An NVT ensemble requires a thermostat; an NVE
// ensemble ignores it.
func New(kind Kind, integ md.Integrator, pot md.Potential, th thermostat.Thermostat, streams *rng.Partitioned) (*Ensemble, error) {
	if integ == nil {
		return nil, fmt.Errorf("%w: nil integrator", md.ErrInvalidInput)
	}
	switch kind {
	case NVE:
		th = nil
	case NVT:
		if th == nil {
			return nil, fmt.Errorf("%w: nvt ensemble needs a thermostat", md.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: ensemble %v", md.ErrUnknownKind, kind)
	}
	if streams == nil {
		streams = rng.New(0)
	}
	return &Ensemble{
		kind:       kind,
		integrator: integ,
		pot:        pot,
		thermostat: th,
		rnd:        streams.ForSubsystem(rng.SubsystemThermostat),
	}, nil
}

func (e *Ensemble) AddMetric(m md.Metric)     { e.metrics = append(e.metrics, m) }
func (e *Ensemble) AddObserver(o md.Observer) { e.observers = append(e.observers, o) }

func (e *Ensemble) Kind() Kind { return e.kind }

// Thermostat returns nil for NVE.
func (e *Ensemble) Thermostat() thermostat.Thermostat { return e.thermostat }

func (e *Ensemble) Time() float64 { return e.time }

// ResetClock restarts the simulation time at zero.
func (e *Ensemble) ResetClock() { e.time = 0 }

// SetTarget moves the thermostat target and every target-relative metric.
func (e *Ensemble) SetTarget(temperature float64) error {
	if e.thermostat == nil {
		return fmt.Errorf("%w: %v ensemble has no thermostat", md.ErrInvalidInput, e.kind)
	}
	if err := e.thermostat.SetTemperature(temperature); err != nil {
		return err
	}
	for _, m := range e.metrics {
		if t, ok := m.(metrics.Targeted); ok {
			t.SetTarget(temperature)
		}
	}
	logrus.Infof("thermostat target set to %.2f K", temperature)
	return nil
}

// Observe samples the system at the current time without advancing it.
func (e *Ensemble) Observe(sys *md.System, step int) (md.Sample, error) {
	return energy.Observe(sys, e.pot, step, e.time)
}

// Advance performs one step in place: integrate, thermostat (NVT only),
// then check the state is finite.
func (e *Ensemble) Advance(sys *md.System, step int, dt float64) (md.Sample, error) {
	if err := e.integrator.Step(sys, e.pot, dt); err != nil {
		return md.Sample{}, &md.StepError{Step: step, Time: e.time, Wrapped: err}
	}
	if e.thermostat != nil {
		v, err := e.thermostat.ScaleVelocities(sys.Velocities, sys.Masses, e.rnd)
		if err != nil {
			return md.Sample{}, &md.StepError{Step: step, Time: e.time, Wrapped: err}
		}
		sys.Velocities = v
	}
	e.time += dt
	if !sys.IsFinite() {
		return md.Sample{}, &md.StepError{Step: step, Time: e.time, Wrapped: md.ErrUnstable}
	}
	s, err := e.Observe(sys, step)
	if err != nil {
		return md.Sample{}, &md.StepError{Step: step, Time: e.time, Wrapped: err}
	}
	return s, nil
}

// Run advances sys for cfg.Steps steps, recording the initial sample, every
// SampleEvery-th step and the last step. Metrics see every step. On error
// the partial result is returned with it.
func (e *Ensemble) Run(ctx context.Context, sys *md.System, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every == 0 {
		every = 1
	}

	result := &Result{
		Samples: make([]md.Sample, 0, cfg.Steps/every+2),
		Metrics: make(map[string]float64),
	}
	for _, m := range e.metrics {
		m.Reset()
	}
	e.ResetClock()

	logrus.Infof("starting %v run: %d particles, %d steps, dt=%g", e.kind, sys.Len(), cfg.Steps, cfg.Dt)

	s, err := e.Observe(sys, 0)
	if err != nil {
		return nil, err
	}
	e.record(result, s, sys)

	for step := 1; step <= cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			e.finish(result)
			return result, ctx.Err()
		default:
		}

		s, err := e.Advance(sys, step, cfg.Dt)
		if err != nil {
			logrus.Warnf("run stopped: %v", err)
			e.finish(result)
			return result, err
		}
		result.StepsTaken++

		for _, m := range e.metrics {
			m.Observe(s)
		}
		if step%every == 0 || step == cfg.Steps {
			e.record(result, s, sys)
		}
	}

	e.finish(result)
	logrus.Infof("finished %v run: %d steps, T=%.3f K", e.kind, result.StepsTaken, result.Samples[len(result.Samples)-1].Temperature)
	return result, nil
}

func (e *Ensemble) record(result *Result, s md.Sample, sys *md.System) {
	result.Samples = append(result.Samples, s)
	for _, obs := range e.observers {
		obs.OnStep(s, sys)
	}
	logrus.Debugf("step %d t=%.4f KE=%.6f PE=%.6f T=%.3f", s.Step, s.Time, s.Kinetic, s.Potential, s.Temperature)
}

func (e *Ensemble) finish(result *Result) {
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", md.ErrInvalidInput, cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", md.ErrInvalidInput, cfg.Steps)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", md.ErrInvalidInput, cfg.SampleEvery)
	}
	return nil
}
