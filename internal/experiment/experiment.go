// Package experiment turns a validated config into a ready-to-run ensemble.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/ensemble"
	"github.com/san-kum/mdsim/internal/integrator"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/potential"
	"github.com/san-kum/mdsim/internal/rng"
	"github.com/san-kum/mdsim/internal/storage"
	"github.com/san-kum/mdsim/internal/thermostat"
)

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	streams  *rng.Partitioned
	ensemble *ensemble.Ensemble
	system   *md.System
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Experiment{
		cfg:      cfg.Clone(),
		registry: NewRegistry(),
		streams:  rng.New(cfg.Seed),
	}, nil
}

// Setup builds the particles, draws initial velocities at the configured
// temperature, and assembles the ensemble with the default metrics.
func (e *Experiment) Setup() error {
	mass, err := e.cfg.ParticleMass()
	if err != nil {
		return err
	}
	build, err := e.registry.GetBuilder(BuilderName(e.cfg))
	if err != nil {
		return err
	}
	sys, err := build(e.cfg, mass, e.streams)
	if err != nil {
		return fmt.Errorf("build system: %w", err)
	}
	sys.Velocities, err = thermostat.MaxwellBoltzmann(sys.Masses, e.cfg.InitTemperature, e.streams.ForSubsystem(rng.SubsystemVelocities))
	if err != nil {
		return fmt.Errorf("initial velocities: %w", err)
	}

	pot, err := potential.LJ(e.cfg.Species)
	if err != nil {
		return err
	}
	integ, err := integrator.New(e.cfg.Integrator)
	if err != nil {
		return err
	}
	kind, err := ensemble.ParseKind(e.cfg.Ensemble)
	if err != nil {
		return err
	}
	var th thermostat.Thermostat
	if kind == ensemble.NVT {
		p, err := e.cfg.ThermostatParams()
		if err != nil {
			return err
		}
		if th, err = thermostat.New(e.cfg.Thermostat.Kind, p); err != nil {
			return err
		}
	}

	ens, err := ensemble.New(kind, integ, pot, th, e.streams)
	if err != nil {
		return err
	}
	for _, m := range e.registry.DefaultMetrics(e.cfg) {
		ens.AddMetric(m)
	}
	e.system = sys
	e.ensemble = ens
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*ensemble.Result, error) {
	if e.ensemble == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.ensemble.Run(ctx, e.system, e.cfg.EnsembleConfig())
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Ensemble returns nil before Setup.
func (e *Experiment) Ensemble() *ensemble.Ensemble { return e.ensemble }

func (e *Experiment) System() *md.System { return e.system }

// Metadata describes the run for storage. Particles is zero before Setup.
func (e *Experiment) Metadata() storage.RunMetadata {
	meta := storage.RunMetadata{
		Name:       e.cfg.Name,
		Seed:       e.cfg.Seed,
		Species:    e.cfg.Species,
		Ensemble:   e.cfg.Ensemble,
		Integrator: e.cfg.Integrator,
		Dt:         e.cfg.Dt,
		Steps:      e.cfg.Steps,
	}
	if e.ensemble != nil && e.ensemble.Thermostat() != nil {
		meta.Thermostat = e.cfg.Thermostat.Kind
		meta.Target = e.cfg.Thermostat.Temperature
	}
	if e.system != nil {
		meta.Particles = e.system.Len()
	}
	return meta
}
