package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/san-kum/mdsim/internal/ensemble"
	"github.com/san-kum/mdsim/internal/lattice"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/potential"
	"github.com/san-kum/mdsim/internal/thermostat"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSpecies     = "Ar"
	DefaultDt          = 0.002
	DefaultSteps       = 500
	DefaultSampleEvery = 10
	DefaultTemperature = 120.0
	DefaultFrequency   = 10.0
	DefaultTau         = 0.1
	DefaultLength      = 5.26
	DefaultCells       = 3
)

type Config struct {
	Name            string           `yaml:"name"`
	Seed            int64            `yaml:"seed"`
	Species         string           `yaml:"species"`
	Mass            float64          `yaml:"mass,omitempty"`
	Ensemble        string           `yaml:"ensemble"`
	Integrator      string           `yaml:"integrator"`
	Dt              float64          `yaml:"dt"`
	Steps           int              `yaml:"steps"`
	SampleEvery     int              `yaml:"sample_every"`
	InitTemperature float64          `yaml:"init_temperature"`
	Lattice         *LatticeConfig   `yaml:"lattice,omitempty"`
	Liquid          *LiquidConfig    `yaml:"liquid,omitempty"`
	Thermostat      ThermostatConfig `yaml:"thermostat"`
}

type LatticeConfig struct {
	Kind   string  `yaml:"kind"`
	Length float64 `yaml:"length"`
	Cells  []int   `yaml:"cells"`
}

type LiquidConfig struct {
	Density  float64   `yaml:"density"`
	Boundary []float64 `yaml:"boundary"`
}

type ThermostatConfig struct {
	Kind        string  `yaml:"kind"`
	Temperature float64 `yaml:"temperature"`
	Frequency   float64 `yaml:"frequency"`
	Tau         float64 `yaml:"tau"`
	ZeroSpeed   string  `yaml:"zero_speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:            "argon-fcc",
		Species:         DefaultSpecies,
		Ensemble:        "nvt",
		Integrator:      "verlet",
		Dt:              DefaultDt,
		Steps:           DefaultSteps,
		SampleEvery:     DefaultSampleEvery,
		InitTemperature: DefaultTemperature,
		Lattice:         defaultLattice(),
		Thermostat: ThermostatConfig{
			Kind:        "andersen",
			Temperature: DefaultTemperature,
			Frequency:   DefaultFrequency,
			Tau:         DefaultTau,
			ZeroSpeed:   "skip",
		},
	}
}

func defaultLattice() *LatticeConfig {
	return &LatticeConfig{Kind: "fcc", Length: DefaultLength, Cells: []int{DefaultCells, DefaultCells, DefaultCells}}
}

// Load reads a YAML config over the defaults. Unknown keys are an error.
// A file that names neither a lattice nor a liquid gets the default lattice.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Lattice = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Lattice == nil && cfg.Liquid == nil {
		cfg.Lattice = defaultLattice()
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	if c.Lattice != nil {
		l := *c.Lattice
		l.Cells = append([]int(nil), c.Lattice.Cells...)
		cp.Lattice = &l
	}
	if c.Liquid != nil {
		l := *c.Liquid
		l.Boundary = append([]float64(nil), c.Liquid.Boundary...)
		cp.Liquid = &l
	}
	return &cp
}

// ParticleMass returns the configured mass, falling back to the species
// table.
func (c *Config) ParticleMass() (float64, error) {
	if c.Mass > 0 {
		return c.Mass, nil
	}
	p, err := potential.DefaultTable().Lookup(c.Species)
	if err != nil {
		return 0, err
	}
	if p.Mass <= 0 {
		return 0, fmt.Errorf("%w: no mass for species %s", md.ErrInvalidInput, c.Species)
	}
	return p.Mass, nil
}

func (c *Config) ThermostatParams() (thermostat.Params, error) {
	zs, err := thermostat.ParseZeroSpeedPolicy(c.Thermostat.ZeroSpeed)
	if err != nil {
		return thermostat.Params{}, err
	}
	return thermostat.Params{
		Temperature: c.Thermostat.Temperature,
		TimeStep:    c.Dt,
		Frequency:   c.Thermostat.Frequency,
		Tau:         c.Thermostat.Tau,
		ZeroSpeed:   zs,
	}, nil
}

func (c *Config) EnsembleConfig() ensemble.Config {
	return ensemble.Config{Dt: c.Dt, Steps: c.Steps, SampleEvery: c.SampleEvery}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if _, err := c.ParticleMass(); err != nil {
		return err
	}
	if c.Mass < 0 {
		return invalid("mass must not be negative, got %g", c.Mass)
	}
	kind, err := ensemble.ParseKind(c.Ensemble)
	if err != nil {
		return err
	}
	if c.Dt <= 0 {
		return invalid("dt must be positive, got %f", c.Dt)
	}
	if c.Steps <= 0 {
		return invalid("steps must be positive, got %d", c.Steps)
	}
	if c.SampleEvery < 0 {
		return invalid("sample_every must not be negative, got %d", c.SampleEvery)
	}
	if c.InitTemperature < 0 {
		return invalid("init_temperature must not be negative, got %f", c.InitTemperature)
	}

	switch {
	case c.Lattice != nil && c.Liquid != nil:
		return invalid("lattice and liquid are mutually exclusive")
	case c.Lattice != nil:
		if err := c.Lattice.validate(); err != nil {
			return err
		}
	case c.Liquid != nil:
		if err := c.Liquid.validate(); err != nil {
			return err
		}
	default:
		return invalid("one of lattice or liquid is required")
	}

	if kind == ensemble.NVT {
		p, err := c.ThermostatParams()
		if err != nil {
			return err
		}
		if _, err := thermostat.New(c.Thermostat.Kind, p); err != nil {
			return err
		}
	}
	return nil
}

func (l *LatticeConfig) validate() error {
	if _, err := lattice.ParseKind(l.Kind); err != nil {
		return err
	}
	if l.Length <= 0 {
		return invalid("lattice length must be positive, got %f", l.Length)
	}
	if len(l.Cells) != 3 {
		return invalid("lattice cells needs 3 counts, got %d", len(l.Cells))
	}
	for _, n := range l.Cells {
		if n < 0 {
			return invalid("lattice cells must not be negative, got %v", l.Cells)
		}
	}
	return nil
}

func (l *LatticeConfig) CellCounts() lattice.Cells {
	return lattice.Cells{A: l.Cells[0], B: l.Cells[1], C: l.Cells[2]}
}

func (l *LiquidConfig) validate() error {
	if l.Density <= 0 {
		return invalid("liquid density must be positive, got %f", l.Density)
	}
	if len(l.Boundary) != 3 {
		return invalid("liquid boundary needs 3 lengths, got %d", len(l.Boundary))
	}
	for _, b := range l.Boundary {
		if b <= 0 {
			return invalid("liquid boundary must be positive, got %v", l.Boundary)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{md.ErrInvalidInput}, args...)...)
}
