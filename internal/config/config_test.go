package config

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/thermostat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Ar", cfg.Species)
	assert.Greater(t, cfg.Dt, 0.0)

	m, err := cfg.ParticleMass()
	require.NoError(t, err)
	assert.Equal(t, 39.948, m)
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			require.NotNil(t, cfg)
			assert.Equal(t, name, cfg.Name)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestGetPreset(t *testing.T) {
	assert.Nil(t, GetPreset("nonexistent"))

	cfg := GetPreset("argon-bcc")
	cfg.Lattice.Cells[0] = 99
	assert.Equal(t, 3, Presets["argon-bcc"].Lattice.Cells[0], "presets are copied")
}

func TestParse(t *testing.T) {
	t.Run("liquid drops the default lattice", func(t *testing.T) {
		cfg, err := Parse([]byte("species: H2\nliquid:\n  density: 0.07\n  boundary: [10, 10, 10]\n"))
		require.NoError(t, err)
		assert.Nil(t, cfg.Lattice)
		require.NotNil(t, cfg.Liquid)
		assert.Equal(t, []float64{10, 10, 10}, cfg.Liquid.Boundary)
		assert.NoError(t, cfg.Validate())
	})
	t.Run("defaults fill gaps", func(t *testing.T) {
		cfg, err := Parse([]byte("steps: 42\nthermostat:\n  kind: berendsen\n  temperature: 90\n  tau: 0.05\n"))
		require.NoError(t, err)
		assert.Equal(t, 42, cfg.Steps)
		assert.Equal(t, DefaultDt, cfg.Dt)
		require.NotNil(t, cfg.Lattice)
		assert.Equal(t, "fcc", cfg.Lattice.Kind)
		assert.NoError(t, cfg.Validate())
	})
	t.Run("unknown key", func(t *testing.T) {
		_, err := Parse([]byte("stpes: 10\n"))
		assert.Error(t, err)
	})
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("h2-liquid")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }, md.ErrInvalidInput},
		{"zero steps", func(c *Config) { c.Steps = 0 }, md.ErrInvalidInput},
		{"negative sample interval", func(c *Config) { c.SampleEvery = -1 }, md.ErrInvalidInput},
		{"unknown species", func(c *Config) { c.Species = "Zz" }, md.ErrUnknownSpecies},
		{"unknown ensemble", func(c *Config) { c.Ensemble = "npt" }, md.ErrUnknownKind},
		{"unknown lattice", func(c *Config) { c.Lattice.Kind = "hcp" }, md.ErrUnknownKind},
		{"two cell counts", func(c *Config) { c.Lattice.Cells = []int{1, 2} }, md.ErrInvalidInput},
		{"negative cells", func(c *Config) { c.Lattice.Cells = []int{1, -2, 1} }, md.ErrInvalidInput},
		{"both builders", func(c *Config) { c.Liquid = &LiquidConfig{Density: 1, Boundary: []float64{1, 1, 1}} }, md.ErrInvalidInput},
		{"no builder", func(c *Config) { c.Lattice = nil }, md.ErrInvalidInput},
		{"unknown thermostat", func(c *Config) { c.Thermostat.Kind = "langevin" }, md.ErrUnknownKind},
		{"zero target", func(c *Config) { c.Thermostat.Temperature = 0 }, md.ErrInvalidInput},
		{"bad zero speed policy", func(c *Config) { c.Thermostat.ZeroSpeed = "clamp" }, md.ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidate_NVEIgnoresThermostat(t *testing.T) {
	cfg := GetPreset("argon-nve")
	cfg.Thermostat.Kind = "whatever"
	assert.NoError(t, cfg.Validate())
}

func TestThermostatParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thermostat.ZeroSpeed = "error"
	p, err := cfg.ThermostatParams()
	require.NoError(t, err)
	assert.Equal(t, thermostat.ZeroSpeedError, p.ZeroSpeed)
	assert.Equal(t, cfg.Dt, p.TimeStep)
	assert.Equal(t, cfg.Thermostat.Frequency, p.Frequency)
}
