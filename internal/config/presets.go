package config

import "sort"

var Presets = map[string]*Config{
	"argon-fcc": DefaultConfig(),
	"argon-bcc": {
		Name: "argon-bcc", Species: "Ar", Ensemble: "nvt", Integrator: "verlet",
		Dt: 0.002, Steps: 500, SampleEvery: 10, InitTemperature: 80,
		Lattice:    &LatticeConfig{Kind: "bcc", Length: 4.2, Cells: []int{3, 3, 3}},
		Thermostat: ThermostatConfig{Kind: "berendsen", Temperature: 80, Tau: 0.1},
	},
	"h2-liquid": {
		Name: "h2-liquid", Seed: 1, Species: "H2", Ensemble: "nvt", Integrator: "verlet",
		Dt: 0.0005, Steps: 400, SampleEvery: 10, InitTemperature: 20,
		Liquid:     &LiquidConfig{Density: 0.07085, Boundary: []float64{14, 14, 14}},
		Thermostat: ThermostatConfig{Kind: "andersen", Temperature: 20, Frequency: 50, ZeroSpeed: "skip"},
	},
	"xenon-cubic": {
		Name: "xenon-cubic", Species: "Xe", Ensemble: "nvt", Integrator: "leapfrog",
		Dt: 0.004, Steps: 300, SampleEvery: 5, InitTemperature: 150,
		Lattice:    &LatticeConfig{Kind: "cubic", Length: 4.6, Cells: []int{4, 4, 4}},
		Thermostat: ThermostatConfig{Kind: "andersen", Temperature: 150, Frequency: 5},
	},
	"argon-nve": {
		Name: "argon-nve", Species: "Ar", Ensemble: "nve", Integrator: "verlet",
		Dt: 0.001, Steps: 1000, SampleEvery: 20, InitTemperature: 60,
		Lattice:    &LatticeConfig{Kind: "fcc", Length: 5.26, Cells: []int{2, 2, 2}},
		Thermostat: ThermostatConfig{Kind: "none"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
