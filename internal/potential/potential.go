// Package potential supplies pair potentials as opaque functions of distance.
package potential

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/units"
	"gopkg.in/yaml.v3"
)

//go:embed lj_parameters.yaml
var defaultTable []byte

// Params are Lennard-Jones parameters: Epsilon as epsilon/kB in K and Sigma
// in Angstroms. Mass is the molar mass in g/mol, zero when unknown.
type Params struct {
	Epsilon float64 `yaml:"epsilon"`
	Sigma   float64 `yaml:"sigma"`
	Mass    float64 `yaml:"mass"`
}

type Table struct {
	Species map[string]Params `yaml:"species"`
}

// LoadTable parses a YAML parameter table. Unknown fields are rejected.
func LoadTable(r io.Reader) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("parse lj table: %w", err)
	}
	for name, p := range t.Species {
		if !(p.Epsilon > 0) || !(p.Sigma > 0) || p.Mass < 0 {
			return nil, fmt.Errorf("%w: species %s has non-positive parameters", md.ErrInvalidInput, name)
		}
	}
	return &t, nil
}

// DefaultTable returns the built-in parameter table.
func DefaultTable() *Table {
	t, err := LoadTable(bytes.NewReader(defaultTable))
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Lookup(species string) (Params, error) {
	p, ok := t.Species[species]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q", md.ErrUnknownSpecies, species)
	}
	return p, nil
}

// Names returns the species in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.Species))
	for name := range t.Species {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LJ returns the Lennard-Jones potential of a species from the default table.
func LJ(species string) (md.Potential, error) {
	p, err := DefaultTable().Lookup(species)
	if err != nil {
		return nil, err
	}
	return LennardJones(p), nil
}

// LennardJones returns 4 eps ((sigma/r)^12 - (sigma/r)^6) in kcal/mol.
func LennardJones(p Params) md.Potential {
	eps := p.Epsilon * units.KBoltzmann
	sigma := p.Sigma
	return func(r float64) float64 {
		sr6 := math.Pow(sigma/r, 6)
		return 4.0 * eps * (sr6*sr6 - sr6)
	}
}

// Cutoff returns pot truncated to zero beyond rc.
func Cutoff(pot md.Potential, rc float64) md.Potential {
	return func(r float64) float64 {
		if r > rc {
			return 0
		}
		return pot(r)
	}
}

// derivativeStep is the relative step of the central difference.
const derivativeStep = 1e-6

// Derivative estimates dU/dr at r by a central difference.
func Derivative(pot md.Potential, r float64) float64 {
	h := derivativeStep * math.Max(r, 1)
	return (pot(r+h) - pot(r-h)) / (2 * h)
}
