package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/ensemble"
	"github.com/san-kum/mdsim/internal/lattice"
	"github.com/san-kum/mdsim/internal/liquid"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/rng"
	"gonum.org/v1/gonum/spatial/r3"
)

// Builder places the particles of a run. Velocities are left at zero.
type Builder func(cfg *config.Config, mass float64, streams *rng.Partitioned) (*md.System, error)

type Registry struct {
	builders map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	r.builders["lattice"] = buildLattice
	r.builders["liquid"] = buildLiquid
	return r
}

func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
}

func (r *Registry) GetBuilder(name string) (Builder, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: builder %q", md.ErrUnknownKind, name)
	}
	return b, nil
}

func (r *Registry) ListBuilders() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics measures target-relative metrics only for NVT runs.
func (r *Registry) DefaultMetrics(cfg *config.Config) []md.Metric {
	target := 0.0
	if kind, err := ensemble.ParseKind(cfg.Ensemble); err == nil && kind == ensemble.NVT {
		target = cfg.Thermostat.Temperature
	}
	return metrics.Standard(target)
}

// BuilderName picks the builder a config describes.
func BuilderName(cfg *config.Config) string {
	if cfg.Liquid != nil {
		return "liquid"
	}
	return "lattice"
}

func buildLattice(cfg *config.Config, mass float64, _ *rng.Partitioned) (*md.System, error) {
	kind, err := lattice.ParseKind(cfg.Lattice.Kind)
	if err != nil {
		return nil, err
	}
	l, err := lattice.GenerateCubic(kind, cfg.Lattice.Length, cfg.Lattice.CellCounts())
	if err != nil {
		return nil, err
	}
	return md.NewSystem(l.Positions(), md.UniformMasses(l.Len(), mass))
}

func buildLiquid(cfg *config.Config, mass float64, streams *rng.Partitioned) (*md.System, error) {
	b := cfg.Liquid.Boundary
	l, err := liquid.New(cfg.Liquid.Density, mass, r3.Vec{X: b[0], Y: b[1], Z: b[2]}, streams.ForSubsystem(rng.SubsystemLiquid))
	if err != nil {
		return nil, err
	}
	return md.NewSystem(l.Positions, md.UniformMasses(l.Len(), mass))
}
