package sweep

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/md"
)

// Point is one combination of swept parameter values.
type Point map[string]float64

// String renders the point with its parameters in name order.
func (p Point) String() string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + strconv.FormatFloat(p[name], 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// Grid is the cartesian product of per-parameter value lists.
type Grid struct {
	names  []string
	values [][]float64
}

func NewGrid() *Grid { return &Grid{} }

// Add appends a parameter axis. Adding a name twice replaces its values.
func (g *Grid) Add(name string, values ...float64) *Grid {
	for i, n := range g.names {
		if n == name {
			g.values[i] = values
			return g
		}
	}
	g.names = append(g.names, name)
	g.values = append(g.values, values)
	return g
}

func (g *Grid) Names() []string { return append([]string(nil), g.names...) }

// Size is the number of points; an empty grid has a single empty point.
func (g *Grid) Size() int {
	n := 1
	for _, v := range g.values {
		n *= len(v)
	}
	return n
}

// Points enumerates the grid with the last added axis varying fastest.
func (g *Grid) Points() []Point {
	out := make([]Point, 0, g.Size())
	g.expand(0, Point{}, &out)
	return out
}

func (g *Grid) expand(depth int, current Point, out *[]Point) {
	if depth == len(g.names) {
		p := make(Point, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}
	name := g.names[depth]
	for _, v := range g.values[depth] {
		current[name] = v
		g.expand(depth+1, current, out)
	}
	delete(current, name)
}

// ParseAxis reads "name=v1,v2,...".
func ParseAxis(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("%w: sweep axis %q (want name=v1,v2)", md.ErrInvalidInput, s)
	}
	if !IsParameter(name) {
		return "", nil, fmt.Errorf("%w: unknown sweep parameter %q (want one of %v)", md.ErrInvalidInput, name, Parameters())
	}
	var values []float64
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", nil, fmt.Errorf("%w: sweep value %q for %s", md.ErrInvalidInput, field, name)
		}
		values = append(values, v)
	}
	return name, values, nil
}

var setters = map[string]func(*config.Config, float64){
	"temperature":      func(c *config.Config, v float64) { c.Thermostat.Temperature = v },
	"frequency":        func(c *config.Config, v float64) { c.Thermostat.Frequency = v },
	"tau":              func(c *config.Config, v float64) { c.Thermostat.Tau = v },
	"dt":               func(c *config.Config, v float64) { c.Dt = v },
	"init_temperature": func(c *config.Config, v float64) { c.InitTemperature = v },
	"mass":             func(c *config.Config, v float64) { c.Mass = v },
}

// Parameters lists the config fields a sweep can vary.
func Parameters() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func IsParameter(name string) bool {
	_, ok := setters[name]
	return ok
}

// Apply returns a copy of base with the point's values set.
func Apply(base *config.Config, p Point) (*config.Config, error) {
	cfg := base.Clone()
	for name, v := range p {
		set, ok := setters[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown sweep parameter %q", md.ErrInvalidInput, name)
		}
		set(cfg, v)
	}
	return cfg, nil
}
