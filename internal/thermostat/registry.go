package thermostat

import (
	"fmt"
	"strings"

	"github.com/san-kum/mdsim/internal/md"
)

// Params carries the settings any strategy may need. Fields a strategy does
// not use are ignored.
type Params struct {
	Temperature float64
	TimeStep    float64
	Frequency   float64
	Tau         float64
	ZeroSpeed   ZeroSpeedPolicy
}

type factory func(p Params) (Thermostat, error)

var registry = map[string]factory{
	"andersen": func(p Params) (Thermostat, error) {
		a, err := NewAndersen(p.Temperature, p.TimeStep, p.Frequency)
		if err != nil {
			return nil, err
		}
		a.SetZeroSpeedPolicy(p.ZeroSpeed)
		return a, nil
	},
	"berendsen": func(p Params) (Thermostat, error) {
		return NewBerendsen(p.Temperature, p.TimeStep, p.Tau)
	},
	"none": func(p Params) (Thermostat, error) {
		return NewNone(p.Temperature), nil
	},
}

// New builds the thermostat registered under kind.
func New(kind string, p Params) (Thermostat, error) {
	f, ok := registry[strings.ToLower(kind)]
	if !ok {
		return nil, fmt.Errorf("%w: thermostat %q", md.ErrUnknownKind, kind)
	}
	return f(p)
}

func Kinds() []string {
	return []string{"andersen", "berendsen", "none"}
}
