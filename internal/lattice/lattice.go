package lattice

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/mdsim/internal/md"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind selects the crystal structure built by Generate.
type Kind int

const (
	SimpleCubic Kind = iota
	BCC
	FCC
)

func (k Kind) String() string {
	switch k {
	case SimpleCubic:
		return "cubic"
	case BCC:
		return "bcc"
	case FCC:
		return "fcc"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "cubic", "bcc" or "fcc" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cubic", "sc":
		return SimpleCubic, nil
	case "bcc":
		return BCC, nil
	case "fcc":
		return FCC, nil
	}
	return 0, fmt.Errorf("%w: lattice %q (want cubic, bcc or fcc)", md.ErrUnknownKind, s)
}

// Kinds lists the supported structures.
func Kinds() []Kind { return []Kind{SimpleCubic, BCC, FCC} }

// Lattice is the result of Generate.
type Lattice struct {
	Kind     Kind
	Geometry Geometry
	Cells    Cells
	Sites    []Site

	// Bounds is the maximum coordinate along each axis across all sites.
	Bounds r3.Vec

	// Orientation is recorded as given and is not applied to Sites.
	Orientation *r3.Rotation
}

type Option func(*Lattice)

// WithOrientation records a requested orientation on the result. Rotation of
// the generated sites is reserved; callers must not assume it is applied.
func WithOrientation(rot r3.Rotation) Option {
	return func(l *Lattice) {
		l.Orientation = &rot
	}
}

// Generate builds the sites of a cubic, BCC or FCC crystal: the corner grid
// followed by the body-center (BCC) or face (FCC) family.
func Generate(kind Kind, g Geometry, n Cells, opts ...Option) (*Lattice, error) {
	if n.A < 0 || n.B < 0 || n.C < 0 {
		return nil, fmt.Errorf("%w: negative repeat count (%d, %d, %d)", md.ErrInvalidInput, n.A, n.B, n.C)
	}
	b, err := BravaisVectors(g)
	if err != nil {
		return nil, err
	}

	sites := BuildCorners(b, n)
	switch kind {
	case SimpleCubic:
	case BCC:
		sites = append(sites, BuildCenters(b, n)...)
	case FCC:
		sites = append(sites, BuildFaces(b, n)...)
	default:
		return nil, fmt.Errorf("%w: lattice %v", md.ErrUnknownKind, kind)
	}

	l := &Lattice{
		Kind:     kind,
		Geometry: g,
		Cells:    n,
		Sites:    sites,
		Bounds:   maxBounds(sites),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// GenerateCubic is Generate over a cubic cell of edge length.
func GenerateCubic(kind Kind, length float64, n Cells, opts ...Option) (*Lattice, error) {
	return Generate(kind, Cubic(length), n, opts...)
}

func (l *Lattice) Len() int { return len(l.Sites) }

func (l *Lattice) Positions() []r3.Vec {
	p := make([]r3.Vec, len(l.Sites))
	for i, s := range l.Sites {
		p[i] = s.Position
	}
	return p
}

func (l *Lattice) Roles() []Role {
	r := make([]Role, len(l.Sites))
	for i, s := range l.Sites {
		r[i] = s.Role
	}
	return r
}

// Count returns the number of sites with the given role.
func (l *Lattice) Count(role Role) int {
	n := 0
	for _, s := range l.Sites {
		if s.Role == role {
			n++
		}
	}
	return n
}

// Box returns the axis-aligned box spanned by the sites.
func (l *Lattice) Box() r3.Box {
	if len(l.Sites) == 0 {
		return r3.Box{}
	}
	minV := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	for _, s := range l.Sites {
		minV.X = math.Min(minV.X, s.Position.X)
		minV.Y = math.Min(minV.Y, s.Position.Y)
		minV.Z = math.Min(minV.Z, s.Position.Z)
	}
	return r3.Box{Min: minV, Max: l.Bounds}
}

// Density returns the number density in sites per A^3 of the spanned cells,
// or zero for a degenerate lattice.
func (l *Lattice) Density() float64 {
	b, err := BravaisVectors(l.Geometry)
	if err != nil {
		return 0
	}
	v := b.Volume() * float64(l.Cells.A*l.Cells.B*l.Cells.C)
	if v == 0 {
		return 0
	}
	return float64(len(l.Sites)) / v
}

func maxBounds(sites []Site) r3.Vec {
	if len(sites) == 0 {
		return r3.Vec{}
	}
	b := sites[0].Position
	for _, s := range sites[1:] {
		b.X = math.Max(b.X, s.Position.X)
		b.Y = math.Max(b.Y, s.Position.Y)
		b.Z = math.Max(b.Z, s.Position.Z)
	}
	return b
}
