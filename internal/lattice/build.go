package lattice

import "gonum.org/v1/gonum/spatial/r3"

// Role tags the structural position of a site within its cell.
type Role int

const (
	Corner Role = iota
	Center
	Face
)

func (r Role) String() string {
	switch r {
	case Corner:
		return "corner"
	case Center:
		return "center"
	case Face:
		return "face"
	default:
		return "unknown"
	}
}

type Site struct {
	Position r3.Vec
	Role     Role
}

// Cells is the number of unit cells tiled along each Bravais vector.
// Zero along an axis yields a planar or linear lattice.
type Cells struct {
	A, B, C int
}

// BuildCorners returns the grid points i*A + j*B + k*C for i in [0, n.A],
// j in [0, n.B], k in [0, n.C], i-major.
func BuildCorners(b Bravais, n Cells) []Site {
	return tile(b, r3.Vec{}, n.A+1, n.B+1, n.C+1, Corner, nil)
}

// BuildCenters returns one body-center site per cell, offset by half of each
// Bravais vector, for i in [0, n.A), j in [0, n.B), k in [0, n.C).
func BuildCenters(b Bravais, n Cells) []Site {
	offset := r3.Scale(0.5, r3.Add(r3.Add(b.A, b.B), b.C))
	return tile(b, offset, n.A, n.B, n.C, Center, nil)
}

// BuildFaces returns the ab, ac and bc face-midpoint families, in that
// order. Each family spans one extra layer along the axis its faces are
// normal to.
func BuildFaces(b Bravais, n Cells) []Site {
	ab := r3.Scale(0.5, r3.Add(b.A, b.B))
	ac := r3.Scale(0.5, r3.Add(b.A, b.C))
	bc := r3.Scale(0.5, r3.Add(b.B, b.C))

	sites := make([]Site, 0, faceCount(n))
	sites = tile(b, ab, n.A, n.B, n.C+1, Face, sites)
	sites = tile(b, ac, n.A, n.B+1, n.C, Face, sites)
	sites = tile(b, bc, n.A+1, n.B, n.C, Face, sites)
	return sites
}

// tile appends offset + i*A + j*B + k*C for i < ni, j < nj, k < nk.
func tile(b Bravais, offset r3.Vec, ni, nj, nk int, role Role, dst []Site) []Site {
	if ni <= 0 || nj <= 0 || nk <= 0 {
		if dst == nil {
			return []Site{}
		}
		return dst
	}
	if dst == nil {
		dst = make([]Site, 0, ni*nj*nk)
	}
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			for k := 0; k < nk; k++ {
				dst = append(dst, Site{Position: r3.Add(offset, b.At(i, j, k)), Role: role})
			}
		}
	}
	return dst
}

func faceCount(n Cells) int {
	return n.A*n.B*(n.C+1) + n.A*(n.B+1)*n.C + (n.A+1)*n.B*n.C
}
