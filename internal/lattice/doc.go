// Package lattice builds crystal site coordinates from a unit-cell geometry.
//
// A unit cell is described by three edge lengths and three interaxial angles
// ([Geometry]). Its Bravais vectors ([Bravais]) are tiled along each axis
// according to a repeat count ([Cells]):
//
//   - [BuildCorners]: the (n_a+1)(n_b+1)(n_c+1) grid points
//   - [BuildCenters]: one body-center site per cell (BCC)
//   - [BuildFaces]: the ab, ac and bc face-midpoint families (FCC)
//
// [Generate] concatenates the corner grid with the secondary family for the
// requested [Kind]. The order of the returned sites is part of the contract:
// corners first, then centers or faces, each family in i-major, j, k order.
//
// # Example
//
//	lat, err := lattice.Generate(lattice.FCC, lattice.Cubic(5.26), lattice.Cells{A: 3, B: 3, C: 3})
//	if err != nil {
//	    return err
//	}
//	positions := lat.Positions()
//
// All functions are pure and safe for concurrent use.
package lattice
