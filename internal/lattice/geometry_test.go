package lattice_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mdsim/internal/lattice"
	"github.com/san-kum/mdsim/internal/md"
)

var _ = Describe("BravaisVectors", func() {
	It("gives an exact unit c_z for a cubic cell", func() {
		b, err := lattice.BravaisVectors(lattice.Cubic(1.0))
		Expect(err).NotTo(HaveOccurred())
		Expect(b.C.Z).To(Equal(1.0))
		Expect(b.A.X).To(Equal(1.0))
		Expect(b.B.Y).To(Equal(1.0))
	})

	It("places a along x and b in the xy-plane", func() {
		g := lattice.Geometry{A: 2, B: 3, C: 4, Alpha: 1.4, Beta: 1.5, Gamma: 2.0}
		b, err := lattice.BravaisVectors(g)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.A.Y).To(BeZero())
		Expect(b.A.Z).To(BeZero())
		Expect(b.B.Z).To(BeZero())
		Expect(b.B.X).To(BeNumerically("~", 3*math.Cos(2.0), 1e-12))
		Expect(b.B.Y).To(BeNumerically("~", 3*math.Sin(2.0), 1e-12))

		length := math.Sqrt(b.C.X*b.C.X + b.C.Y*b.C.Y + b.C.Z*b.C.Z)
		Expect(length).To(BeNumerically("~", 4.0, 1e-12))
		Expect(b.C.Z).To(BeNumerically(">", 0))
	})

	It("reproduces the interaxial angles", func() {
		g := lattice.Geometry{A: 1, B: 1, C: 1, Alpha: 1.2, Beta: 1.3, Gamma: 1.7}
		b, err := lattice.BravaisVectors(g)
		Expect(err).NotTo(HaveOccurred())

		dot := func(x, y [3]float64) float64 { return x[0]*y[0] + x[1]*y[1] + x[2]*y[2] }
		a := [3]float64{b.A.X, b.A.Y, b.A.Z}
		bb := [3]float64{b.B.X, b.B.Y, b.B.Z}
		c := [3]float64{b.C.X, b.C.Y, b.C.Z}
		Expect(dot(bb, c)).To(BeNumerically("~", math.Cos(1.2), 1e-12))
		Expect(dot(a, c)).To(BeNumerically("~", math.Cos(1.3), 1e-12))
		Expect(dot(a, bb)).To(BeNumerically("~", math.Cos(1.7), 1e-12))
	})

	It("has the cube volume for a cubic cell", func() {
		b, err := lattice.BravaisVectors(lattice.Cubic(3.0))
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Volume()).To(BeNumerically("~", 27.0, 1e-9))
	})

	DescribeTable("rejects degenerate cells",
		func(g lattice.Geometry) {
			_, err := lattice.BravaisVectors(g)
			Expect(err).To(MatchError(md.ErrInvalidGeometry))
			Expect(g.Validate()).To(MatchError(md.ErrInvalidGeometry))
		},
		Entry("negative radicand", lattice.Geometry{A: 1, B: 1, C: 1, Alpha: 0.1, Beta: 2.0, Gamma: lattice.Degrees90}),
		Entry("gamma of pi", lattice.Geometry{A: 1, B: 1, C: 1, Alpha: lattice.Degrees90, Beta: lattice.Degrees90, Gamma: math.Pi}),
		Entry("zero gamma", lattice.Geometry{A: 1, B: 1, C: 1, Alpha: lattice.Degrees90, Beta: lattice.Degrees90, Gamma: 0}),
		Entry("zero length", lattice.Geometry{A: 0, B: 1, C: 1, Alpha: lattice.Degrees90, Beta: lattice.Degrees90, Gamma: lattice.Degrees90}),
		Entry("negative length", lattice.Cubic(-2)),
		Entry("NaN angle", lattice.Geometry{A: 1, B: 1, C: 1, Alpha: math.NaN(), Beta: lattice.Degrees90, Gamma: lattice.Degrees90}),
	)
})
