package lattice_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/mdsim/internal/lattice"
	"github.com/san-kum/mdsim/internal/md"
)

const tol = 1e-9

func near(v r3.Vec, x, y, z float64) bool {
	return math.Abs(v.X-x) < tol && math.Abs(v.Y-y) < tol && math.Abs(v.Z-z) < tol
}

var _ = Describe("Generate", func() {
	const length = 4.0
	one := lattice.Cells{A: 1, B: 1, C: 1}

	Context("simple cubic with one cell", func() {
		var lat *lattice.Lattice

		BeforeEach(func() {
			var err error
			lat, err = lattice.GenerateCubic(lattice.SimpleCubic, length, one)
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the eight corners of the cube", func() {
			Expect(lat.Sites).To(HaveLen(8))
			Expect(lat.Count(lattice.Corner)).To(Equal(8))

			seen := map[[3]int]bool{}
			for _, s := range lat.Sites {
				key := [3]int{}
				for axis, c := range []float64{s.Position.X, s.Position.Y, s.Position.Z} {
					switch {
					case math.Abs(c) < tol:
						key[axis] = 0
					case math.Abs(c-length) < tol:
						key[axis] = 1
					default:
						Fail("coordinate is neither 0 nor L")
					}
				}
				seen[key] = true
			}
			Expect(seen).To(HaveLen(8))
		})

		It("iterates i-major then j then k", func() {
			Expect(near(lat.Sites[0].Position, 0, 0, 0)).To(BeTrue())
			Expect(near(lat.Sites[1].Position, 0, 0, length)).To(BeTrue())
			Expect(near(lat.Sites[2].Position, 0, length, 0)).To(BeTrue())
			Expect(near(lat.Sites[4].Position, length, 0, 0)).To(BeTrue())
		})

		It("reports the maximum coordinate as bounds", func() {
			Expect(near(lat.Bounds, length, length, length)).To(BeTrue())
			box := lat.Box()
			Expect(near(box.Min, 0, 0, 0)).To(BeTrue())
		})
	})

	It("adds a single body center for BCC", func() {
		lat, err := lattice.GenerateCubic(lattice.BCC, length, one)
		Expect(err).NotTo(HaveOccurred())
		Expect(lat.Sites).To(HaveLen(9))
		Expect(lat.Count(lattice.Center)).To(Equal(1))

		center := lat.Sites[8]
		Expect(center.Role).To(Equal(lattice.Center))
		Expect(near(center.Position, length/2, length/2, length/2)).To(BeTrue())
	})

	It("adds six face sites for FCC in ab, ac, bc order", func() {
		lat, err := lattice.GenerateCubic(lattice.FCC, 2.0, one)
		Expect(err).NotTo(HaveOccurred())
		Expect(lat.Sites).To(HaveLen(14))
		Expect(lat.Count(lattice.Face)).To(Equal(6))

		faces := lat.Sites[8:]
		want := [][3]float64{
			{1, 1, 0}, {1, 1, 2},
			{1, 0, 1}, {1, 2, 1},
			{0, 1, 1}, {2, 1, 1},
		}
		for i, w := range want {
			Expect(faces[i].Role).To(Equal(lattice.Face))
			Expect(near(faces[i].Position, w[0], w[1], w[2])).To(BeTrue(), "face %d at %v", i, faces[i].Position)
		}
	})

	It("keeps corners ahead of the secondary family", func() {
		lat, err := lattice.GenerateCubic(lattice.FCC, length, lattice.Cells{A: 2, B: 2, C: 2})
		Expect(err).NotTo(HaveOccurred())

		corners := lat.Count(lattice.Corner)
		for i, r := range lat.Roles() {
			if i < corners {
				Expect(r).To(Equal(lattice.Corner))
			} else {
				Expect(r).To(Equal(lattice.Face))
			}
		}
	})

	DescribeTable("site counts",
		func(kind lattice.Kind, n lattice.Cells, corners, secondary int) {
			lat, err := lattice.GenerateCubic(kind, 1.0, n)
			Expect(err).NotTo(HaveOccurred())
			Expect(lat.Count(lattice.Corner)).To(Equal(corners))
			Expect(lat.Len()).To(Equal(corners + secondary))
		},
		Entry("cubic 2x3x4", lattice.SimpleCubic, lattice.Cells{A: 2, B: 3, C: 4}, 60, 0),
		Entry("bcc 2x3x4", lattice.BCC, lattice.Cells{A: 2, B: 3, C: 4}, 60, 24),
		Entry("fcc 2x3x4", lattice.FCC, lattice.Cells{A: 2, B: 3, C: 4}, 60, 98),
		Entry("bcc planar", lattice.BCC, lattice.Cells{A: 0, B: 2, C: 2}, 9, 0),
		Entry("fcc planar", lattice.FCC, lattice.Cells{A: 0, B: 1, C: 1}, 4, 1),
		Entry("fcc point", lattice.FCC, lattice.Cells{}, 1, 0),
	)

	It("is deterministic across calls", func() {
		g := lattice.Geometry{A: 3, B: 4, C: 5, Alpha: 1.3, Beta: 1.4, Gamma: 1.9}
		n := lattice.Cells{A: 3, B: 2, C: 2}
		first, err := lattice.Generate(lattice.FCC, g, n)
		Expect(err).NotTo(HaveOccurred())
		second, err := lattice.Generate(lattice.FCC, g, n)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Sites).To(Equal(first.Sites))
	})

	It("fails on a degenerate cell without returning sites", func() {
		g := lattice.Geometry{A: 1, B: 1, C: 1, Alpha: 0.1, Beta: 2.0, Gamma: lattice.Degrees90}
		lat, err := lattice.Generate(lattice.BCC, g, one)
		Expect(err).To(MatchError(md.ErrInvalidGeometry))
		Expect(lat).To(BeNil())
	})

	It("rejects negative repeat counts", func() {
		_, err := lattice.GenerateCubic(lattice.SimpleCubic, 1.0, lattice.Cells{A: -1, B: 1, C: 1})
		Expect(err).To(MatchError(md.ErrInvalidInput))
	})

	It("rejects unknown kinds", func() {
		_, err := lattice.GenerateCubic(lattice.Kind(9), 1.0, one)
		Expect(err).To(MatchError(md.ErrUnknownKind))
	})

	It("records but does not apply an orientation", func() {
		rot := r3.NewRotation(math.Pi/2, r3.Vec{Z: 1})
		plain, err := lattice.GenerateCubic(lattice.FCC, length, one)
		Expect(err).NotTo(HaveOccurred())
		oriented, err := lattice.GenerateCubic(lattice.FCC, length, one, lattice.WithOrientation(rot))
		Expect(err).NotTo(HaveOccurred())

		Expect(oriented.Orientation).NotTo(BeNil())
		Expect(plain.Orientation).To(BeNil())
		Expect(oriented.Sites).To(Equal(plain.Sites))
	})

	It("computes the number density of the spanned cells", func() {
		lat, err := lattice.GenerateCubic(lattice.FCC, 2.0, lattice.Cells{A: 2, B: 2, C: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(lat.Len()).To(Equal(63))
		Expect(lat.Density()).To(BeNumerically("~", 63.0/64.0, 1e-9))
	})
})

var _ = Describe("ParseKind", func() {
	DescribeTable("known names",
		func(name string, want lattice.Kind) {
			k, err := lattice.ParseKind(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(k).To(Equal(want))
			Expect(k.String()).To(Equal(want.String()))
		},
		Entry("cubic", "cubic", lattice.SimpleCubic),
		Entry("upper BCC", "BCC", lattice.BCC),
		Entry("padded fcc", " fcc ", lattice.FCC),
	)

	It("fails on unknown names", func() {
		_, err := lattice.ParseKind("hcp")
		Expect(err).To(MatchError(md.ErrUnknownKind))
	})

	It("names roles", func() {
		Expect(lattice.Corner.String()).To(Equal("corner"))
		Expect(lattice.Center.String()).To(Equal("center"))
		Expect(lattice.Face.String()).To(Equal("face"))
	})
})
