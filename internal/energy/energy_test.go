package energy

import (
	"math"
	"testing"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// Fixture drawn from a Mersenne Twister seeded with 0: ten uniform masses
// followed by ten Gaussian velocity triples.
var (
	fixtureMasses = []float64{
		0.5488135039273248,
		0.7151893663724195,
		0.6027633760716439,
		0.5448831829968969,
		0.4236547993389047,
		0.6458941130666561,
		0.4375872112626925,
		0.8917730007820798,
		0.9636627605010293,
		0.3834415188257777,
	}
	fixtureVelocities = []r3.Vec{
		{X: 0.144043571160878, Y: 1.454273506962975, Z: 0.7610377251469934},
		{X: 0.12167501649282841, Y: 0.44386323274542566, Z: 0.33367432737426683},
		{X: 1.4940790731576061, Y: -0.20515826376580087, Z: 0.31306770165090136},
		{X: -0.8540957393017248, Y: -2.5529898158340787, Z: 0.6536185954403606},
		{X: 0.8644361988595057, Y: -0.7421650204064419, Z: 2.2697546239876076},
		{X: -1.4543656745987648, Y: 0.04575851730144607, Z: -0.1871838500258336},
		{X: 1.5327792143584575, Y: 1.469358769900285, Z: 0.1549474256969163},
		{X: 0.37816251960217356, Y: -0.8877857476301128, Z: -1.980796468223927},
		{X: -0.3479121493261526, Y: 0.15634896910398005, Z: 1.2302906807277207},
		{X: 1.2023798487844113, Y: -0.3873268174079523, Z: -0.30230275057533557},
	}
	// 10x10 Gaussian matrix from the same generator seeded with 0.
	fixturePairwise = [][]float64{
		{1.764052345967664, 0.4001572083672233, 0.9787379841057392, 2.240893199201458, 1.8675579901499675, -0.977277879876411, 0.9500884175255894, -0.1513572082976979, -0.10321885179355784, 0.41059850193837233},
		{0.144043571160878, 1.454273506962975, 0.7610377251469934, 0.12167501649282841, 0.44386323274542566, 0.33367432737426683, 1.4940790731576061, -0.20515826376580087, 0.31306770165090136, -0.8540957393017248},
		{-2.5529898158340787, 0.6536185954403606, 0.8644361988595057, -0.7421650204064419, 2.2697546239876076, -1.4543656745987648, 0.04575851730144607, -0.1871838500258336, 1.5327792143584575, 1.469358769900285},
		{0.1549474256969163, 0.37816251960217356, -0.8877857476301128, -1.980796468223927, -0.3479121493261526, 0.15634896910398005, 1.2302906807277207, 1.2023798487844113, -0.3873268174079523, -0.30230275057533557},
		{-1.0485529650670926, -1.4200179371789752, -1.7062701906250126, 1.9507753952317897, -0.5096521817516535, -0.4380743016111864, -1.2527953600499262, 0.7774903558319101, -1.6138978475579515, -0.2127402802139687},
		{-0.8954665611936756, 0.386902497859262, -0.510805137568873, -1.180632184122412, -0.028182228338654868, 0.42833187053041766, 0.06651722238316789, 0.3024718977397814, -0.6343220936809636, -0.3627411659871381},
		{-0.672460447775951, -0.3595531615405413, -0.813146282044454, -1.7262826023316769, 0.17742614225375283, -0.4017809362082619, -1.6301983469660446, 0.4627822555257742, -0.9072983643832422, 0.05194539579613895},
		{0.7290905621775369, 0.12898291075741067, 1.1394006845433007, -1.2348258203536526, 0.402341641177549, -0.6848100909403132, -0.8707971491818818, -0.5788496647644155, -0.31155253212737266, 0.05616534222974544},
		{-1.1651498407833565, 0.9008264869541871, 0.46566243973045984, -1.5362436862772237, 1.4882521937955997, 1.8958891760305832, 1.1787795711596507, -0.17992483581235091, -1.0707526215105425, 1.0544517269311366},
		{-0.40317694697317963, 1.2224450703824274, 0.2082749780768603, 0.9766390364837128, 0.3563663971744019, 0.7065731681919482, 0.010500020720820478, 1.7858704939058352, 0.12691209270361992, 0.40198936344470165},
	}
)

func relClose(t *testing.T, want, got float64) {
	t.Helper()
	assert.InDelta(t, 0, (got-want)/want, 1e-6, "want %.12g, got %.12g", want, got)
}

func TestKinetic_Golden(t *testing.T) {
	ke, err := Kinetic(fixtureVelocities, fixtureMasses)
	require.NoError(t, err)
	relClose(t, 0.0248751709907, ke)
}

func TestTemperature_Golden(t *testing.T) {
	temp, err := Temperature(fixtureVelocities, fixtureMasses)
	require.NoError(t, err)
	relClose(t, 0.83451703068, temp)
}

func TestPotential_Golden(t *testing.T) {
	relClose(t, 40.485290778709988, Potential(fixturePairwise))
}

func TestKinetic_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		v      []r3.Vec
		masses []float64
	}{
		{"length mismatch", []r3.Vec{{X: 1}}, []float64{1, 2}},
		{"zero mass", []r3.Vec{{X: 1}}, []float64{0}},
		{"negative mass", []r3.Vec{{X: 1}, {Y: 1}}, []float64{1, -1}},
		{"NaN mass", []r3.Vec{{X: 1}}, []float64{math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Kinetic(tt.v, tt.masses)
			assert.ErrorIs(t, err, md.ErrInvalidInput)
			_, err = Temperature(tt.v, tt.masses)
			assert.ErrorIs(t, err, md.ErrInvalidInput)
		})
	}
}

func TestTemperature_Empty(t *testing.T) {
	_, err := Temperature(nil, nil)
	assert.ErrorIs(t, err, md.ErrInvalidInput)
}

func TestTemperature_LinearInSpeed(t *testing.T) {
	base, err := Temperature(fixtureVelocities, fixtureMasses)
	require.NoError(t, err)

	scaled := make([]r3.Vec, len(fixtureVelocities))
	for i, v := range fixtureVelocities {
		scaled[i] = r3.Scale(3, v)
	}
	got, err := Temperature(scaled, fixtureMasses)
	require.NoError(t, err)
	assert.InDelta(t, 3*base, got, 1e-12)
}

func TestPairMatrix(t *testing.T) {
	pos := []r3.Vec{{}, {X: 1}, {X: 3}}
	u := PairMatrix(pos, func(r float64) float64 { return -r })

	require.Len(t, u, 3)
	for i := range u {
		assert.Zero(t, u[i][i])
		for j := range u {
			assert.Equal(t, u[i][j], u[j][i])
		}
	}
	assert.Equal(t, -1.0, u[0][1])
	assert.Equal(t, -3.0, u[0][2])
	assert.Equal(t, -2.0, u[1][2])
	assert.InDelta(t, 6.0, Potential(u), 1e-12)
}

func TestObserve(t *testing.T) {
	sys, err := md.NewSystem([]r3.Vec{{}, {X: 2}}, []float64{1, 1})
	require.NoError(t, err)
	sys.Velocities[0] = r3.Vec{X: 1}

	s, err := Observe(sys, func(r float64) float64 { return 1 / r }, 3, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Step)
	assert.Equal(t, 0.5, s.Time)
	assert.InDelta(t, 0.5, s.Potential, 1e-12)
	assert.Greater(t, s.Kinetic, 0.0)
	assert.InDelta(t, s.Kinetic+s.Potential, s.Total(), 1e-15)
}
