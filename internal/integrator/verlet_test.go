package integrator

import (
	"testing"

	"github.com/san-kum/mdsim/internal/md"
	"github.com/san-kum/mdsim/internal/potential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func argonPair(t *testing.T, separation float64) (*md.System, md.Potential) {
	t.Helper()
	pot, err := potential.LJ("Ar")
	require.NoError(t, err)
	sys, err := md.NewSystem([]r3.Vec{{}, {X: separation}}, []float64{39.948, 39.948})
	require.NoError(t, err)
	return sys, pot
}

func momentum(sys *md.System) r3.Vec {
	var p r3.Vec
	for i, v := range sys.Velocities {
		p = r3.Add(p, r3.Scale(sys.Masses[i], v))
	}
	return p
}

func TestIntegrators_FreeFlight(t *testing.T) {
	for _, kind := range []string{"verlet", "leapfrog"} {
		t.Run(kind, func(t *testing.T) {
			integ, err := New(kind)
			require.NoError(t, err)
			sys, err := md.NewSystem([]r3.Vec{{X: 1}}, []float64{1})
			require.NoError(t, err)
			sys.Velocities[0] = r3.Vec{X: 2, Y: -1}

			for i := 0; i < 10; i++ {
				require.NoError(t, integ.Step(sys, nil, 0.1))
			}
			assert.InDelta(t, 3.0, sys.Positions[0].X, 1e-12)
			assert.InDelta(t, -1.0, sys.Positions[0].Y, 1e-12)
			assert.Equal(t, r3.Vec{X: 2, Y: -1}, sys.Velocities[0])
		})
	}
}

func TestIntegrators_Attraction(t *testing.T) {
	for _, kind := range []string{"verlet", "leapfrog"} {
		t.Run(kind, func(t *testing.T) {
			integ, err := New(kind)
			require.NoError(t, err)
			sys, pot := argonPair(t, 5.0)

			for i := 0; i < 20; i++ {
				require.NoError(t, integ.Step(sys, pot, 0.01))
			}
			d := r3.Norm(r3.Sub(sys.Positions[1], sys.Positions[0]))
			assert.Less(t, d, 5.0, "particles beyond the well attract")
			assert.InDelta(t, 0, r3.Norm(momentum(sys)), 1e-9)
			assert.True(t, sys.IsFinite())
		})
	}
}

func TestIntegrators_Repulsion(t *testing.T) {
	integ := NewVelocityVerlet()
	sys, pot := argonPair(t, 3.2)
	require.NoError(t, integ.Step(sys, pot, 0.001))
	assert.Less(t, sys.Velocities[0].X, 0.0)
	assert.Greater(t, sys.Velocities[1].X, 0.0)
}

func TestVelocityVerlet_CacheInvalidation(t *testing.T) {
	cached := NewVelocityVerlet()
	fresh := NewVelocityVerlet()
	a, pot := argonPair(t, 4.5)
	b, _ := argonPair(t, 4.5)

	require.NoError(t, cached.Step(a, pot, 0.01))
	// moving the particles externally must not reuse stale accelerations
	a.Positions[1] = r3.Vec{X: 4.0}
	b.Positions[1] = r3.Vec{X: 4.0}
	b.Positions[0] = a.Positions[0]
	b.Velocities = md.CloneVecs(a.Velocities)

	require.NoError(t, cached.Step(a, pot, 0.01))
	require.NoError(t, fresh.Step(b, pot, 0.01))
	assert.Equal(t, b.Positions, a.Positions)
	assert.Equal(t, b.Velocities, a.Velocities)
}

func TestAccelerations(t *testing.T) {
	pot := func(r float64) float64 { return r * r }
	acc := Accelerations([]r3.Vec{{}, {X: 2}}, []float64{1, 2}, pot)
	// dU/dr = 2r = 4, pulling the pair together
	assert.Greater(t, acc[0].X, 0.0)
	assert.Less(t, acc[1].X, 0.0)
	assert.InDelta(t, -2*acc[1].X, acc[0].X, 1e-6)

	assert.Equal(t, []r3.Vec{{}, {}}, Accelerations([]r3.Vec{{}, {X: 1}}, []float64{1, 1}, nil))
}

func TestStep_Invalid(t *testing.T) {
	sys, pot := argonPair(t, 4)
	assert.ErrorIs(t, NewVelocityVerlet().Step(sys, pot, 0), md.ErrInvalidInput)
	sys.Masses[0] = 0
	assert.ErrorIs(t, NewLeapfrog().Step(sys, pot, 0.01), md.ErrInvalidInput)

	_, err := New("rk4")
	assert.ErrorIs(t, err, md.ErrUnknownKind)
}

func BenchmarkVelocityVerlet(b *testing.B) {
	pot, _ := potential.LJ("Ar")
	positions := make([]r3.Vec, 64)
	for i := range positions {
		positions[i] = r3.Vec{X: float64(i%4) * 4, Y: float64(i/4%4) * 4, Z: float64(i/16) * 4}
	}
	sys, _ := md.NewSystem(positions, md.UniformMasses(64, 39.948))
	integ := NewVelocityVerlet()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = integ.Step(sys, pot, 0.001)
	}
}
