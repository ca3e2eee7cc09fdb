// Package thermostat implements temperature-control strategies applied to a
// velocity field once per simulation step.
//
// Every strategy satisfies Thermostat. ScaleVelocities never mutates its
// input; it returns a new, index-aligned velocity slice. Stochastic
// strategies draw only from the *rand.Rand handed to them, so a fixed seed
// reproduces a run exactly.
//
//	th, _ := thermostat.NewAndersen(300, 0.001, 10)
//	v, err := th.ScaleVelocities(sys.Velocities, sys.Masses, rnd)
//
// Available strategies:
//
//   - Andersen: stochastic collisions with a Maxwell-Boltzmann heat bath
//   - Berendsen: deterministic weak-coupling rescale
//   - None: passthrough for constant-energy runs
package thermostat
