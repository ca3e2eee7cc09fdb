// Package md provides the core types shared by the molecular-dynamics toolkit.
//
// The package defines the data that flows between the builders, the
// thermostats and the time-stepping loop:
//
//   - [System]: particle positions, velocities and masses, aligned by index
//   - [Potential]: opaque pair potential as a function of distance
//   - [Integrator]: advances a [System] by one time step
//   - [Metric] and [Observer]: hooks fed with a [Sample] after each step
//
// # Units
//
// Distances are in Angstroms, time in picoseconds, masses in grams per mole,
// temperature in Kelvin and energy in kcal/mol. See package units.
//
// # Errors
//
// All failures are local input-validation failures reported through the
// sentinel errors in this package and are matched with [errors.Is].
package md
