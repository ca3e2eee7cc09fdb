// Package units holds the physical constants and unit conversions used across
// the toolkit.
//
// Conventional units: distance in Angstroms, time in picoseconds, mass in
// grams per mole, temperature in Kelvin, energy in kcal/mol.
package units

const (
	// KBoltzmann is the Boltzmann constant in kcal/(mol K).
	KBoltzmann = 0.001987191

	// NAvogadro is Avogadro's number in 1/mol.
	NAvogadro = 6.022140857e23

	// KineticConversion converts g/mol (A/ps)^2 to kcal/mol.
	KineticConversion = 2.39e-3

	// AccelConversion converts a force per mass in kcal/(mol A) / (g/mol)
	// to an acceleration in A/ps^2.
	AccelConversion = 1.0 / KineticConversion

	// Angstrom3InCm3 is the volume of one cubic Angstrom in cm^3 (ml).
	Angstrom3InCm3 = 1e-24
)
