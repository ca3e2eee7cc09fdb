// Package viz renders simulations in the terminal.
//
// [Model] is a Bubble Tea program that advances an ensemble a few steps per
// frame and shows the particles, the thermodynamic state and a temperature
// history. [PlotSamples] draws stored runs with asciigraph.
//
// # Key Bindings
//
//	Space     - Pause/Resume
//	Up/Down   - Raise/lower the thermostat target by 5%
//	R         - Restore the initial configuration
//	X/Y       - Rotate the view
//	+/-       - Zoom
//	Q, Ctrl+C - Quit
package viz
