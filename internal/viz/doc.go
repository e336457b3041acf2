// Package viz renders phase states in the terminal.
//
// [RenderState] draws a table of species fractions with bars, and
// [Browser] is a Bubble Tea program that steps through the snapshots of a
// stored checkpoint, restoring each into a phase before drawing it.
//
// # Key Bindings
//
//	←/h, →/l - Previous / next snapshot
//	g, G     - First / last snapshot
//	b        - Toggle mole / mass basis
//	q        - Quit
package viz
