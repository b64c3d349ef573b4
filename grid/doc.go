// Package grid sweeps the excitation solver over a parameter grid.
//
// A Sweep holds the fixed run parameters (molecule, partner, background and
// line width) and up to three varied axes: collision-partner density,
// kinetic temperature and column density. Points are solved concurrently
// with a bounded worker pool; a failing point cancels the sweep and its
// error is returned.
//
// The resulting points can be rendered to an HTML chart of excitation
// temperature and optical depth against density, one series per varied
// temperature.
package grid
