// Package gadex is a non-LTE radiative transfer solver for interstellar
// molecular lines, in the style of RADEX (van der Tak et al. 2007).
//
// Given a molecule's energy-level structure, radiative rates and collisional
// rate coefficients, plus the physical conditions of a cloud (density,
// kinetic temperature, column density, line width, background radiation,
// geometry), gadex computes the statistical-equilibrium level populations
// with an escape-probability treatment of radiative trapping, and from them
// the excitation temperatures, optical depths and intensities of the lines.
//
// The library is organized in small subpackages:
//
//	core/      — molecular data model, run definition, physical constants
//	escape/    — photon escape probability β(τ) for sphere, LVG and slab
//	radiation/ — blackbody background field and brightness conversions
//	stateq/    — rate-matrix assembly, linear solve and convergence loop
//	molfile/   — reader for LAMDA molecular data files
//	grid/      — parameter sweeps over density, temperature and column
//	cmd/gadex  — command-line driver around the above
//
// A minimal run:
//
//	mol, err := molfile.ReadFile("hco+.dat")
//	run, err := core.NewRunDef(mol, core.RunDef{
//		Partner: "H2", Density: 1e4, Tkin: 20,
//		Tbg: 2.725, Cdmol: 1e13, DeltaV: 1.0, Geom: core.Sphere,
//	})
//	res, err := stateq.Solve(context.Background(), run)
//
// All solver state is owned by the caller's solve invocation; molecules are
// immutable after loading, so concurrent solves over a parameter grid are
// safe and embarrassingly parallel (see grid.Sweep).
package gadex
