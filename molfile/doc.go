// Package molfile reads molecular data files in the LAMDA format: level
// energies and statistical weights, radiative transitions with Einstein A
// coefficients, and per-partner collisional rate coefficient tables on a
// temperature grid.
//
// The format is line-oriented. Lines beginning with "!" are comments that
// double as section headers; the reader skips them and consumes the data
// records in their fixed order. Level and transition indices are 1-based in
// the file and converted to 0-based on read. The parsed molecule is
// validated before it is returned, so a non-nil result is safe to hand to
// core.NewRunDef.
//
//	mol, err := molfile.ReadFile("hco+.dat")
//	if err != nil { ... }
package molfile
