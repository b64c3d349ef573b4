// Package stateq solves the statistical-equilibrium level populations of a
// molecule under the escape-probability approximation.
//
// The solver runs a damped fixed-point iteration. Each pass assembles the
// (nlev+1)×(nlev+1) rate matrix (radiative terms weighted by the
// escape-probability-modulated radiation field of the previous pass,
// collisional terms from the chosen partner's rate table, and a
// normalization row that pins the total population to one), then solves the
// dense linear system, renormalizes, clamps populations to core.MinPop, and
// under-relaxes the update (0.3·new + 0.7·old) to damp oscillation.
// Excitation temperatures feed back into the next pass's source functions;
// their fractional change over optically thick lines is the convergence
// statistic.
//
// The iteration state machine is INIT (background-seeded matrix, no escape
// probability) → ITERATE → CONVERGED or EXHAUSTED. Convergence is tested
// only from DefaultMinIter onward and the loop never exceeds the iteration
// ceiling; exhaustion is reported as a warning on the Result, not an error,
// and the last populations are still returned.
//
// One Solver owns one solve; the only shared input is the read-only
// Molecule, so concurrent solves for different run definitions need no
// locking (see grid.Sweep).
package stateq
