package stateq

import "fmt"

// Defaults — single source of truth for zero-value solver behavior. The
// iteration bounds and tolerance follow RADEX.
const (
	// DefaultMinIter is the minimum number of iterations before the
	// convergence test may fire.
	DefaultMinIter = 10

	// DefaultMaxIter is the hard iteration ceiling; reaching it ends the
	// run as EXHAUSTED with a warning, never an error.
	DefaultMaxIter = 9999

	// DefaultTolerance is the mean fractional change of thick-line
	// excitation temperatures below which the run is converged.
	DefaultTolerance = 1.0e-6
)

// Optical-depth thresholds for the thick- and fat-line counters.
const (
	tauThick = 1.0e-2
	tauFat   = 1.0e5
)

// Under-relaxation blend: xpop ← relaxNew·xpop + relaxOld·xpopold.
const (
	relaxNew = 0.3
	relaxOld = 0.7
)

type options struct {
	minIter int
	maxIter int
	tol     float64
	reduce  bool
	seedPop []float64
	seedTex []float64
}

func defaultOptions() options {
	return options{
		minIter: DefaultMinIter,
		maxIter: DefaultMaxIter,
		tol:     DefaultTolerance,
	}
}

// Option customizes a Solver. Constructors panic on nonsensical parameters
// (programmer error); data-dependent validation happens in New.
type Option func(*options)

// WithMinIter sets the minimum iteration count before convergence may be
// declared. Panics if n < 1.
func WithMinIter(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("stateq: WithMinIter requires n ≥ 1, got %d", n))
	}

	return func(o *options) { o.minIter = n }
}

// WithMaxIter sets the iteration ceiling. Panics if n < 1.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("stateq: WithMaxIter requires n ≥ 1, got %d", n))
	}

	return func(o *options) { o.maxIter = n }
}

// WithTolerance sets the convergence criterion on the mean fractional
// excitation-temperature change of thick lines. Panics if tol ≤ 0.
func WithTolerance(tol float64) Option {
	if tol <= 0 {
		panic(fmt.Sprintf("stateq: WithTolerance requires tol > 0, got %g", tol))
	}

	return func(o *options) { o.tol = tol }
}

// WithReduction folds levels above the energy threshold 10·Tkin (in
// temperature units) into the retained block by exact elimination before
// each linear solve. This is a performance option: converged populations
// agree with the full solve to within round-off.
func WithReduction() Option {
	return func(o *options) { o.reduce = true }
}

// WithStart seeds the iteration with previously computed level populations
// and per-line excitation temperatures, skipping the background-seeded INIT
// pass. Slice lengths are validated against the molecule in New.
func WithStart(pop, tex []float64) Option {
	return func(o *options) {
		o.seedPop = pop
		o.seedTex = tex
	}
}
