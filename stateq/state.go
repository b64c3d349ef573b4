package stateq

// State is the mutable working set of one convergence run. It is created by
// the Solver at iteration zero, mutated every pass, and owned exclusively by
// that solve invocation; there is no package-level accumulator of any kind.
type State struct {
	// Pop and PopOld are the current and previous fractional level
	// populations. Pop sums to one (within round-off) and every entry is at
	// least core.MinPop after each pass.
	Pop, PopOld []float64

	// Tex is the excitation temperature per line, K.
	Tex []float64

	// TauL is the line-center optical depth per line from the most recent
	// matrix assembly.
	TauL []float64

	// Iter is the index of the last completed iteration (0 = INIT pass).
	Iter int

	// Thick and Fat count the lines with τ above 1e-2 and 1e5 on the most
	// recent matrix assembly.
	Thick, Fat int

	// Converged reports whether the convergence criterion fired before the
	// iteration ceiling.
	Converged bool
}

func newState(nlev, nline int) *State {
	return &State{
		Pop:    make([]float64, nlev),
		PopOld: make([]float64, nlev),
		Tex:    make([]float64, nline),
		TauL:   make([]float64, nline),
	}
}
