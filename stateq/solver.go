package stateq

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/autocorr/gadex/core"
	"github.com/autocorr/gadex/radiation"
)

// Sentinel errors for the equilibrium solver.
var (
	// ErrNilRun indicates a nil *core.RunDef.
	ErrNilRun = errors.New("stateq: run definition is nil")

	// ErrSingular indicates the linear solution summed to zero or to a
	// non-finite total, or that an elimination block could not be
	// factorized. With validated input this points at degenerate rates,
	// not at the solver.
	ErrSingular = errors.New("stateq: singular rate matrix")

	// ErrBadSeed indicates WithStart slices whose lengths do not match the
	// molecule's level and line counts.
	ErrBadSeed = errors.New("stateq: seed dimensions do not match molecule")
)

// Solver computes statistical-equilibrium populations for one run
// definition. It is cheap to construct and single-use state is confined to
// the State created per Run call, so one Solver may Run repeatedly.
type Solver struct {
	run  *core.RunDef
	bg   *radiation.Field
	opts options

	// Collision rates at the run conditions, fixed across iterations.
	crate [][]float64
	ctot  []float64

	// cddv is the column density per unit velocity width, cm⁻² / (cm s⁻¹).
	cddv float64
}

// New prepares a Solver: background field, expanded collision rates, and
// option validation. The run definition must come from core.NewRunDef.
func New(run *core.RunDef, opts ...Option) (*Solver, error) {
	if run == nil {
		return nil, ErrNilRun
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.seedPop != nil || o.seedTex != nil {
		if len(o.seedPop) != run.Mol.NLevels() || len(o.seedTex) != run.Mol.NLines() {
			return nil, fmt.Errorf("%d levels, %d lines: %w", len(o.seedPop), len(o.seedTex), ErrBadSeed)
		}
	}

	part, err := run.Mol.Partner(run.Partner)
	if err != nil {
		return nil, err
	}
	crate, ctot := collisionRates(run, part)

	return &Solver{
		run:   run,
		bg:    radiation.Background(run.Tbg, run.Mol),
		opts:  o,
		crate: crate,
		ctot:  ctot,
		cddv:  run.Cdmol / (run.DeltaV * core.KmToCm),
	}, nil
}

// Solve is the convenience entry point: New followed by Run.
func Solve(ctx context.Context, run *core.RunDef, opts ...Option) (*Result, error) {
	s, err := New(run, opts...)
	if err != nil {
		return nil, err
	}

	return s.Run(ctx)
}

// Run drives the fixed-point iteration to convergence or exhaustion and
// returns the final populations with per-line observables. The context is
// checked between iterations only; an exhausted iteration budget is a
// warning on the Result, not an error.
func (s *Solver) Run(ctx context.Context) (*Result, error) {
	mol := s.run.Mol
	nlev := mol.NLevels()
	st := newState(nlev, mol.NLines())

	startIter := 0
	if s.opts.seedPop != nil {
		copy(st.Pop, s.opts.seedPop)
		copy(st.PopOld, s.opts.seedPop)
		copy(st.Tex, s.opts.seedTex)
		startIter = 1
	}

	m := mat.NewDense(nlev+1, nlev+1, nil)
	b := mat.NewVecDense(nlev+1, nil)

	var warnings []string
	for iter := startIter; iter <= s.opts.maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		nthick, nfat, err := s.assemble(st, iter, m, b)
		if err != nil {
			return nil, err
		}
		if err := s.solveStep(st, iter, m, b); err != nil {
			return nil, err
		}
		tsum := s.updateTex(st, iter)
		st.Iter = iter
		st.Thick, st.Fat = nthick, nfat

		if iter == 1 && nfat > 0 {
			warnings = append(warnings,
				fmt.Sprintf("some lines have very high optical depth (%d lines with tau > %.0e)", nfat, tauFat))
		}

		if iter >= s.opts.minIter {
			if nthick == 0 || tsum/float64(nthick) < s.opts.tol {
				st.Converged = true
				break
			}
		}
	}
	if !st.Converged {
		warnings = append(warnings,
			fmt.Sprintf("did not converge in %d iterations", s.opts.maxIter))
	}

	return s.result(st, warnings), nil
}

// solveStep solves the assembled linear system and folds the solution into
// the state: renormalize by the signed level sum, clamp to core.MinPop, and blend
// with the previous iterate (a no-op on the INIT pass, where old := new).
func (s *Solver) solveStep(st *State, iter int, m *mat.Dense, b *mat.VecDense) error {
	nlev := s.run.Mol.NLevels()

	x, err := s.solveLinear(m, b)
	if err != nil {
		return err
	}

	// The solution scale and sign are arbitrary (see luSolve); dividing by
	// the signed level sum cancels both.
	total := 0.0
	for i := 0; i < nlev; i++ {
		total += x[i]
	}
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return fmt.Errorf("level sum %g: %w", total, ErrSingular)
	}

	for i := 0; i < nlev; i++ {
		st.PopOld[i] = st.Pop[i]
		st.Pop[i] = math.Max(core.MinPop, x[i]/total)
	}
	if iter == 0 {
		copy(st.PopOld, st.Pop)
	}

	for i := 0; i < nlev; i++ {
		st.Pop[i] = relaxNew*st.Pop[i] + relaxOld*st.PopOld[i]
	}

	return nil
}

// solveLinear solves the full system through the tiny-pivot elimination, or
// routes to the collisionally-dominated block when reduction is enabled and
// applicable. The raw solution is an arbitrary signed multiple of the
// population vector; the caller normalizes.
func (s *Solver) solveLinear(m *mat.Dense, b *mat.VecDense) ([]float64, error) {
	nlev := s.run.Mol.NLevels()

	if s.opts.reduce {
		if nred := s.reducedCount(); nred > 0 && nred < nlev {
			return s.solveReduced(m, b, nred)
		}
	}

	n := nlev + 1
	a := make([][]float64, n)
	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			a[i][j] = m.At(i, j)
		}
		rhs[i] = b.AtVec(i)
	}

	return luSolve(a, rhs), nil
}

// updateTex recomputes per-line excitation temperatures from the new
// populations and returns the accumulated convergence statistic: the sum of
// fractional Tex changes over optically thick lines. Lines with an endpoint
// at the population floor keep their previous temperature (or the
// background radiation temperature on the INIT pass) to avoid a log of a
// non-positive ratio.
func (s *Solver) updateTex(st *State, iter int) float64 {
	mol := s.run.Mol

	tsum := 0.0
	for i := range mol.Lines {
		line := &mol.Lines[i]
		up, lo := line.Upper, line.Lower
		gu := mol.Levels[up].Weight
		gl := mol.Levels[lo].Weight

		atFloor := st.Pop[lo] <= core.MinPop || st.Pop[up] <= core.MinPop
		if iter == 0 {
			if atFloor {
				st.Tex[i] = s.bg.TRad[i]
			} else {
				st.Tex[i] = core.FK * line.Xnu / math.Log(st.Pop[lo]*gu/(st.Pop[up]*gl))
			}

			continue
		}

		thistex := st.Tex[i]
		if !atFloor {
			thistex = core.FK * line.Xnu / math.Log(st.Pop[lo]*gu/(st.Pop[up]*gl))
		}
		if st.TauL[i] > tauThick {
			tsum += math.Abs((thistex - st.Tex[i]) / thistex)
		}
		st.Tex[i] = 0.5 * (thistex + st.Tex[i])
	}

	return tsum
}
