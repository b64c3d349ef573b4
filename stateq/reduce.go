package stateq

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/autocorr/gadex/core"
)

// Matrix reduction: levels with energies below ~10·Tkin are collisionally
// dominated and carry essentially all the population; the sparse tail of
// higher levels only matters through radiative cascade into the retained
// block. Rather than approximate that cascade, the high levels are
// eliminated exactly (a Schur complement on their own equilibrium rows) and
// recovered by back-substitution, so the reduced path reproduces the full
// solve to round-off while factorizing an (nred+1) system instead of
// (nlev+1).

// reducedCount returns how many of the lowest levels fall under the energy
// threshold 10·Tkin (in energy units). Levels are energy-ordered by the
// data format.
func (s *Solver) reducedCount() int {
	limit := 10.0 * s.run.Tkin / core.FK
	n := 0
	for _, lev := range s.run.Mol.Levels {
		if lev.Energy < limit {
			n++
		}
	}

	return n
}

// solveReduced eliminates levels nred..nlev-1 from the assembled system and
// solves the retained block (levels 0..nred-1 plus the normalization row
// and slack column), then back-substitutes the eliminated populations.
func (s *Solver) solveReduced(m *mat.Dense, b *mat.VecDense, nred int) ([]float64, error) {
	nlev := s.run.Mol.NLevels()
	nR := nred + 1    // retained variables: low levels + slack
	nE := nlev - nred // eliminated variables: high levels

	// Retained index k maps to original column/row rIdx(k).
	rIdx := func(k int) int {
		if k < nred {
			return k
		}

		return nlev // slack column / normalization row
	}

	aRR := mat.NewDense(nR, nR, nil)
	aRE := mat.NewDense(nR, nE, nil)
	aER := mat.NewDense(nE, nR, nil)
	aEE := mat.NewDense(nE, nE, nil)
	bR := mat.NewVecDense(nR, nil)
	bE := mat.NewVecDense(nE, nil)

	for i := 0; i < nR; i++ {
		oi := rIdx(i)
		bR.SetVec(i, b.AtVec(oi))
		for j := 0; j < nR; j++ {
			aRR.Set(i, j, m.At(oi, rIdx(j)))
		}
		for j := 0; j < nE; j++ {
			aRE.Set(i, j, m.At(oi, nred+j))
		}
	}
	for i := 0; i < nE; i++ {
		oi := nred + i
		bE.SetVec(i, b.AtVec(oi))
		for j := 0; j < nR; j++ {
			aER.Set(i, j, m.At(oi, rIdx(j)))
		}
		for j := 0; j < nE; j++ {
			aEE.Set(i, j, m.At(oi, nred+j))
		}
	}

	// x_E = A_EE⁻¹ (b_E − A_ER x_R), substituted into the retained rows.
	var luE mat.LU
	luE.Factorize(aEE)
	xER := mat.NewDense(nE, nR, nil)
	if err := luE.SolveTo(xER, false, aER); err != nil {
		if _, near := err.(mat.Condition); !near {
			return nil, fmt.Errorf("eliminated block: %v: %w", err, ErrSingular)
		}
	}
	yE := mat.NewVecDense(nE, nil)
	if err := luE.SolveVecTo(yE, false, bE); err != nil {
		if _, near := err.(mat.Condition); !near {
			return nil, fmt.Errorf("eliminated block: %v: %w", err, ErrSingular)
		}
	}

	var schur mat.Dense
	schur.Mul(aRE, xER)
	schur.Sub(aRR, &schur)

	corr := mat.NewVecDense(nR, nil)
	corr.MulVec(aRE, yE)
	rhs := mat.NewVecDense(nR, nil)
	rhs.SubVec(bR, corr)

	// The Schur system inherits the full system's exact singularity, so it
	// goes through the tiny-pivot elimination rather than a general LU.
	sch := make([][]float64, nR)
	rhsv := make([]float64, nR)
	for i := 0; i < nR; i++ {
		sch[i] = make([]float64, nR)
		for j := 0; j < nR; j++ {
			sch[i][j] = schur.At(i, j)
		}
		rhsv[i] = rhs.AtVec(i)
	}
	xR := mat.NewVecDense(nR, luSolve(sch, rhsv))

	// Back-substitution of the eliminated populations.
	xE := mat.NewVecDense(nE, nil)
	xE.MulVec(xER, xR)
	xE.SubVec(yE, xE)

	x := make([]float64, nlev+1)
	for k := 0; k < nR; k++ {
		x[rIdx(k)] = xR.AtVec(k)
	}
	for k := 0; k < nE; k++ {
		x[nred+k] = xE.AtVec(k)
	}

	return x, nil
}
