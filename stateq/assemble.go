package stateq

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/autocorr/gadex/core"
	"github.com/autocorr/gadex/escape"
)

// assemble fills the (nlev+1)×(nlev+1) rate matrix and right-hand side for
// the current iteration. Row i (i < nlev) is the equilibrium equation of
// level i: total out-rate on the diagonal, negated in-rates off-diagonal.
// Row nlev is the all-ones normalization row replacing one redundant
// equilibrium equation; its right-hand side carries the same round-off seed
// as the rest, and the post-solve renormalization removes the scale.
//
// On the INIT pass (iter 0) the radiative terms use the background
// radiation field directly, with no escape probability: the seed solution
// is the population set in equilibrium with the background. Later passes
// compute per-line optical depths from the current populations, blend the
// background with the line source function through β, and count thick
// (τ > 1e-2) and fat (τ > 1e5) lines.
func (s *Solver) assemble(st *State, iter int, m *mat.Dense, b *mat.VecDense) (nthick, nfat int, err error) {
	mol := s.run.Mol
	nlev := mol.NLevels()

	// Round-off seeding keeps the right-hand side nonzero; the singular
	// solve needs it to emit a usable null-space multiple (see luSolve).
	seed := core.Eps * s.run.TotDens
	for i := 0; i <= nlev; i++ {
		b.SetVec(i, seed)
		for j := 0; j <= nlev; j++ {
			m.Set(i, j, seed)
		}
	}

	for i := range mol.Lines {
		line := &mol.Lines[i]
		up, lo := line.Upper, line.Lower
		gul := mol.Levels[up].Weight / mol.Levels[lo].Weight
		xt := line.Xnu * line.Xnu * line.Xnu

		var exr float64
		if iter == 0 {
			etr := core.FK * line.Xnu / s.bg.TRad[i]
			if etr < 160.0 {
				exr = 1.0 / (math.Exp(etr) - 1.0)
			}
		} else {
			// Source function at the previous pass's excitation temperature.
			var bnutex float64
			if hnu := core.FK * line.Xnu / st.Tex[i]; hnu < 160.0 {
				bnutex = core.THC * xt / (math.Exp(hnu) - 1.0)
			}

			st.TauL[i] = s.cddv * (st.Pop[lo]*gul - st.Pop[up]) / (core.Fgaus * xt / line.Aul)
			if st.TauL[i] > tauThick {
				nthick++
			}
			if st.TauL[i] > tauFat {
				nfat++
			}

			beta, berr := escape.Beta(st.TauL[i], s.run.Geom)
			if berr != nil {
				return 0, 0, berr
			}
			bnu := s.bg.Intensity[i]*beta + (1.0-beta)*bnutex
			exr = bnu / (core.THC * xt)
		}

		// Standard four-term radiative contribution: spontaneous plus
		// stimulated emission out of the upper level, absorption out of the
		// lower level, and the matching off-diagonal couplings.
		a := line.Aul
		m.Set(up, up, m.At(up, up)+a*(1.0+exr))
		m.Set(lo, lo, m.At(lo, lo)+a*gul*exr)
		m.Set(up, lo, m.At(up, lo)-a*gul*exr)
		m.Set(lo, up, m.At(lo, up)-a*(1.0+exr))
	}

	// Collisional terms from the single chosen partner.
	for i := 0; i < nlev; i++ {
		m.Set(i, i, m.At(i, i)+s.ctot[i])
		for j := 0; j < nlev; j++ {
			if i != j {
				m.Set(i, j, m.At(i, j)-s.crate[j][i])
			}
		}
	}

	// Population conservation row.
	for j := 0; j <= nlev; j++ {
		m.Set(nlev, j, 1.0)
	}

	return nthick, nfat, nil
}
