package stateq

import (
	"math"

	"github.com/autocorr/gadex/core"
	"github.com/autocorr/gadex/radiation"
)

// gaussArea is the integral of a normalized Gaussian over its FWHM scale,
// entering the velocity-integrated fluxes.
const gaussArea = 1.0645

// Result is the outcome of one solve: final populations, per-line
// excitation state, convergence status and any non-fatal warnings.
type Result struct {
	// Pop is the fractional population per level; sums to one within
	// round-off, floored at core.MinPop.
	Pop []float64

	// Tex and TauL are the excitation temperature (K) and line-center
	// optical depth per radiative transition, for all lines regardless of
	// the reporting window.
	Tex, TauL []float64

	// Iterations is the index of the last completed iteration; Converged
	// distinguishes CONVERGED from EXHAUSTED runs.
	Iterations int
	Converged  bool

	// Warnings carries non-fatal diagnostics: very high optical depths seen
	// on the first iterate pass, or iteration-budget exhaustion.
	Warnings []string

	// Lines holds the observable quantities of the transitions inside the
	// run's frequency window.
	Lines []Line
}

// Line is the predicted emission of a single transition.
type Line struct {
	// Index is the transition's position in Molecule.Lines.
	Index int

	// UpperLabel and LowerLabel are the quantum designations of the levels.
	UpperLabel, LowerLabel string

	// Freq is the line frequency, GHz; Eup the upper-level energy, K.
	Freq, Eup float64

	// Tex is the excitation temperature, K; Tau the line-center optical depth.
	Tex, Tau float64

	// TRad is the Rayleigh–Jeans radiation temperature of the line against
	// the background, K. Negative for absorption.
	TRad float64

	// FluxKkms is the velocity-integrated flux, K km s⁻¹; FluxCgs the same
	// in erg cm⁻² s⁻¹.
	FluxKkms, FluxCgs float64
}

// result assembles the Result from the final state: optical depths
// recomputed from the converged populations, and line observables built by
// blending the source function with the attenuated background.
func (s *Solver) result(st *State, warnings []string) *Result {
	mol := s.run.Mol

	res := &Result{
		Pop:        append([]float64(nil), st.Pop...),
		Tex:        append([]float64(nil), st.Tex...),
		TauL:       make([]float64, mol.NLines()),
		Iterations: st.Iter,
		Converged:  st.Converged,
		Warnings:   warnings,
	}

	for i := range mol.Lines {
		line := &mol.Lines[i]
		up, lo := line.Upper, line.Lower
		gul := mol.Levels[up].Weight / mol.Levels[lo].Weight
		xt := line.Xnu * line.Xnu * line.Xnu

		tau := s.cddv * (st.Pop[lo]*gul - st.Pop[up]) / (core.Fgaus * xt / line.Aul)
		res.TauL[i] = tau

		if !s.run.InWindow(line.Freq) {
			continue
		}

		// Emergent intensity: source function filling in what the
		// attenuated background leaves.
		ftau := math.Exp(-tau)
		toti := s.bg.Intensity[i]*ftau + radiation.Planck(st.Tex[i], line.Xnu)*(1.0-ftau)
		trad := radiation.BrightnessTemp(toti-s.bg.Intensity[i], line.Xnu)

		res.Lines = append(res.Lines, Line{
			Index:      i,
			UpperLabel: mol.Levels[up].Label,
			LowerLabel: mol.Levels[lo].Label,
			Freq:       line.Freq,
			Eup:        line.Eup,
			Tex:        st.Tex[i],
			Tau:        tau,
			TRad:       trad,
			FluxKkms:   gaussArea * s.run.DeltaV * trad,
			FluxCgs:    core.Fgaus * core.KBoltz * s.run.DeltaV * core.KmToCm * trad * xt,
		})
	}

	return res
}
