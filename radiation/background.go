package radiation

import (
	"math"

	"github.com/autocorr/gadex/core"
)

// saturation is the hcν̃/kT exponent beyond which the Planck denominator
// overflows double precision for all practical purposes.
const saturation = 160.0

// Field is the background radiation seen by each radiative transition. It
// is computed once per run, before the first iteration, and read-only
// afterwards.
type Field struct {
	// Intensity is the background intensity per line, wavenumber form.
	Intensity []float64

	// TRad is the equivalent radiation temperature per line, K. For a pure
	// blackbody background this is uniformly the blackbody temperature.
	TRad []float64
}

// Background builds the blackbody background field at temperature tbg for
// every transition of mol. Pure function: no failure modes; saturated lines
// receive the core.Eps floor.
func Background(tbg float64, mol *core.Molecule) *Field {
	f := &Field{
		Intensity: make([]float64, mol.NLines()),
		TRad:      make([]float64, mol.NLines()),
	}
	for i := range mol.Lines {
		f.Intensity[i] = Planck(tbg, mol.Lines[i].Xnu)
		f.TRad[i] = tbg
	}

	return f
}

// Planck evaluates the blackbody intensity at temperature t (K) and
// wavenumber xnu (cm⁻¹). For hcν̃/kT ≥ 160 the result is the round-off
// floor core.Eps.
func Planck(t, xnu float64) float64 {
	etr := core.FK * xnu / t
	if etr >= saturation {
		return core.Eps
	}

	return core.THC * xnu * xnu * xnu / (math.Exp(etr) - 1.0)
}

// BrightnessTemp converts an intensity at wavenumber xnu to its
// Rayleigh–Jeans brightness temperature, K. Used for antenna temperatures
// of reported lines; may be negative for absorption against the background.
func BrightnessTemp(intensity, xnu float64) float64 {
	return intensity * core.FK / (core.THC * xnu * xnu)
}

// PlanckTemp inverts the Planck function: the temperature whose blackbody
// intensity at wavenumber xnu equals the given intensity. Zero intensity
// maps to zero temperature.
func PlanckTemp(intensity, xnu float64) float64 {
	if intensity == 0 {
		return 0
	}
	wh := core.THC*xnu*xnu*xnu/intensity + 1.0
	if wh <= 0 {
		return BrightnessTemp(intensity, xnu)
	}

	return core.FK * xnu / math.Log(wh)
}
