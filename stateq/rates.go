package stateq

import (
	"math"

	"github.com/autocorr/gadex/core"
)

// collisionRates expands a partner's downward rate-coefficient table into a
// full nlev×nlev matrix of collision rates in s⁻¹ at the run's conditions:
// downward entries are the tabulated coefficients times the partner density,
// upward entries follow from detailed balance at the kinetic temperature.
// The temperature column is the grid point nearest Tkin; no interpolation
// and no partner blending (single chosen partner).
//
// crate[i][j] is the rate out of level i into level j; ctot[i] is the total
// collisional loss rate of level i.
func collisionRates(run *core.RunDef, part *core.CollisionPartner) (crate [][]float64, ctot []float64) {
	nlev := run.Mol.NLevels()
	crate = make([][]float64, nlev)
	for i := range crate {
		crate[i] = make([]float64, nlev)
	}

	it := nearestTemp(part.Temps, run.Tkin)
	for t := range part.Upper {
		up, lo := part.Upper[t], part.Lower[t]
		crate[up][lo] = part.Rates[t][it] * run.Density
	}

	// Upward rates by detailed balance on the level energy differences.
	for lo := 0; lo < nlev; lo++ {
		for up := lo + 1; up < nlev; up++ {
			if crate[up][lo] == 0 {
				continue
			}
			ediff := run.Mol.Levels[up].Energy - run.Mol.Levels[lo].Energy
			boltz := core.FK * ediff / run.Tkin
			if boltz >= 160.0 {
				continue // upward rate underflows
			}
			gup := run.Mol.Levels[up].Weight
			glo := run.Mol.Levels[lo].Weight
			crate[lo][up] = crate[up][lo] * gup / glo * math.Exp(-boltz)
		}
	}

	ctot = make([]float64, nlev)
	for i := 0; i < nlev; i++ {
		for j := 0; j < nlev; j++ {
			ctot[i] += crate[i][j]
		}
	}

	return crate, ctot
}

// nearestTemp returns the index of the grid temperature closest to tkin.
func nearestTemp(temps []float64, tkin float64) int {
	best := 0
	for i := 1; i < len(temps); i++ {
		if math.Abs(temps[i]-tkin) < math.Abs(temps[best]-tkin) {
			best = i
		}
	}

	return best
}
