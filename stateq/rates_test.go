package stateq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autocorr/gadex/core"
)

func TestNearestTemp(t *testing.T) {
	temps := []float64{10, 20, 40, 80}

	require.Equal(t, 0, nearestTemp(temps, 5))
	require.Equal(t, 1, nearestTemp(temps, 22))
	require.Equal(t, 2, nearestTemp(temps, 55))
	require.Equal(t, 3, nearestTemp(temps, 1000))
	// Ties keep the lower grid point.
	require.Equal(t, 0, nearestTemp(temps, 15))
}

func TestCollisionRates_DetailedBalance(t *testing.T) {
	mol := &core.Molecule{
		Name:   "db",
		Weight: 29.0,
		Levels: []core.Level{
			{Energy: 0.0, Weight: 1.0, Label: "0"},
			{Energy: 2.9750487, Weight: 3.0, Label: "1"},
		},
		Lines: []core.Transition{
			{Upper: 1, Lower: 0, Aul: 1e-5, Freq: 89.188526, Eup: 4.28, Xnu: 2.9750487},
		},
		Partners: []core.CollisionPartner{
			{Name: "H2", Temps: []float64{10.0, 30.0}, Upper: []int{1}, Lower: []int{0}, Rates: [][]float64{{2e-10, 4e-10}}},
		},
	}
	require.NoError(t, mol.Validate())

	run, err := core.NewRunDef(mol, core.RunDef{
		Partner: "H2",
		Density: 1e4,
		Tkin:    25.0, // nearest grid point is 30 K
		Tbg:     2.725,
		Cdmol:   1e13,
		DeltaV:  1.0,
		Geom:    core.Sphere,
	})
	require.NoError(t, err)

	part, err := mol.Partner("H2")
	require.NoError(t, err)

	crate, ctot := collisionRates(run, part)

	down := 4e-10 * run.Density
	require.Equal(t, down, crate[1][0])

	boltz := core.FK * 2.9750487 / run.Tkin
	wantUp := down * 3.0 * math.Exp(-boltz)
	require.InEpsilon(t, wantUp, crate[0][1], 1e-12)

	require.InEpsilon(t, down, ctot[1], 1e-12)
	require.InEpsilon(t, wantUp, ctot[0], 1e-12)
}

func TestCollisionRates_UpwardUnderflow(t *testing.T) {
	// A huge energy gap at a tiny kinetic temperature: the upward rate
	// underflows and must be left at zero rather than computed as garbage.
	mol := &core.Molecule{
		Name:   "gap",
		Weight: 29.0,
		Levels: []core.Level{
			{Energy: 0.0, Weight: 1.0, Label: "0"},
			{Energy: 5000.0, Weight: 3.0, Label: "1"},
		},
		Lines: []core.Transition{
			{Upper: 1, Lower: 0, Aul: 1e-5, Freq: 1.5e5, Eup: 7200.0, Xnu: 5000.0},
		},
		Partners: []core.CollisionPartner{
			{Name: "H2", Temps: []float64{20.0}, Upper: []int{1}, Lower: []int{0}, Rates: [][]float64{{1e-10}}},
		},
	}
	require.NoError(t, mol.Validate())

	run, err := core.NewRunDef(mol, core.RunDef{
		Partner: "H2",
		Density: 1e4,
		Tkin:    20.0,
		Tbg:     2.725,
		Cdmol:   1e13,
		DeltaV:  1.0,
		Geom:    core.Sphere,
	})
	require.NoError(t, err)

	part, err := mol.Partner("H2")
	require.NoError(t, err)

	crate, _ := collisionRates(run, part)
	require.Equal(t, 0.0, crate[0][1])
	require.Greater(t, crate[1][0], 0.0)
}
