package grid_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autocorr/gadex/core"
	"github.com/autocorr/gadex/grid"
)

func testMol(t *testing.T) *core.Molecule {
	t.Helper()
	mol := &core.Molecule{
		Name:   "sweep2",
		Weight: 29.0,
		Levels: []core.Level{
			{Energy: 0.0, Weight: 1.0, Label: "0"},
			{Energy: 2.9750487, Weight: 3.0, Label: "1"},
		},
		Lines: []core.Transition{
			{Upper: 1, Lower: 0, Aul: 1e-5, Freq: 89.188526, Eup: 4.28, Xnu: 2.9750487},
		},
		Partners: []core.CollisionPartner{
			{Name: "H2", Temps: []float64{10.0, 20.0, 40.0}, Upper: []int{1}, Lower: []int{0}, Rates: [][]float64{{1.2e-10, 1e-10, 8e-11}}},
		},
	}
	require.NoError(t, mol.Validate())

	return mol
}

func TestAxis_Values(t *testing.T) {
	require.Equal(t, []float64{5.0}, grid.Fixed(5.0).Values())

	lin := grid.Axis{Min: 10, Max: 30, Steps: 3}
	require.Equal(t, []float64{10, 20, 30}, lin.Values())

	log := grid.Axis{Min: 1e2, Max: 1e6, Steps: 3, Log: true}
	vals := log.Values()
	require.Len(t, vals, 3)
	require.InEpsilon(t, 1e2, vals[0], 1e-12)
	require.InEpsilon(t, 1e4, vals[1], 1e-12)
	require.InEpsilon(t, 1e6, vals[2], 1e-12)
}

func TestSweep_Run(t *testing.T) {
	sweep := &grid.Sweep{
		Mol:     testMol(t),
		Partner: "H2",
		Tbg:     2.725,
		DeltaV:  1.0,
		Geom:    core.LVG,
		Density: grid.Axis{Min: 1e3, Max: 1e6, Steps: 4, Log: true},
		Tkin:    grid.Axis{Min: 10, Max: 40, Steps: 2},
		Cdmol:   grid.Fixed(1e13),
		Workers: 2,
	}

	points, err := sweep.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 8)

	for _, pt := range points {
		require.NotNil(t, pt.Result)
		require.True(t, pt.Result.Converged)
	}

	// Axis order: density outermost, tkin inner.
	require.InEpsilon(t, 1e3, points[0].Density, 1e-12)
	require.Equal(t, 10.0, points[0].Tkin)
	require.Equal(t, 40.0, points[1].Tkin)
	require.InEpsilon(t, 1e4, points[2].Density, 1e-12)

	// Excitation rises with density toward thermalization.
	lastDens := points[len(points)-2] // density 1e6, tkin 10
	firstDens := points[0]
	require.Greater(t, lastDens.Result.Tex[0], firstDens.Result.Tex[0])
}

func TestSweep_BadAxis(t *testing.T) {
	sweep := &grid.Sweep{
		Mol:     testMol(t),
		Partner: "H2",
		Tbg:     2.725,
		DeltaV:  1.0,
		Geom:    core.Sphere,
		Density: grid.Axis{Min: 1e3, Max: 1e2, Steps: 4},
		Tkin:    grid.Fixed(20),
		Cdmol:   grid.Fixed(1e13),
	}

	_, err := sweep.Run(context.Background())
	require.ErrorIs(t, err, grid.ErrBadAxis)
}

func TestSweep_PointErrorCancels(t *testing.T) {
	sweep := &grid.Sweep{
		Mol:     testMol(t),
		Partner: "CO", // not a partner of the molecule
		Tbg:     2.725,
		DeltaV:  1.0,
		Geom:    core.Sphere,
		Density: grid.Fixed(1e4),
		Tkin:    grid.Fixed(20),
		Cdmol:   grid.Fixed(1e13),
	}

	_, err := sweep.Run(context.Background())
	require.ErrorIs(t, err, core.ErrUnknownPartner)
}

func TestChart(t *testing.T) {
	sweep := &grid.Sweep{
		Mol:     testMol(t),
		Partner: "H2",
		Tbg:     2.725,
		DeltaV:  1.0,
		Geom:    core.LVG,
		Density: grid.Axis{Min: 1e3, Max: 1e5, Steps: 3, Log: true},
		Tkin:    grid.Axis{Min: 10, Max: 40, Steps: 2},
		Cdmol:   grid.Fixed(1e13),
	}
	points, err := sweep.Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, grid.Chart(&buf, points, 0, "sweep2 89 GHz"))
	html := buf.String()
	require.Contains(t, html, "sweep2 89 GHz")
	require.Contains(t, html, "excitation temperature")

	require.ErrorIs(t, grid.Chart(&buf, nil, 0, "empty"), grid.ErrBadChart)
	require.ErrorIs(t, grid.Chart(&buf, points, 5, "bad line"), grid.ErrBadChart)
}
