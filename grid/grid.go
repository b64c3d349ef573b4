package grid

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/autocorr/gadex/core"
	"github.com/autocorr/gadex/stateq"
)

// Sentinel errors for sweep construction.
var (
	// ErrBadAxis indicates an axis with a non-positive step count, an
	// inverted range, or a logarithmic axis with a non-positive bound.
	ErrBadAxis = errors.New("grid: invalid axis")
)

// Axis is one varied parameter: Steps values spanning [Min, Max], spaced
// linearly or logarithmically. Steps == 1 pins the axis at Min.
type Axis struct {
	Min, Max float64
	Steps    int
	Log      bool
}

// Fixed returns a single-valued axis.
func Fixed(v float64) Axis {
	return Axis{Min: v, Max: v, Steps: 1}
}

func (a Axis) validate(name string) error {
	if a.Steps < 1 {
		return fmt.Errorf("%s: %d steps: %w", name, a.Steps, ErrBadAxis)
	}
	if a.Steps > 1 && a.Max <= a.Min {
		return fmt.Errorf("%s: max %g not above min %g: %w", name, a.Max, a.Min, ErrBadAxis)
	}
	if a.Log && a.Min <= 0 {
		return fmt.Errorf("%s: log axis needs positive bounds: %w", name, ErrBadAxis)
	}

	return nil
}

// Values expands the axis into its grid values.
func (a Axis) Values() []float64 {
	if a.Steps == 1 {
		return []float64{a.Min}
	}

	vals := make([]float64, a.Steps)
	if a.Log {
		lo, span := math.Log10(a.Min), math.Log10(a.Max)-math.Log10(a.Min)
		for i := range vals {
			vals[i] = math.Pow(10, lo+span*float64(i)/float64(a.Steps-1))
		}

		return vals
	}
	for i := range vals {
		vals[i] = a.Min + (a.Max-a.Min)*float64(i)/float64(a.Steps-1)
	}

	return vals
}

// Point is one solved grid point.
type Point struct {
	Density, Tkin, Cdmol float64
	Result               *stateq.Result
}

// Sweep is a parameter-grid run over one molecule.
type Sweep struct {
	Mol     *core.Molecule
	Partner string
	Tbg     float64
	DeltaV  float64
	Geom    core.Geometry

	// Varied axes. Use Fixed for parameters held constant.
	Density Axis
	Tkin    Axis
	Cdmol   Axis

	// Workers bounds the solver concurrency; 0 means GOMAXPROCS.
	Workers int

	// Opts is passed through to every point's solver.
	Opts []stateq.Option
}

// Run solves every grid point and returns them in axis order: density
// outermost, then kinetic temperature, then column density. The first
// failing point cancels the remaining work.
func (s *Sweep) Run(ctx context.Context) ([]Point, error) {
	if err := s.Density.validate("density"); err != nil {
		return nil, err
	}
	if err := s.Tkin.validate("tkin"); err != nil {
		return nil, err
	}
	if err := s.Cdmol.validate("cdmol"); err != nil {
		return nil, err
	}

	dens := s.Density.Values()
	tkin := s.Tkin.Values()
	cdmol := s.Cdmol.Values()

	points := make([]Point, len(dens)*len(tkin)*len(cdmol))
	idx := 0
	for _, d := range dens {
		for _, tk := range tkin {
			for _, cd := range cdmol {
				points[idx] = Point{Density: d, Tkin: tk, Cdmol: cd}
				idx++
			}
		}
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range points {
		pt := &points[i]
		g.Go(func() error {
			run, err := core.NewRunDef(s.Mol, core.RunDef{
				Partner: s.Partner,
				Density: pt.Density,
				Tkin:    pt.Tkin,
				Tbg:     s.Tbg,
				Cdmol:   pt.Cdmol,
				DeltaV:  s.DeltaV,
				Geom:    s.Geom,
			})
			if err != nil {
				return fmt.Errorf("point n=%.3g T=%.3g N=%.3g: %w", pt.Density, pt.Tkin, pt.Cdmol, err)
			}

			res, err := stateq.Solve(ctx, run, s.Opts...)
			if err != nil {
				return fmt.Errorf("point n=%.3g T=%.3g N=%.3g: %w", pt.Density, pt.Tkin, pt.Cdmol, err)
			}
			pt.Result = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return points, nil
}
