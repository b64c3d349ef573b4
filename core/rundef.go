package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for run-definition validation.
var (
	// ErrBadDensity indicates a non-positive collision-partner or total density.
	ErrBadDensity = errors.New("core: density must be positive")

	// ErrBadTemperature indicates a non-positive kinetic temperature or a
	// negative background temperature.
	ErrBadTemperature = errors.New("core: temperature out of range")

	// ErrBadColumn indicates a non-positive column density.
	ErrBadColumn = errors.New("core: column density must be positive")

	// ErrBadLineWidth indicates a non-positive line width.
	ErrBadLineWidth = errors.New("core: line width must be positive")

	// ErrBadWindow indicates a frequency window with FreqMin > FreqMax.
	ErrBadWindow = errors.New("core: invalid frequency window")
)

// RunDef is the immutable definition of one physical scenario: which
// molecule, which collision partner at what density, and the cloud
// conditions. Build it with NewRunDef, which validates every field once so
// the solver's hot loop never re-checks.
type RunDef struct {
	// Mol is the validated molecule this run solves for.
	Mol *Molecule

	// Partner names the collision partner whose rate table drives the run.
	Partner string

	// Density is the partner number density, cm⁻³.
	Density float64

	// TotDens is the total gas density entering the round-off seeding of
	// the rate matrix, cm⁻³. Defaults to Density when zero.
	TotDens float64

	// Tkin is the kinetic temperature, K.
	Tkin float64

	// Tbg is the background blackbody temperature, K (2.725 for the CMB).
	Tbg float64

	// Cdmol is the molecular column density, cm⁻².
	Cdmol float64

	// DeltaV is the FWHM line width, km s⁻¹.
	DeltaV float64

	// FreqMin and FreqMax bound the frequency window (GHz) of reported
	// lines. FreqMax == 0 means no upper bound.
	FreqMin, FreqMax float64

	// Geom selects the escape-probability geometry.
	Geom Geometry
}

// NewRunDef validates def against mol and returns an immutable run
// definition. The molecule itself must already have passed Validate.
func NewRunDef(mol *Molecule, def RunDef) (*RunDef, error) {
	if mol == nil {
		return nil, ErrNilMolecule
	}
	def.Mol = mol
	if def.TotDens == 0 {
		def.TotDens = def.Density
	}
	if err := def.validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

func (r *RunDef) validate() error {
	if !r.Geom.Valid() {
		return fmt.Errorf("geometry %d: %w", int(r.Geom), ErrUnknownGeometry)
	}
	if _, err := r.Mol.Partner(r.Partner); err != nil {
		return err
	}
	if r.Density <= 0 || r.TotDens <= 0 {
		return fmt.Errorf("density=%g total=%g: %w", r.Density, r.TotDens, ErrBadDensity)
	}
	if r.Tkin <= 0 {
		return fmt.Errorf("tkin=%g: %w", r.Tkin, ErrBadTemperature)
	}
	if r.Tbg < 0 {
		return fmt.Errorf("tbg=%g: %w", r.Tbg, ErrBadTemperature)
	}
	if r.Cdmol <= 0 {
		return fmt.Errorf("cdmol=%g: %w", r.Cdmol, ErrBadColumn)
	}
	if r.DeltaV <= 0 {
		return fmt.Errorf("deltav=%g: %w", r.DeltaV, ErrBadLineWidth)
	}
	if r.FreqMax != 0 && r.FreqMin > r.FreqMax {
		return fmt.Errorf("window [%g, %g] GHz: %w", r.FreqMin, r.FreqMax, ErrBadWindow)
	}

	return nil
}

// InWindow reports whether a line frequency (GHz) falls inside the run's
// reporting window.
func (r *RunDef) InWindow(freq float64) bool {
	if freq < r.FreqMin {
		return false
	}

	return r.FreqMax == 0 || freq <= r.FreqMax
}
