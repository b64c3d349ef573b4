// Package core: molecular data types and their validation.
//
// This file declares Level, Transition, CollisionPartner, Molecule and the
// sentinel errors raised when a data set violates the model's invariants.
// Callers MUST branch on errors with errors.Is; sentinels are wrapped with
// index context via %w at the point of detection.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for molecular data validation.
var (
	// ErrNilMolecule indicates a nil *Molecule was passed where data is required.
	ErrNilMolecule = errors.New("core: molecule is nil")

	// ErrTooFewLevels indicates a molecule with fewer than two energy levels.
	ErrTooFewLevels = errors.New("core: molecule needs at least two levels")

	// ErrNoLines indicates a molecule without radiative transitions.
	ErrNoLines = errors.New("core: molecule has no radiative transitions")

	// ErrBadTransition indicates a radiative transition referencing an
	// out-of-range level, a self-transition (upper == lower), or an upper
	// state that is not above its lower state in energy.
	ErrBadTransition = errors.New("core: invalid radiative transition")

	// ErrBadCollision indicates a collisional rate entry referencing an
	// out-of-range level or a self-transition, or a partner whose rate table
	// does not match its temperature grid.
	ErrBadCollision = errors.New("core: invalid collisional transition")

	// ErrUnknownPartner indicates a RunDef names a collision partner the
	// molecule does not carry.
	ErrUnknownPartner = errors.New("core: unknown collision partner")
)

// Level is a single molecular energy level.
type Level struct {
	// Energy is the term energy in cm⁻¹ above the ground state.
	Energy float64

	// Weight is the statistical weight g of the level.
	Weight float64

	// Label is the quantum-number designation, e.g. "3" or "2_1".
	Label string
}

// Transition is a radiative (electric-dipole) transition between two levels.
// Level indices are zero-based positions into Molecule.Levels.
type Transition struct {
	// Upper and Lower are the level indices of the transition endpoints.
	Upper, Lower int

	// Aul is the Einstein A coefficient, s⁻¹.
	Aul float64

	// Freq is the line frequency in GHz, as tabulated in the data file.
	Freq float64

	// Eup is the upper-level energy in K, as tabulated in the data file.
	Eup float64

	// Xnu is the derived energy difference of the endpoints in cm⁻¹; the
	// solver's Planck and optical-depth expressions run on this quantity.
	Xnu float64
}

// CollisionPartner holds one partner's downward rate coefficients on a
// temperature grid. Upward rates follow from detailed balance at run time.
type CollisionPartner struct {
	// Name identifies the partner species: "H2", "p-H2", "o-H2", "e-", "H",
	// "He" or "H+".
	Name string

	// Temps is the kinetic temperature grid of the rate table, K.
	Temps []float64

	// Upper and Lower are the zero-based endpoint indices per collisional
	// transition.
	Upper, Lower []int

	// Rates holds the downward rate coefficients in cm³ s⁻¹, indexed as
	// Rates[transition][temperature].
	Rates [][]float64
}

// Molecule is the immutable energy-level structure of one species: levels,
// radiative transitions and per-partner collision-rate tables. Load it once
// (see molfile), validate it once, and share it read-only.
type Molecule struct {
	// Name is the species designation from the data file, e.g. "HCO+".
	Name string

	// Weight is the molecular weight in amu.
	Weight float64

	Levels   []Level
	Lines    []Transition
	Partners []CollisionPartner
}

// NLevels returns the number of energy levels.
func (m *Molecule) NLevels() int { return len(m.Levels) }

// NLines returns the number of radiative transitions.
func (m *Molecule) NLines() int { return len(m.Lines) }

// Partner returns the collision partner with the given name, or
// ErrUnknownPartner if the molecule does not carry it.
func (m *Molecule) Partner(name string) (*CollisionPartner, error) {
	for i := range m.Partners {
		if m.Partners[i].Name == name {
			return &m.Partners[i], nil
		}
	}

	return nil, fmt.Errorf("partner %q: %w", name, ErrUnknownPartner)
}

// Validate checks the structural invariants of the molecule: at least two
// levels, at least one line, every transition and collision entry inside
// [0, NLevels), no self-transitions, and every radiative upper state above
// its lower state in energy. It must be called once after loading; the
// solver assumes validated input and fails fast rather than re-checking.
func (m *Molecule) Validate() error {
	if m == nil {
		return ErrNilMolecule
	}
	if len(m.Levels) < 2 {
		return ErrTooFewLevels
	}
	if len(m.Lines) == 0 {
		return ErrNoLines
	}

	nlev := len(m.Levels)
	for i, line := range m.Lines {
		if line.Upper < 0 || line.Upper >= nlev || line.Lower < 0 || line.Lower >= nlev {
			return fmt.Errorf("line %d: level index out of range: %w", i, ErrBadTransition)
		}
		if line.Upper == line.Lower {
			return fmt.Errorf("line %d: upper equals lower: %w", i, ErrBadTransition)
		}
		if m.Levels[line.Upper].Energy <= m.Levels[line.Lower].Energy {
			return fmt.Errorf("line %d: upper state not above lower: %w", i, ErrBadTransition)
		}
		if line.Aul <= 0 {
			return fmt.Errorf("line %d: non-positive Einstein A: %w", i, ErrBadTransition)
		}
	}

	for p := range m.Partners {
		part := &m.Partners[p]
		if len(part.Upper) != len(part.Lower) || len(part.Upper) != len(part.Rates) {
			return fmt.Errorf("partner %q: table length mismatch: %w", part.Name, ErrBadCollision)
		}
		for t := range part.Upper {
			up, lo := part.Upper[t], part.Lower[t]
			if up < 0 || up >= nlev || lo < 0 || lo >= nlev {
				return fmt.Errorf("partner %q, entry %d: level index out of range: %w", part.Name, t, ErrBadCollision)
			}
			if up == lo {
				return fmt.Errorf("partner %q, entry %d: upper equals lower: %w", part.Name, t, ErrBadCollision)
			}
			if len(part.Rates[t]) != len(part.Temps) {
				return fmt.Errorf("partner %q, entry %d: rate row does not match temperature grid: %w", part.Name, t, ErrBadCollision)
			}
		}
	}

	return nil
}
