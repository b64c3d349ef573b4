package core

import "math"

// Physical constants in cgs units (CODATA 2002, as used by RADEX so that
// results stay bit-comparable with it).
const (
	// Clight is the speed of light, cm s⁻¹.
	Clight = 2.99792458e10

	// HPlanck is Planck's constant, erg s.
	HPlanck = 6.6260963e-27

	// KBoltz is Boltzmann's constant, erg K⁻¹.
	KBoltz = 1.3806505e-16

	// FK converts a wavenumber (cm⁻¹) to a temperature (K): hc/k.
	FK = HPlanck * Clight / KBoltz

	// THC is the Planck-function prefactor 2hc in wavenumber form.
	THC = 2.0 * HPlanck * Clight

	// Fgaus is the Gaussian line-shape normalization 1.0645·8π entering the
	// optical-depth and flux expressions.
	Fgaus = 1.0645 * 8.0 * math.Pi
)

// Numerical floors. These are normative: the solver's regime branches and
// clamps depend on the exact values.
const (
	// Eps is the round-off floor used to seed the rate matrix and to stand
	// in for fully saturated Planck intensities.
	Eps = 1.0e-30

	// MinPop is the smallest level population the solver reports; entries
	// are clamped here to avoid log and divide singularities downstream.
	MinPop = 1.0e-20
)

// KmToCm converts a line width in km s⁻¹ to cm s⁻¹.
const KmToCm = 1.0e5
