// Package radiation evaluates the radiation field the solver couples to:
// the blackbody background intensity at each line frequency, and the
// conversions between specific intensity and equivalent temperatures used
// when reporting line strengths.
//
// All intensities are in cgs wavenumber form: B(T, ν̃) = 2hc ν̃³/(e^{hcν̃/kT}−1)
// with ν̃ in cm⁻¹. Exponents hcν̃/kT ≥ 160 saturate the exponential in double
// precision; those intensities fall to the round-off floor core.Eps instead
// of underflowing to zero.
package radiation
