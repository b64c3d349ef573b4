// Package escape computes the photon escape probability β(τ): the chance
// that a photon emitted in a line of optical depth τ leaves the cloud
// without being reabsorbed.
//
// Three cloud geometries are supported, each with the closed-form
// approximation used by RADEX:
//
//   - Sphere: static uniform sphere, Osterbrock's approximation on τr = τ/2.
//   - LVG:    expanding sphere in the Sobolev (large velocity gradient)
//     approximation, after de Jong, Boland & Dalgarno (1980, A&A 91, 68)
//     with the factor-2 correction that normalizes β → 1 as τ → 0.
//   - Slab:   plane-parallel slab, after de Jong, Dalgarno & Chu
//     (1975, ApJ 199, 69).
//
// Each geometry switches between a small-τ series, the exact closed form,
// and a large-τ asymptote at fixed empirical boundaries. The boundaries and
// coefficients must not be altered, or results stop being comparable with
// RADEX. Negative τ (inverted
// populations, i.e. masing lines) passes through the same formulas and may
// yield β > 1.
package escape
