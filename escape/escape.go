package escape

import (
	"fmt"
	"math"

	"github.com/autocorr/gadex/core"
)

// Beta returns the escape probability for a line of optical depth tau in a
// cloud of the given geometry. For all τ ≥ 0 the result lies in (0, 1] and
// is non-increasing in τ; β(0) = 1 exactly in every geometry.
//
// An unknown geometry yields core.ErrUnknownGeometry. RunDef construction
// already rejects such geometries, so inside a solve this error is
// unreachable; the check exists for direct callers.
func Beta(tau float64, g core.Geometry) (float64, error) {
	switch g {
	case core.Sphere:
		return betaSphere(tau), nil
	case core.LVG:
		return betaLVG(tau), nil
	case core.Slab:
		return betaSlab(tau), nil
	default:
		return 0, fmt.Errorf("escape: geometry %d: %w", int(g), core.ErrUnknownGeometry)
	}
}

// betaSphere is Osterbrock's uniform-sphere approximation on τr = τ/2:
// a 4th-order series below |τr| = 0.1, the 0.75/τr asymptote above
// |τr| = 50, and the exact rational-exponential form in between.
func betaSphere(tau float64) float64 {
	taur := tau / 2.0
	switch {
	case math.Abs(taur) < 0.1:
		return 1.0 - 0.75*taur + taur*taur/2.5 - taur*taur*taur/6.0 + taur*taur*taur*taur/17.5
	case math.Abs(taur) > 50.0:
		return 0.75 / taur
	default:
		return 0.75 / taur * (1.0 - 1.0/(2.0*taur*taur) +
			(1.0/taur+1.0/(2.0*taur*taur))*math.Exp(-tau))
	}
}

// betaLVG is the de Jong et al. (1980) expanding-sphere form, corrected by
// a factor 2 so the optically thin limit is exactly 1.
func betaLVG(tau float64) float64 {
	taur := tau / 2.0
	switch {
	case math.Abs(taur) < 0.01:
		return 1.0
	case math.Abs(taur) < 7.0:
		return 2.0 * (1.0 - math.Exp(-2.34*taur)) / (4.68 * taur)
	default:
		return 2.0 / (taur * 4.0 * math.Sqrt(math.Log(taur/math.SqrtPi)))
	}
}

// betaSlab is the de Jong et al. (1975) plane-parallel slab form, branched
// on 3τ.
func betaSlab(tau float64) float64 {
	switch {
	case math.Abs(3.0*tau) < 0.1:
		return 1.0 - 1.5*(tau+tau*tau)
	case math.Abs(3.0*tau) > 50.0:
		return 1.0 / (3.0 * tau)
	default:
		return (1.0 - math.Exp(-3.0*tau)) / (3.0 * tau)
	}
}
