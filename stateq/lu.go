package stateq

import "math"

// The assembled rate matrix is exactly singular in float64: the level-block
// columns sum to zero and the round-off seed sits far below the ulp of the
// rate entries, so elimination produces a true zero pivot. A general LU
// stops there with no solution. Substituting a tiny value for the vanishing
// pivot lets back-substitution complete and emit a large multiple of the
// equilibrium null-space direction, carried on the seeded right-hand side;
// the post-solve normalization by the signed level sum removes both the
// scale and the sign.
const luTiny = 1.0e-30

// luSolve solves a·x = b by Gaussian elimination with partial pivoting,
// replacing vanishing pivots with luTiny. a and b are overwritten.
func luSolve(a [][]float64, b []float64) []float64 {
	n := len(a)
	for k := 0; k < n; k++ {
		p := k
		for i := k + 1; i < n; i++ {
			if math.Abs(a[i][k]) > math.Abs(a[p][k]) {
				p = i
			}
		}
		if p != k {
			a[p], a[k] = a[k], a[p]
			b[p], b[k] = b[k], b[p]
		}
		if math.Abs(a[k][k]) < luTiny {
			a[k][k] = luTiny
		}

		piv := a[k][k]
		for i := k + 1; i < n; i++ {
			f := a[i][k] / piv
			if f == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				a[i][j] -= f * a[k][j]
			}
			b[i] -= f * b[k]
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * x[j]
		}
		x[i] = sum / a[i][i]
	}

	return x
}
