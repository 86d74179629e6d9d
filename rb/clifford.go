package rb

import "math"

// Matrix is a 2x2 unitary acting on a single qubit.
type Matrix [2][2]complex128

// mul returns a*b.
func (a Matrix) mul(b Matrix) Matrix {
	var out Matrix
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out[r][c] = a[r][0]*b[0][c] + a[r][1]*b[1][c]
		}
	}
	return out
}

// dagger returns the conjugate transpose.
func (a Matrix) dagger() Matrix {
	var out Matrix
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out[r][c] = complex(real(a[c][r]), -imag(a[c][r]))
		}
	}
	return out
}

// equalUpToPhase reports whether a and b are the same unitary up to a global
// phase. The phase is read off the first entry with non-negligible magnitude.
func equalUpToPhase(a, b Matrix) bool {
	const tol = 1e-9
	var phase complex128
	found := false
	for r := 0; r < 2 && !found; r++ {
		for c := 0; c < 2 && !found; c++ {
			if cmplxAbs(b[r][c]) > tol {
				if cmplxAbs(a[r][c]) <= tol {
					return false
				}
				phase = a[r][c] / b[r][c]
				found = true
			}
		}
	}
	if !found {
		return false
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if cmplxAbs(a[r][c]-phase*b[r][c]) > 1e-6 {
				return false
			}
		}
	}
	return true
}

func cmplxAbs(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}

var (
	matI = Matrix{{1, 0}, {0, 1}}
	matH = Matrix{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	matS = Matrix{{1, 0}, {0, complex(0, 1)}}

	matX = Matrix{{0, 1}, {1, 0}}
	matY = Matrix{{0, complex(0, -1)}, {complex(0, 1), 0}}
	matZ = Matrix{{1, 0}, {0, -1}}

	paulis = []Matrix{matI, matX, matY, matZ}
)

// cliffords is the 24-element single-qubit Clifford group, generated once by
// closing {H, S} under multiplication.
var cliffords = generateCliffords()

func generateCliffords() []Matrix {
	group := []Matrix{matI}
	gens := []Matrix{matH, matS}
	for {
		grew := false
		for _, g := range group {
			for _, gen := range gens {
				cand := gen.mul(g)
				known := false
				for _, m := range group {
					if equalUpToPhase(m, cand) {
						known = true
						break
					}
				}
				if !known {
					group = append(group, cand)
					grew = true
				}
			}
		}
		if !grew {
			return group
		}
	}
}

// inverseOf returns the group element equal (up to phase) to the inverse of
// the product of the given sequence, applied left to right.
func inverseOf(seq []int) Matrix {
	acc := matI
	for _, idx := range seq {
		acc = cliffords[idx].mul(acc)
	}
	inv := acc.dagger()
	for _, m := range cliffords {
		if equalUpToPhase(m, inv) {
			return m
		}
	}
	// The group is closed under inversion, so the raw dagger is still the
	// correct unitary even if the lookup ever misses.
	return inv
}
