// Package fit holds the small least-squares helpers shared by the
// calibration and benchmarking fitters.
package fit

import "math"

// Linear2 solves min over (a, b) of sum (a*f1[i] + b*f2[i] - y[i])^2 via the
// 2x2 normal equations. Returns the coefficients and the residual sum of
// squares; ok is false when the basis is degenerate.
func Linear2(y, f1, f2 []float64) (a, b, sse float64, ok bool) {
	var s11, s12, s22, sy1, sy2 float64
	for i := range y {
		s11 += f1[i] * f1[i]
		s12 += f1[i] * f2[i]
		s22 += f2[i] * f2[i]
		sy1 += y[i] * f1[i]
		sy2 += y[i] * f2[i]
	}
	det := s11*s22 - s12*s12
	if math.Abs(det) < 1e-12 {
		return 0, 0, 0, false
	}
	a = (sy1*s22 - sy2*s12) / det
	b = (sy2*s11 - sy1*s12) / det
	for i := range y {
		r := a*f1[i] + b*f2[i] - y[i]
		sse += r * r
	}
	return a, b, sse, true
}

// Linear1 solves min over a of sum (a*f[i] - y[i])^2.
func Linear1(y, f []float64) (a, sse float64) {
	var sff, syf float64
	for i := range y {
		sff += f[i] * f[i]
		syf += y[i] * f[i]
	}
	if sff == 0 {
		return 0, sumSq(y)
	}
	a = syf / sff
	for i := range y {
		r := a*f[i] - y[i]
		sse += r * r
	}
	return a, sse
}

func sumSq(y []float64) float64 {
	total := 0.0
	for _, v := range y {
		total += v * v
	}
	return total
}

const invPhi = 0.6180339887498949

// GoldenMin minimizes a unimodal objective on [lo, hi] by golden-section
// search. The objectives here are cheap, so a fixed iteration count is
// simpler than a tolerance loop.
func GoldenMin(f func(float64) float64, lo, hi float64, iters int) float64 {
	a, b := lo, hi
	c := b - (b-a)*invPhi
	d := a + (b-a)*invPhi
	fc, fd := f(c), f(d)
	for i := 0; i < iters; i++ {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - (b-a)*invPhi
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + (b-a)*invPhi
			fd = f(d)
		}
	}
	return (a + b) / 2
}

// RMSE converts a residual sum of squares over n points to a root mean
// square error.
func RMSE(sse float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Sqrt(sse / float64(n))
}
