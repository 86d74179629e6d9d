package calib

import (
	"math"

	"github.com/BOCK-AI/BockQSC1090/internal/fit"
)

// fitRabi recovers the Rabi frequency from an excited-population curve
// p(t) = A*sin^2(Omega*t/2) + B. A and B are linear given Omega, so they
// are eliminated analytically and only Omega is scanned: a coarse grid
// bounded by the sweep's Nyquist limit, then golden-section refinement.
func fitRabi(times, pops []float64) (omega, residual float64, converged bool) {
	span, dt := sweepExtent(times)
	if span <= 0 || dt <= 0 {
		return 0, 0, false
	}
	ones := constBasis(len(times))

	sseAt := func(w float64) float64 {
		basis := make([]float64, len(times))
		for i, t := range times {
			s := math.Sin(w * t / 2)
			basis[i] = s * s
		}
		_, _, sse, ok := fit.Linear2(pops, basis, ones)
		if !ok {
			return math.Inf(1)
		}
		return sse
	}

	lo := math.Pi / (2 * span) // under half an oscillation across the sweep
	hi := math.Pi / dt         // Nyquist
	best, bestSSE := lo, math.Inf(1)
	const gridSteps = 400
	for i := 0; i <= gridSteps; i++ {
		w := lo + (hi-lo)*float64(i)/gridSteps
		if sse := sseAt(w); sse < bestSSE {
			best, bestSSE = w, sse
		}
	}
	step := (hi - lo) / gridSteps
	omega = fit.GoldenMin(sseAt, math.Max(lo, best-2*step), math.Min(hi, best+2*step), 40)

	basis := make([]float64, len(times))
	for i, t := range times {
		s := math.Sin(omega * t / 2)
		basis[i] = s * s
	}
	amp, _, sse, ok := fit.Linear2(pops, basis, ones)
	residual = fit.RMSE(sse, len(times))
	converged = ok && residual < convergedResidual && amp > 0.2
	return omega, residual, converged
}

// fitRamsey recovers T2* and the detuning from a free-evolution curve
// p(t) = A*exp(-t/T2)*cos(2*pi*df*t). The amplitude is linear given
// (T2, df); the pair is found by a grid scan followed by coordinate-wise
// golden-section refinement.
func fitRamsey(times, pops []float64) (t2, detuning, residual float64, converged bool) {
	span, dt := sweepExtent(times)
	if span <= 0 || dt <= 0 {
		return 0, 0, 0, false
	}

	sseAt := func(t2c, dfc float64) (float64, float64) {
		basis := make([]float64, len(times))
		for i, t := range times {
			basis[i] = math.Exp(-t/t2c) * math.Cos(2*math.Pi*dfc*t)
		}
		amp, sse := fit.Linear1(pops, basis)
		return sse, amp
	}

	dfLo, dfHi := 0.0, 1/(2*dt) // Nyquist in cycles per us
	t2Lo, t2Hi := dt, 10*span

	bestT2, bestDf, bestSSE := t2Hi, 0.0, math.Inf(1)
	const dfSteps, t2Steps = 200, 40
	for i := 0; i <= t2Steps; i++ {
		// log-spaced T2 candidates; decay rate is what the data constrains
		t2c := t2Lo * math.Pow(t2Hi/t2Lo, float64(i)/t2Steps)
		for j := 0; j <= dfSteps; j++ {
			dfc := dfLo + (dfHi-dfLo)*float64(j)/dfSteps
			if sse, _ := sseAt(t2c, dfc); sse < bestSSE {
				bestT2, bestDf, bestSSE = t2c, dfc, sse
			}
		}
	}

	dfStep := (dfHi - dfLo) / dfSteps
	detuning = fit.GoldenMin(func(df float64) float64 {
		sse, _ := sseAt(bestT2, df)
		return sse
	}, math.Max(dfLo, bestDf-2*dfStep), math.Min(dfHi, bestDf+2*dfStep), 40)

	t2 = fit.GoldenMin(func(t2c float64) float64 {
		sse, _ := sseAt(t2c, detuning)
		return sse
	}, math.Max(t2Lo, bestT2/3), math.Min(t2Hi, bestT2*3), 40)

	sse, amp := sseAt(t2, detuning)
	residual = fit.RMSE(sse, len(times))
	converged = residual < convergedResidual && amp > 0.3 && t2 < t2Hi*0.99
	return t2, detuning, residual, converged
}

func sweepExtent(times []float64) (span, minStep float64) {
	if len(times) < 2 {
		return 0, 0
	}
	span = times[len(times)-1] - times[0]
	minStep = math.Inf(1)
	for i := 1; i < len(times); i++ {
		if d := times[i] - times[i-1]; d > 0 && d < minStep {
			minStep = d
		}
	}
	if math.IsInf(minStep, 1) {
		return span, 0
	}
	return span, minStep
}

func constBasis(n int) []float64 {
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	return ones
}
