package calib

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRabiRecoversFrequency(t *testing.T) {
	cfg := Config{
		RabiFreq: 2 * math.Pi * 5, // rad/us
		NoiseStd: 0.01,
		Averages: 20,
	}
	rec, err := Run(context.Background(), 0, Rabi, cfg, 42, nil)
	require.NoError(t, err)

	assert.True(t, rec.Converged, "low-noise Rabi fit should converge (residual %v)", rec.Residual)
	assert.InEpsilon(t, cfg.RabiFreq, rec.RabiFreq, 0.05)
	assert.False(t, rec.Partial)
	assert.Equal(t, Rabi, rec.Kind)
	assert.Len(t, rec.Points, 41)
	assert.NotEmpty(t, rec.RunID)
}

func TestRamseyRecoversT2AndDetuning(t *testing.T) {
	cfg := Config{
		T2Star:   0.6, // us
		Detuning: 2.5, // MHz
		NoiseStd: 0.01,
		Averages: 20,
	}
	rec, err := Run(context.Background(), 3, Ramsey, cfg, 42, nil)
	require.NoError(t, err)

	assert.True(t, rec.Converged, "low-noise Ramsey fit should converge (residual %v)", rec.Residual)
	assert.InEpsilon(t, cfg.Detuning, rec.Detuning, 0.05)
	assert.InEpsilon(t, cfg.T2Star, rec.T2Star, 0.15)
	assert.Equal(t, 3, rec.Qubit)
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	base := Config{NoiseStd: 0.05, Averages: 16}

	one := base
	one.Workers = 1
	recOne, err := Run(context.Background(), 0, Rabi, one, 7, nil)
	require.NoError(t, err)

	many := base
	many.Workers = 8
	recMany, err := Run(context.Background(), 0, Rabi, many, 7, nil)
	require.NoError(t, err)

	assert.Equal(t, recOne.Points, recMany.Points)
	assert.Equal(t, recOne.RabiFreq, recMany.RabiFreq)
	assert.Equal(t, recOne.Residual, recMany.Residual)
}

func TestNoiseDominatedSweepDoesNotConverge(t *testing.T) {
	cfg := Config{
		NoiseStd: 0.8,
		Averages: 1,
	}
	rec, err := Run(context.Background(), 0, Rabi, cfg, 13, nil)
	require.NoError(t, err)

	assert.False(t, rec.Converged, "residual %v should exceed the convergence bound", rec.Residual)
	assert.Greater(t, rec.Residual, convergedResidual)
}

func TestUnknownKindRejected(t *testing.T) {
	_, err := Run(context.Background(), 0, Kind("echo"), Config{}, 1, nil)
	assert.Error(t, err)
}

func TestCancelledRunIsPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec, err := Run(ctx, 0, Rabi, Config{Averages: 50}, 1, nil)
	require.NoError(t, err)
	assert.True(t, rec.Partial)
}

func TestFitRabiOnCleanCurve(t *testing.T) {
	const omega = 12.0
	times := make([]float64, 60)
	pops := make([]float64, 60)
	for i := range times {
		times[i] = float64(i) * 0.02
		s := math.Sin(omega * times[i] / 2)
		pops[i] = s * s
	}

	got, residual, converged := fitRabi(times, pops)
	assert.True(t, converged)
	assert.InEpsilon(t, omega, got, 0.01)
	assert.Less(t, residual, 0.01)
}

func TestFitRamseyOnCleanCurve(t *testing.T) {
	const (
		t2 = 0.8
		df = 1.5
	)
	times := make([]float64, 80)
	pops := make([]float64, 80)
	for i := range times {
		times[i] = float64(i) * 0.025
		pops[i] = math.Exp(-times[i]/t2) * math.Cos(2*math.Pi*df*times[i])
	}

	gotT2, gotDf, residual, converged := fitRamsey(times, pops)
	assert.True(t, converged)
	assert.InEpsilon(t, df, gotDf, 0.02)
	assert.InEpsilon(t, t2, gotT2, 0.1)
	assert.Less(t, residual, 0.02)
}
