package rb

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCliffordGroupHas24Elements(t *testing.T) {
	assert.Len(t, cliffords, 24)
}

func TestCliffordGroupClosedUnderInverse(t *testing.T) {
	for i, m := range cliffords {
		inv := m.dagger()
		found := false
		for _, n := range cliffords {
			if equalUpToPhase(n, inv) {
				found = true
				break
			}
		}
		assert.True(t, found, "inverse of element %d not in group", i)
	}
}

func TestInverseClosesSequenceToIdentity(t *testing.T) {
	seq := []int{3, 17, 8, 21, 0, 11}
	acc := matI
	for _, idx := range seq {
		acc = cliffords[idx].mul(acc)
	}
	closed := inverseOf(seq).mul(acc)
	assert.True(t, equalUpToPhase(closed, matI), "sequence times its inverse is not identity")
}

func TestEqualUpToPhase(t *testing.T) {
	phase := complex(math.Cos(0.7), math.Sin(0.7))
	rotated := Matrix{
		{phase * matH[0][0], phase * matH[0][1]},
		{phase * matH[1][0], phase * matH[1][1]},
	}
	assert.True(t, equalUpToPhase(rotated, matH))
	assert.False(t, equalUpToPhase(matH, matS))
}

func TestNoiselessRunReportsUnitDecay(t *testing.T) {
	cfg := Config{
		Lengths:        []int{1, 2, 4, 8},
		Randomizations: 10,
	}
	rec, err := Run(context.Background(), 0, cfg, 42, nil)
	require.NoError(t, err)

	// With no noise the survival is flat at 1 and the decay must be
	// reported as exactly 1, not a point on the degenerate fit ridge.
	assert.Equal(t, 1.0, rec.DecayP)
	assert.Equal(t, 1.0, rec.GateFidelity)
	for _, pt := range rec.Points {
		assert.InDelta(t, 1.0, pt.Survival, 1e-9)
	}
}

func TestDepolarizingNoiseDecaysSurvival(t *testing.T) {
	cfg := Config{
		Lengths:        []int{1, 4, 16, 64},
		Randomizations: 60,
		NoiseProb:      0.05,
	}
	rec, err := Run(context.Background(), 0, cfg, 42, nil)
	require.NoError(t, err)

	assert.Less(t, rec.DecayP, 1.0)
	assert.Greater(t, rec.DecayP, 0.5)
	assert.Less(t, rec.GateFidelity, 1.0)

	// Longer sequences survive less.
	first := rec.Points[0].Survival
	last := rec.Points[len(rec.Points)-1].Survival
	assert.Greater(t, first, last)
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	base := Config{
		Lengths:        []int{1, 2, 8},
		Randomizations: 20,
		NoiseProb:      0.02,
	}

	one := base
	one.Workers = 1
	recOne, err := Run(context.Background(), 0, one, 5, nil)
	require.NoError(t, err)

	many := base
	many.Workers = 8
	recMany, err := Run(context.Background(), 0, many, 5, nil)
	require.NoError(t, err)

	assert.Equal(t, recOne.Points, recMany.Points)
	assert.Equal(t, recOne.DecayP, recMany.DecayP)
}

func TestRejectsNonPositiveLength(t *testing.T) {
	_, err := Run(context.Background(), 0, Config{Lengths: []int{4, 0}}, 1, nil)
	assert.Error(t, err)
}

func TestSpectatorQubitsStayGrounded(t *testing.T) {
	cfg := Config{
		Lengths:        []int{8},
		Randomizations: 5,
		NoiseProb:      0.1,
		Qubits:         3,
	}
	rec, err := Run(context.Background(), 1, cfg, 9, nil)
	require.NoError(t, err)
	// Survival is a probability regardless of noise.
	for _, pt := range rec.Points {
		assert.GreaterOrEqual(t, pt.Survival, 0.0)
		assert.LessOrEqual(t, pt.Survival, 1.0+1e-12)
	}
}
