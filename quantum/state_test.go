package quantum

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

const ampTol = 1e-12

func almostEqual(a, b Complex) bool {
	return cmplx.Abs(a-b) < ampTol
}

func TestNewStateVectorIsGroundState(t *testing.T) {
	sv := NewStateVector(3)
	if len(sv.Amplitudes) != 8 {
		t.Fatalf("expected 8 amplitudes, got %d", len(sv.Amplitudes))
	}
	if !almostEqual(sv.Amplitudes[0], 1) {
		t.Errorf("amplitude of |000> = %v, want 1", sv.Amplitudes[0])
	}
	if math.Abs(sv.Norm()-1) > ampTol {
		t.Errorf("norm = %v, want 1", sv.Norm())
	}
}

func TestGatesPreserveNorm(t *testing.T) {
	ops := []Op{
		Single(GateH, 0),
		Single(GateX, 1),
		Single(GateY, 2),
		Single(GateZ, 0),
		Two(GateCNOT, 0, 1),
		Two(GateCZ, 1, 2),
	}
	sv := NewStateVector(3)
	// Move off the basis states first so phase gates act on something.
	sv.ApplyH(0)
	sv.ApplyH(1)
	sv.ApplyH(2)
	for _, op := range ops {
		sv.Apply(op)
		if norm := sv.Norm(); math.Abs(norm-1) > 1e-9 {
			t.Fatalf("norm drifted to %v after %s", norm, op)
		}
	}
}

// Every gate in the operator set is self-inverse (H, X, Y, Z, CZ are their
// own conjugate transpose; CNOT is H·CZ·H of those), so applying a gate
// twice must restore any reachable state.
func TestGatesSelfInverse(t *testing.T) {
	ops := []Op{
		Single(GateH, 0),
		Single(GateX, 1),
		Single(GateY, 2),
		Single(GateZ, 0),
		Two(GateCNOT, 0, 2),
		Two(GateCZ, 1, 2),
	}
	for _, op := range ops {
		t.Run(op.String(), func(t *testing.T) {
			sv := NewStateVector(3)
			// A state with support everywhere and mixed phases.
			sv.ApplyH(0)
			sv.ApplyH(1)
			sv.ApplyH(2)
			sv.ApplyS(0, false)
			sv.ApplyCZ(0, 1)
			before := sv.Clone()

			sv.Apply(op)
			sv.Apply(op)
			for i := range sv.Amplitudes {
				if cmplx.Abs(sv.Amplitudes[i]-before.Amplitudes[i]) > 1e-9 {
					t.Fatalf("amplitude %d not restored: %v != %v", i, sv.Amplitudes[i], before.Amplitudes[i])
				}
			}
		})
	}
}

func TestPauliXInvolution(t *testing.T) {
	sv := NewStateVector(4)
	sv.ApplyH(0)
	sv.ApplyH(2)
	before := sv.Clone()

	sv.ApplyX(1)
	sv.ApplyX(1)
	for i := range sv.Amplitudes {
		if !almostEqual(sv.Amplitudes[i], before.Amplitudes[i]) {
			t.Fatalf("amplitude %d changed after X·X: %v != %v", i, sv.Amplitudes[i], before.Amplitudes[i])
		}
	}
}

func TestHadamardInvolution(t *testing.T) {
	sv := NewStateVector(2)
	sv.ApplyX(1)
	before := sv.Clone()

	sv.ApplyH(1)
	sv.ApplyH(1)
	for i := range sv.Amplitudes {
		if !almostEqual(sv.Amplitudes[i], before.Amplitudes[i]) {
			t.Fatalf("amplitude %d changed after H·H: %v != %v", i, sv.Amplitudes[i], before.Amplitudes[i])
		}
	}
}

// CNOT truth table on basis states: target flips iff control is set.
func TestCNOTTruthTable(t *testing.T) {
	cases := []struct {
		name    string
		prep    []Op
		wantIdx int
	}{
		{"control clear", nil, 0},                                   // |00> -> |00>
		{"control set", []Op{Single(GateX, 0)}, 0b11},               // |01> -> |11>
		{"target set only", []Op{Single(GateX, 1)}, 0b10},           // |10> -> |10>
		{"both set", []Op{Single(GateX, 0), Single(GateX, 1)}, 0b01}, // |11> -> |01>
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sv := NewStateVector(2)
			for _, op := range tc.prep {
				sv.Apply(op)
			}
			sv.Apply(Two(GateCNOT, 0, 1))
			if p := sv.Probability(tc.wantIdx); math.Abs(p-1) > 1e-9 {
				t.Fatalf("P(index %d) = %v, want 1", tc.wantIdx, p)
			}
		})
	}
}

func TestBellStateProbabilities(t *testing.T) {
	sv := NewStateVector(2)
	sv.Apply(Single(GateH, 0))
	sv.Apply(Two(GateCNOT, 0, 1))

	if p := sv.Probability(0b00); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("P(00) = %v, want 0.5", p)
	}
	if p := sv.Probability(0b11); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("P(11) = %v, want 0.5", p)
	}
	if p := sv.Probability(0b01) + sv.Probability(0b10); p > 1e-9 {
		t.Errorf("P(01)+P(10) = %v, want 0", p)
	}
}

func TestCZSymmetric(t *testing.T) {
	a := NewStateVector(3)
	b := NewStateVector(3)
	for q := 0; q < 3; q++ {
		a.ApplyH(q)
		b.ApplyH(q)
	}
	a.ApplyCZ(0, 2)
	b.ApplyCZ(2, 0)
	for i := range a.Amplitudes {
		if !almostEqual(a.Amplitudes[i], b.Amplitudes[i]) {
			t.Fatalf("CZ(0,2) != CZ(2,0) at amplitude %d", i)
		}
	}
}

func TestApplyMatrixMatchesKernel(t *testing.T) {
	h := [2][2]Complex{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	a := NewStateVector(3)
	b := NewStateVector(3)
	a.ApplyX(2)
	b.ApplyX(2)

	a.ApplyH(1)
	b.ApplyMatrix(1, h)
	for i := range a.Amplitudes {
		if !almostEqual(a.Amplitudes[i], b.Amplitudes[i]) {
			t.Fatalf("ApplyMatrix(H) diverges from ApplyH at amplitude %d", i)
		}
	}
}

func TestSampleDeterministicForSeed(t *testing.T) {
	build := func() *StateVector {
		sv := NewStateVector(4)
		for q := 0; q < 4; q++ {
			sv.ApplyH(q)
		}
		return sv
	}
	first := build().Sample(rand.New(rand.NewSource(7)))
	second := build().Sample(rand.New(rand.NewSource(7)))
	if first != second {
		t.Fatalf("same seed produced outcomes %d and %d", first, second)
	}
}

func TestSampleMatchesDistribution(t *testing.T) {
	sv := NewStateVector(1)
	sv.ApplyH(0)
	rng := rand.New(rand.NewSource(11))

	ones := 0
	const trials = 20000
	for i := 0; i < trials; i++ {
		if sv.Sample(rng) == 1 {
			ones++
		}
	}
	frac := float64(ones) / trials
	if math.Abs(frac-0.5) > 0.02 {
		t.Fatalf("P(1) estimated at %v, want 0.5 +/- 0.02", frac)
	}
}

func TestFormatBasisStateQubitZeroLast(t *testing.T) {
	cases := []struct {
		index int
		n     int
		want  string
	}{
		{0, 3, "000"},
		{1, 3, "001"}, // qubit 0 set -> last character
		{4, 3, "100"}, // qubit 2 set -> first character
		{1, 10, "0000000001"},
		{1 << 9, 10, "1000000000"},
	}
	for _, tc := range cases {
		if got := FormatBasisState(tc.index, tc.n); got != tc.want {
			t.Errorf("FormatBasisState(%d, %d) = %q, want %q", tc.index, tc.n, got, tc.want)
		}
	}
}

func TestQubitProbabilitiesBell(t *testing.T) {
	sv := NewStateVector(3)
	sv.Apply(Single(GateH, 0))
	sv.Apply(Two(GateCNOT, 0, 1))

	probs := sv.QubitProbabilities()
	for q := 0; q < 2; q++ {
		if math.Abs(probs[q].Prob1-0.5) > 1e-9 {
			t.Errorf("qubit %d P(1) = %v, want 0.5", q, probs[q].Prob1)
		}
	}
	if probs[2].Prob0 < 1-1e-9 {
		t.Errorf("spectator qubit 2 P(0) = %v, want 1", probs[2].Prob0)
	}
}
