package pulse

import (
	"testing"
	"time"

	"github.com/BOCK-AI/BockQSC1090/quantum"
)

func TestSerialChainOnOneQubit(t *testing.T) {
	ops := []quantum.Op{
		quantum.Single(quantum.GateH, 0),
		quantum.Single(quantum.GateX, 0),
		quantum.Single(quantum.GateY, 0),
	}
	sched, err := Compile(ops, 10)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	wantStarts := []time.Duration{0, 30 * time.Nanosecond, 50 * time.Nanosecond}
	for i, g := range sched.Gates {
		if g.Start != wantStarts[i] {
			t.Errorf("gate %d starts at %s, want %s", i, g.Start, wantStarts[i])
		}
	}
	if sched.Total != 70*time.Nanosecond {
		t.Errorf("total = %s, want 70ns", sched.Total)
	}
	if sched.Serial != sched.Total {
		t.Errorf("serial = %s, want %s for a single-qubit chain", sched.Serial, sched.Total)
	}
	if sched.Depth != 3 {
		t.Errorf("depth = %d, want 3", sched.Depth)
	}
}

func TestDisjointQubitsOverlap(t *testing.T) {
	ops := []quantum.Op{
		quantum.Single(quantum.GateH, 0),
		quantum.Single(quantum.GateH, 1),
		quantum.Single(quantum.GateH, 2),
	}
	sched, err := Compile(ops, 10)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for i, g := range sched.Gates {
		if g.Start != 0 {
			t.Errorf("gate %d starts at %s, want 0", i, g.Start)
		}
	}
	if sched.Total != DurationH {
		t.Errorf("total = %s, want %s", sched.Total, DurationH)
	}
	if sched.Serial != 3*DurationH {
		t.Errorf("serial = %s, want %s", sched.Serial, 3*DurationH)
	}
	if sched.Depth != 1 {
		t.Errorf("depth = %d, want 1", sched.Depth)
	}
}

func TestTwoQubitGateSerializesBothChannels(t *testing.T) {
	// Bell pair: CNOT must wait for the H on its control.
	ops := []quantum.Op{
		quantum.Single(quantum.GateH, 0),
		quantum.Two(quantum.GateCNOT, 0, 1),
		quantum.Single(quantum.GateX, 2), // untouched qubit runs in parallel
	}
	sched, err := Compile(ops, 10)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	cnot := sched.Gates[1]
	if cnot.Start != DurationH {
		t.Errorf("CNOT starts at %s, want %s", cnot.Start, DurationH)
	}
	if cnot.End() != DurationH+DurationCNOT {
		t.Errorf("CNOT ends at %s, want %s", cnot.End(), DurationH+DurationCNOT)
	}
	if x := sched.Gates[2]; x.Start != 0 {
		t.Errorf("X on free qubit starts at %s, want 0", x.Start)
	}
	if sched.Total != 300*time.Nanosecond {
		t.Errorf("total = %s, want 300ns", sched.Total)
	}
	if sched.Depth != 2 {
		t.Errorf("depth = %d, want 2", sched.Depth)
	}
}

func TestVirtualZIsFree(t *testing.T) {
	ops := []quantum.Op{
		quantum.Single(quantum.GateZ, 0),
		quantum.Single(quantum.GateZ, 0),
		quantum.Single(quantum.GateH, 0),
	}
	sched, err := Compile(ops, 10)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if h := sched.Gates[2]; h.Start != 0 {
		t.Errorf("H after virtual Zs starts at %s, want 0", h.Start)
	}
	if sched.Total != DurationH {
		t.Errorf("total = %s, want %s", sched.Total, DurationH)
	}
}

func TestCompileRejectsOutOfRangeQubit(t *testing.T) {
	_, err := Compile([]quantum.Op{quantum.Single(quantum.GateH, 10)}, 10)
	if err == nil {
		t.Fatal("Compile accepted an out-of-range qubit")
	}
}

func TestDurations(t *testing.T) {
	cases := []struct {
		kind quantum.Kind
		want time.Duration
	}{
		{quantum.GateH, 30 * time.Nanosecond},
		{quantum.GateX, 20 * time.Nanosecond},
		{quantum.GateY, 20 * time.Nanosecond},
		{quantum.GateZ, 0},
		{quantum.GateCZ, 200 * time.Nanosecond},
		{quantum.GateCNOT, 270 * time.Nanosecond},
	}
	for _, tc := range cases {
		if got := Duration(tc.kind); got != tc.want {
			t.Errorf("Duration(%s) = %s, want %s", tc.kind, got, tc.want)
		}
	}
}
