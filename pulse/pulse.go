// Package pulse compiles a gate program into a per-qubit pulse schedule.
// Gates on disjoint qubits overlap; gates sharing a qubit are serialized on
// that qubit's channel. Z costs nothing because it is applied as a virtual
// frame rotation rather than a physical pulse.
package pulse

import (
	"fmt"
	"strings"
	"time"

	"github.com/BOCK-AI/BockQSC1090/quantum"
)

// Gate pulse durations. CNOT is decomposed into two Hadamard pulses around a
// CZ plus echo overhead, hence 2*30 + 200 + 10.
const (
	DurationH    = 30 * time.Nanosecond
	DurationX    = 20 * time.Nanosecond
	DurationY    = 20 * time.Nanosecond
	DurationZ    = 0 // virtual Z
	DurationCZ   = 200 * time.Nanosecond
	DurationCNOT = 270 * time.Nanosecond

	// clockResolution is the control hardware's timing grid; every pulse
	// start is snapped up to it.
	clockResolution = 1 * time.Nanosecond
)

// Duration returns the pulse duration of one gate kind.
func Duration(kind quantum.Kind) time.Duration {
	switch kind {
	case quantum.GateH:
		return DurationH
	case quantum.GateX:
		return DurationX
	case quantum.GateY:
		return DurationY
	case quantum.GateZ:
		return DurationZ
	case quantum.GateCZ:
		return DurationCZ
	case quantum.GateCNOT:
		return DurationCNOT
	}
	return 0
}

// ScheduledGate is one gate placed on the timeline.
type ScheduledGate struct {
	Op       quantum.Op    `json:"op"`
	Start    time.Duration `json:"start_ns"`
	Duration time.Duration `json:"duration_ns"`
}

// End is the instant the gate's pulse finishes.
func (g ScheduledGate) End() time.Duration { return g.Start + g.Duration }

// Schedule is a compiled circuit timeline. Total is the makespan with
// gates on disjoint qubits overlapping; Serial is the flat sum of gate
// durations, the fully sequential lower bound on hardware without
// parallel channels.
type Schedule struct {
	Gates     []ScheduledGate `json:"gates"`
	Total     time.Duration   `json:"total_ns"`
	Serial    time.Duration   `json:"serial_ns"`
	Depth     int             `json:"depth"`
	NumQubits int             `json:"num_qubits"`
}

// Compile schedules the program's gates greedily in program order: each gate
// starts as soon as every qubit it touches is free. Program order is
// preserved per qubit, so the schedule computes the same state as the serial
// program.
func Compile(ops []quantum.Op, numQubits int) (*Schedule, error) {
	if numQubits <= 0 {
		numQubits = quantum.DefaultNumQubits
	}
	// Per-qubit channel frontier and dependency chain length.
	free := make([]time.Duration, numQubits)
	depth := make([]int, numQubits)

	sched := &Schedule{NumQubits: numQubits}
	for _, op := range ops {
		qubits := op.Qubits()
		for _, q := range qubits {
			if q < 0 || q >= numQubits {
				return nil, fmt.Errorf("pulse: qubit %d out of range for %d-qubit device", q, numQubits)
			}
		}

		var start time.Duration
		chain := 0
		for _, q := range qubits {
			if free[q] > start {
				start = free[q]
			}
			if depth[q] > chain {
				chain = depth[q]
			}
		}
		start = snapUp(start)

		g := ScheduledGate{Op: op, Start: start, Duration: Duration(op.Kind)}
		sched.Gates = append(sched.Gates, g)

		for _, q := range qubits {
			free[q] = g.End()
			depth[q] = chain + 1
		}
		sched.Serial += g.Duration
		if g.End() > sched.Total {
			sched.Total = g.End()
		}
		if chain+1 > sched.Depth {
			sched.Depth = chain + 1
		}
	}
	return sched, nil
}

// snapUp rounds a start time up to the hardware clock grid.
func snapUp(t time.Duration) time.Duration {
	if rem := t % clockResolution; rem != 0 {
		t += clockResolution - rem
	}
	return t
}

// String renders the schedule as a one-line-per-gate timing listing.
func (s *Schedule) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "schedule: %d gates, depth %d, total %s\n", len(s.Gates), s.Depth, s.Total)
	for _, g := range s.Gates {
		fmt.Fprintf(&sb, "  %-10s %8s -> %8s\n", g.Op.String(), g.Start, g.End())
	}
	return sb.String()
}
