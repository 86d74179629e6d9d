// Package device models the 10-qubit transmon processor: static circuit
// parameters derived from the layout, the nearest-neighbor coupling map, and
// synthetic benchmark figures drawn within the hardware's acceptance ranges.
package device

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/BOCK-AI/BockQSC1090/exp"
	"github.com/BOCK-AI/BockQSC1090/quantum"
)

// Transmon circuit constants shared by every qubit.
const (
	Anharmonicity = -0.25 // GHz
	ChargingEc    = 0.25  // GHz
	baseFrequency = 5.0   // GHz, qubit 0
	frequencyStep = 0.1   // GHz between adjacent qubit indices
)

// QubitParams are the static circuit parameters of one transmon.
type QubitParams struct {
	Frequency01   float64 `json:"frequency_01"`  // GHz
	Anharmonicity float64 `json:"anharmonicity"` // GHz
	Ec            float64 `json:"ec_ghz"`        // charging energy
	Ej            float64 `json:"ej_ghz"`        // Josephson energy
}

// CircuitParameters returns the per-qubit transmon parameters. Frequencies
// are staggered 100 MHz apart to keep neighbors addressable, and Ej follows
// from the transmon relation freq ~ sqrt(8*Ej*Ec) - Ec.
func CircuitParameters() [quantum.DefaultNumQubits]QubitParams {
	var out [quantum.DefaultNumQubits]QubitParams
	for i := range out {
		freq := baseFrequency + frequencyStep*float64(i)
		out[i] = QubitParams{
			Frequency01:   freq,
			Anharmonicity: Anharmonicity,
			Ec:            ChargingEc,
			Ej:            (freq - Anharmonicity) * (freq - Anharmonicity) / (8 * ChargingEc),
		}
	}
	return out
}

// CouplingPair is a directed control-target link on the 2x5 lattice.
type CouplingPair struct {
	Control int `json:"control"`
	Target  int `json:"target"`
}

// CouplingPairs lists the nearest-neighbor couplers: two rows of five plus
// the five rungs between them.
func CouplingPairs() []CouplingPair {
	return []CouplingPair{
		{0, 1}, {1, 2}, {2, 3}, {3, 4},
		{5, 6}, {6, 7}, {7, 8}, {8, 9},
		{0, 5}, {1, 6}, {2, 7}, {3, 8}, {4, 9},
	}
}

// Coupled reports whether two qubits share a coupler, in either direction.
func Coupled(a, b int) bool {
	for _, p := range CouplingPairs() {
		if (p.Control == a && p.Target == b) || (p.Control == b && p.Target == a) {
			return true
		}
	}
	return false
}

// Benchmark acceptance thresholds.
const (
	MinSingleQubitFidelity = 0.999
	MinTwoQubitFidelity    = 0.990
	MinReadoutFidelity     = 0.90
)

// Benchmarks is a synthetic benchmark report for the processor.
type Benchmarks struct {
	SingleQubit map[int]float64    `json:"single_qubit_fidelity"`
	TwoQubit    map[string]float64 `json:"two_qubit_fidelity"`
	Readout     []float64          `json:"readout_fidelity"`
	AvgSingle   float64            `json:"avg_single_qubit"`
	AvgTwoQubit float64            `json:"avg_two_qubit"`
	AvgReadout  float64            `json:"avg_readout"`
	T1Avg       float64            `json:"t1_avg_us"`
	T2Avg       float64            `json:"t2_avg_us"`
	QuantumVol  int                `json:"quantum_volume"`
	Pass        bool               `json:"pass"`
}

// RunBenchmarks draws per-qubit and per-coupler fidelities uniformly within
// the device's characterized ranges and clamps them to the datasheet window, then
// judges the whole report against the acceptance thresholds. Deterministic
// for a fixed seed.
func RunBenchmarks(seed int64) Benchmarks {
	rng := exp.NewRand(seed)
	b := Benchmarks{
		SingleQubit: make(map[int]float64, quantum.DefaultNumQubits),
		TwoQubit:    make(map[string]float64),
		T1Avg:       100.0,
		T2Avg:       50.0,
		QuantumVol:  64,
	}

	for q := 0; q < quantum.DefaultNumQubits; q++ {
		f := clamp(0.9995+uniform(rng, 0.0003), 0.999, 1.0)
		b.SingleQubit[q] = f
		b.AvgSingle += f
	}
	b.AvgSingle /= quantum.DefaultNumQubits

	pairs := CouplingPairs()
	for _, p := range pairs {
		f := clamp(0.992+uniform(rng, 0.001), 0.990, 0.995)
		b.TwoQubit[fmt.Sprintf("%d-%d", p.Control, p.Target)] = f
		b.AvgTwoQubit += f
	}
	b.AvgTwoQubit /= float64(len(pairs))

	for q := 0; q < quantum.DefaultNumQubits; q++ {
		f := 0.94 + uniform(rng, 0.02)
		b.Readout = append(b.Readout, f)
		b.AvgReadout += f
	}
	b.AvgReadout /= quantum.DefaultNumQubits

	b.Pass = b.AvgSingle >= MinSingleQubitFidelity &&
		b.AvgTwoQubit >= MinTwoQubitFidelity &&
		b.AvgReadout >= MinReadoutFidelity
	return b
}

// uniform draws from [-width, width).
func uniform(rng *rand.Rand, width float64) float64 {
	return (2*rng.Float64() - 1) * width
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Summary renders the benchmark report as a short text block.
func (b Benchmarks) Summary() string {
	status := "FAIL"
	if b.Pass {
		status = "PASS"
	}
	var sb strings.Builder
	sb.WriteString("10-Qubit Processor Benchmark Summary\n")
	fmt.Fprintf(&sb, "  Single-qubit gate fidelity: %.4f\n", b.AvgSingle)
	fmt.Fprintf(&sb, "  Two-qubit gate fidelity:    %.4f\n", b.AvgTwoQubit)
	fmt.Fprintf(&sb, "  Readout fidelity:           %.4f\n", b.AvgReadout)
	fmt.Fprintf(&sb, "  T1: %.0f us, T2: %.0f us\n", b.T1Avg, b.T2Avg)
	fmt.Fprintf(&sb, "  Quantum volume: %d\n", b.QuantumVol)
	fmt.Fprintf(&sb, "  Status: %s\n", status)
	return sb.String()
}
