// Package bockqsc is the top-level entry point for the BockQSC1090 10-qubit
// processor simulator. It ties the instruction parser, the statevector
// register, the pulse compiler and the characterization experiments together
// behind a small facade; the subpackages stay usable on their own.
package bockqsc

import (
	"context"

	"go.uber.org/zap"

	"github.com/BOCK-AI/BockQSC1090/algo"
	"github.com/BOCK-AI/BockQSC1090/calib"
	"github.com/BOCK-AI/BockQSC1090/device"
	"github.com/BOCK-AI/BockQSC1090/exp"
	"github.com/BOCK-AI/BockQSC1090/pulse"
	"github.com/BOCK-AI/BockQSC1090/quantum"
	"github.com/BOCK-AI/BockQSC1090/rb"
	"github.com/BOCK-AI/BockQSC1090/tomo"
)

// ProgramResult is the outcome of one .algo program execution.
type ProgramResult struct {
	AppliedGates  int                        `json:"applied_gates"`
	Bitstring     string                     `json:"bitstring"` // qubit 0 is the last character
	Probabilities []quantum.QubitProbability `json:"probabilities"`
}

// RunProgram parses and executes program text on a fresh 10-qubit register.
// The program is rejected atomically: a parse error means no gate ran. The
// terminal measurement (explicit MEASURE or implicit) samples from the seeded
// stream, so a fixed seed reproduces the same bitstring.
func RunProgram(text string, seed int64) (ProgramResult, error) {
	prog, err := algo.Parse(text)
	if err != nil {
		return ProgramResult{}, err
	}

	reg := quantum.NewRegister(quantum.DefaultNumQubits)
	if err := reg.ApplyAll(prog.Ops); err != nil {
		return ProgramResult{}, err
	}

	res := ProgramResult{
		AppliedGates:  len(prog.Ops),
		Probabilities: reg.State().QubitProbabilities(),
	}
	res.Bitstring, err = reg.Measure(exp.NewRand(seed))
	if err != nil {
		return ProgramResult{}, err
	}
	return res, nil
}

// ParseProgram validates program text without executing it.
func ParseProgram(text string) (algo.Program, error) {
	return algo.Parse(text)
}

// CompileProgram parses program text and schedules its gates onto the
// device's pulse channels without executing them.
func CompileProgram(text string) (*pulse.Schedule, error) {
	prog, err := algo.Parse(text)
	if err != nil {
		return nil, err
	}
	return pulse.Compile(prog.Ops, quantum.DefaultNumQubits)
}

// RunCalibration runs a Rabi or Ramsey sweep against one qubit.
func RunCalibration(ctx context.Context, qubit int, kind calib.Kind, cfg calib.Config, seed int64, logger *zap.Logger) (calib.Record, error) {
	return calib.Run(ctx, qubit, kind, cfg, seed, logger)
}

// RunTomography reconstructs one qubit's density matrix by measuring in the
// X, Y and Z bases.
func RunTomography(ctx context.Context, qubit, shots int, cfg tomo.Config, seed int64, logger *zap.Logger) (tomo.Record, error) {
	return tomo.Run(ctx, qubit, shots, cfg, seed, logger)
}

// RunRandomizedBenchmarking estimates one qubit's average gate fidelity from
// random Clifford sequences.
func RunRandomizedBenchmarking(ctx context.Context, qubit int, cfg rb.Config, seed int64, logger *zap.Logger) (rb.Record, error) {
	return rb.Run(ctx, qubit, cfg, seed, logger)
}

// DeviceBenchmarks produces the synthetic processor benchmark report.
func DeviceBenchmarks(seed int64) device.Benchmarks {
	return device.RunBenchmarks(seed)
}
