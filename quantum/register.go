package quantum

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// NormTolerance bounds the acceptable drift of total probability mass away
// from 1. Drift past it indicates a defect in gate application, not user
// error, and is treated as fatal.
const NormTolerance = 1e-9

var (
	// ErrMeasured is returned when a gate is applied to a register whose
	// terminal measurement has already happened.
	ErrMeasured = errors.New("register already measured; Reset before reuse")

	// ErrQubitRange is returned for an operand outside [0, NumQubits).
	ErrQubitRange = errors.New("qubit index out of range")
)

type regPhase uint8

const (
	phaseInit regPhase = iota
	phaseApplied
	phaseMeasured
)

// Register owns the statevector for one program execution. Its lifecycle is
// INIT -> zero or more gate applications -> MEASURED (terminal). A measured
// register rejects further gates until Reset.
type Register struct {
	sv    *StateVector
	phase regPhase
}

// NewRegister returns a register of numQubits qubits in |0...0>.
func NewRegister(numQubits int) *Register {
	return &Register{sv: NewStateVector(numQubits)}
}

// NumQubits returns the register width.
func (r *Register) NumQubits() int { return r.sv.NumQubits }

// State exposes the statevector for probability readout by the experiment
// engines. Callers must not mutate it directly.
func (r *Register) State() *StateVector { return r.sv }

// Apply runs one gate operation through the operator library.
func (r *Register) Apply(op Op) error {
	if r.phase == phaseMeasured {
		return ErrMeasured
	}
	for _, q := range op.Qubits() {
		if q < 0 || q >= r.sv.NumQubits {
			return fmt.Errorf("%w: %d (register has %d qubits)", ErrQubitRange, q, r.sv.NumQubits)
		}
	}
	r.sv.Apply(op)
	r.phase = phaseApplied
	r.checkNorm(op)
	return nil
}

// ApplyAll runs a gate sequence, stopping at the first failure.
func (r *Register) ApplyAll(ops []Op) error {
	for _, op := range ops {
		if err := r.Apply(op); err != nil {
			return err
		}
	}
	return nil
}

// Measure samples a full-register outcome from the caller's random stream,
// collapses the state onto it, and returns the outcome bitstring (qubit 0
// last). The register is terminal afterwards.
func (r *Register) Measure(rng *rand.Rand) (string, error) {
	if r.phase == phaseMeasured {
		return "", ErrMeasured
	}
	outcome := r.sv.Sample(rng)
	r.sv.Collapse(outcome)
	r.phase = phaseMeasured
	return FormatBasisState(outcome, r.sv.NumQubits), nil
}

// Reset returns the register to |0...0> and the INIT phase.
func (r *Register) Reset() {
	r.sv = NewStateVector(r.sv.NumQubits)
	r.phase = phaseInit
}

func (r *Register) checkNorm(op Op) {
	norm := r.sv.Norm()
	if math.Abs(norm-1) > NormTolerance {
		panic(fmt.Sprintf("quantum: statevector norm %.12f after %s; gate application is defective", norm, op))
	}
}
