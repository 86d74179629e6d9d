package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"strings"
)

type Complex = complex128

// StateVector holds the 2^N complex amplitudes of an N-qubit register.
// Qubit q corresponds to bit q of the amplitude index.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns the all-zero basis state |0...0>.
func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Apply dispatches a gate operation onto the statevector.
// CNOT is not an independent primitive: it is the H·CZ·H conjugation on the
// target qubit, so CNOT(c,t) is observably identical to H(t); CZ(c,t); H(t).
func (s *StateVector) Apply(op Op) {
	switch op.Kind {
	case GateH:
		s.ApplyH(op.Target)
	case GateX:
		s.ApplyX(op.Target)
	case GateY:
		s.ApplyY(op.Target)
	case GateZ:
		s.ApplyZ(op.Target)
	case GateCZ:
		s.ApplyCZ(op.Control, op.Target)
	case GateCNOT:
		s.ApplyH(op.Target)
		s.ApplyCZ(op.Control, op.Target)
		s.ApplyH(op.Target)
	}
}

func (s *StateVector) ApplyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a + b)
			s.Amplitudes[j] = hFactor * (a - b)
		}
	}
}

func (s *StateVector) ApplyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) ApplyY(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = 1i*s.Amplitudes[j], -1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) ApplyZ(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

// ApplyS applies the phase gate S (or its adjoint). Not part of the program
// instruction set; used by the tomography basis rotations.
func (s *StateVector) ApplyS(q int, dagger bool) {
	n := len(s.Amplitudes)
	bit := 1 << q
	factor := Complex(1i)
	if dagger {
		factor = -1i
	}
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) ApplyCZ(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

// ApplyMatrix contracts an arbitrary 2x2 unitary along the target qubit's
// axis, leaving all other axes untouched. m is in row-major |0>,|1> order.
func (s *StateVector) ApplyMatrix(q int, m [2][2]Complex) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a, b := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = m[0][0]*a + m[0][1]*b
			s.Amplitudes[j] = m[1][0]*a + m[1][1]*b
		}
	}
}

// Norm returns the total probability mass, which is 1 for a valid state.
func (s *StateVector) Norm() float64 {
	total := 0.0
	for _, amp := range s.Amplitudes {
		total += real(amp * cmplx.Conj(amp))
	}
	return total
}

// Probability returns |amplitude|^2 of one basis state.
func (s *StateVector) Probability(i int) float64 {
	amp := s.Amplitudes[i]
	return real(amp * cmplx.Conj(amp))
}

// Sample draws one basis-state index from the measurement distribution using
// the caller's random stream. The stream is never a package global, so a
// fixed seed reproduces the same outcome.
func (s *StateVector) Sample(rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	last := 0
	for i := range s.Amplitudes {
		p := s.Probability(i)
		if p == 0 {
			continue
		}
		acc += p
		last = i
		if r < acc {
			return i
		}
	}
	// Float round-off can leave acc marginally below 1; fall back to the
	// last basis state with nonzero probability.
	return last
}

// Collapse projects the state onto a single basis outcome.
func (s *StateVector) Collapse(outcome int) {
	for i := range s.Amplitudes {
		s.Amplitudes[i] = 0
	}
	s.Amplitudes[outcome] = 1
}

// Bit reports the value of qubit q in basis-state index i.
func Bit(i, q int) int {
	return (i >> q) & 1
}

// FormatBasisState renders a basis-state index as an n-bit string with
// qubit 0 as the last character.
func FormatBasisState(index, n int) string {
	var sb strings.Builder
	for q := n - 1; q >= 0; q-- {
		if index&(1<<q) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// QubitProbability is the marginal 0/1 distribution of a single qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal distribution of every qubit.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i := range s.Amplitudes {
		p := s.Probability(i)
		if p == 0 {
			continue
		}
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

func (s *StateVector) String() string {
	return fmt.Sprintf("StateVector(%d qubits)", s.NumQubits)
}
