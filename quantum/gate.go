package quantum

import "fmt"

// DefaultNumQubits is the register width of the BockQSC1090 processor.
const DefaultNumQubits = 10

// Kind identifies one of the supported gate operators.
type Kind uint8

const (
	GateH Kind = iota
	GateX
	GateY
	GateZ
	GateCNOT
	GateCZ
)

var kindNames = [...]string{"H", "X", "Y", "Z", "CNOT", "CZ"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Arity returns the number of qubit operands the gate takes.
func (k Kind) Arity() int {
	switch k {
	case GateCNOT, GateCZ:
		return 2
	default:
		return 1
	}
}

// KindFromMnemonic resolves a gate mnemonic to its Kind.
// Matching is exact; callers normalize case first.
func KindFromMnemonic(s string) (Kind, bool) {
	for i, name := range kindNames {
		if s == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Op is a single gate application. Control is -1 for single-qubit gates.
type Op struct {
	Kind    Kind `json:"kind"`
	Target  int  `json:"target"`
	Control int  `json:"control"`
}

// Single builds a one-qubit operation.
func Single(k Kind, target int) Op {
	return Op{Kind: k, Target: target, Control: -1}
}

// Two builds a controlled two-qubit operation.
func Two(k Kind, control, target int) Op {
	return Op{Kind: k, Target: target, Control: control}
}

// Qubits returns the operand qubits, control first for two-qubit gates.
func (op Op) Qubits() []int {
	if op.Control >= 0 {
		return []int{op.Control, op.Target}
	}
	return []int{op.Target}
}

func (op Op) String() string {
	if op.Control >= 0 {
		return fmt.Sprintf("%s %d %d", op.Kind, op.Control, op.Target)
	}
	return fmt.Sprintf("%s %d", op.Kind, op.Target)
}
