// Package algo parses the .algo instruction format: one instruction per
// line, `#` starts a comment, blank lines are ignored. Instructions are
// `GATE q [q2]` with GATE in {H, X, Y, Z, CNOT, CZ}, plus an optional final
// case-insensitive MEASURE line.
package algo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BOCK-AI/BockQSC1090/quantum"
)

// CommentMarker introduces a trailing comment.
const CommentMarker = "#"

// Parse failure kinds. A ParseError wraps exactly one of these.
var (
	ErrUnknownGate   = errors.New("unknown gate mnemonic")
	ErrOperandCount  = errors.New("wrong operand count for gate")
	ErrOperandSyntax = errors.New("operand is not an integer")
	ErrOperandRange  = errors.New("qubit index out of range")
	ErrControlTarget = errors.New("control and target must differ")
	ErrTrailingOps   = errors.New("instructions after MEASURE")
)

// ParseError is a structured parse failure. The whole program is rejected;
// no gates are applied when Parse returns an error.
type ParseError struct {
	Line   int    // 1-based line number of the offending instruction
	Text   string // the offending line, comment stripped
	Kind   error  // one of the Err* sentinels above
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("line %d: %v: %s", e.Line, e.Kind, e.Detail)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// Program is a validated, ordered gate list. Measured reports whether an
// explicit MEASURE line terminated the program; when false, callers perform
// an implicit terminal measurement.
type Program struct {
	Ops      []quantum.Op
	Measured bool
}

// Parse validates program text against the default 10-qubit register.
func Parse(text string) (Program, error) {
	return ParseN(text, quantum.DefaultNumQubits)
}

// ParseN validates program text against a register of numQubits qubits.
func ParseN(text string, numQubits int) (Program, error) {
	var prog Program
	for lineNo, raw := range strings.Split(text, "\n") {
		line := raw
		if i := strings.Index(line, CommentMarker); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fail := func(kind error, detail string) (Program, error) {
			return Program{}, &ParseError{Line: lineNo + 1, Text: line, Kind: kind, Detail: detail}
		}

		if prog.Measured {
			return fail(ErrTrailingOps, line)
		}

		fields := strings.Fields(line)
		mnemonic := strings.ToUpper(fields[0])

		if mnemonic == "MEASURE" {
			if len(fields) != 1 {
				return fail(ErrOperandCount, "MEASURE takes no operands")
			}
			prog.Measured = true
			continue
		}

		kind, ok := quantum.KindFromMnemonic(mnemonic)
		if !ok {
			return fail(ErrUnknownGate, mnemonic)
		}
		operands := fields[1:]
		if len(operands) != kind.Arity() {
			return fail(ErrOperandCount, fmt.Sprintf("%s takes %d, got %d", kind, kind.Arity(), len(operands)))
		}

		args := make([]int, len(operands))
		for i, tok := range operands {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return fail(ErrOperandSyntax, tok)
			}
			if v < 0 || v >= numQubits {
				return fail(ErrOperandRange, fmt.Sprintf("%d not in [0, %d)", v, numQubits))
			}
			args[i] = v
		}

		if kind.Arity() == 2 {
			if args[0] == args[1] {
				return fail(ErrControlTarget, fmt.Sprintf("both operands are %d", args[0]))
			}
			prog.Ops = append(prog.Ops, quantum.Two(kind, args[0], args[1]))
		} else {
			prog.Ops = append(prog.Ops, quantum.Single(kind, args[0]))
		}
	}
	return prog, nil
}
