// Package tomo reconstructs a single-qubit density matrix from simulated
// measurements in the X, Y and Z bases via linear inversion.
package tomo

import (
	"context"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BOCK-AI/BockQSC1090/exp"
	"github.com/BOCK-AI/BockQSC1090/quantum"
)

// Basis is one of the three Pauli measurement bases.
type Basis string

const (
	BasisX Basis = "X"
	BasisY Basis = "Y"
	BasisZ Basis = "Z"
)

// Bases lists the measurement bases in acquisition order.
var Bases = []Basis{BasisX, BasisY, BasisZ}

// Complex is a JSON-serializable complex number; the density matrix in the
// record stays a plain data structure.
type Complex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// Counts is the (zeros, ones) outcome tally of one measurement batch.
type Counts struct {
	Zeros int `json:"zeros"`
	Ones  int `json:"ones"`
}

// Record is the plain tomography result.
type Record struct {
	RunID   string           `json:"run_id"`
	Qubit   int              `json:"qubit"`
	Shots   int              `json:"shots_per_basis"`
	Counts  map[Basis]Counts `json:"counts"`
	Bloch   [3]float64       `json:"bloch"`   // <X>, <Y>, <Z>
	Density [2][2]Complex    `json:"density"` // reconstructed rho
	Clamped bool             `json:"clamped"` // eigenvalues clamped to the simplex
	Partial bool             `json:"partial"`
}

// Config tunes the tomography run.
type Config struct {
	Prep    []quantum.Op // state preparation applied before each shot
	Qubits  int          // register width; DefaultNumQubits when zero
	Workers int
}

// Run acquires Shots measurement outcomes per basis for the target qubit and
// reconstructs its density matrix. Each shot owns a private short-lived
// register and a pre-derived random sub-stream, so the reconstruction is
// deterministic for a fixed seed regardless of worker count.
func Run(ctx context.Context, qubit, shots int, cfg Config, seed int64, logger *zap.Logger) (Record, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Qubits <= 0 {
		cfg.Qubits = quantum.DefaultNumQubits
	}
	rec := Record{
		RunID:  uuid.NewString(),
		Qubit:  qubit,
		Shots:  shots,
		Counts: make(map[Basis]Counts, len(Bases)),
	}

	for bi, basis := range Bases {
		bits, partial, err := exp.Map(ctx, shots, cfg.Workers, exp.ChildSeed(seed, bi),
			func(trial int, rng *rand.Rand) (int, error) {
				return measureOnce(qubit, basis, cfg, rng)
			})
		if err != nil {
			return Record{}, err
		}
		rec.Partial = rec.Partial || partial
		var c Counts
		for _, b := range bits {
			if b == 0 {
				c.Zeros++
			} else {
				c.Ones++
			}
		}
		rec.Counts[basis] = c
	}

	for i, basis := range Bases {
		rec.Bloch[i] = expectation(rec.Counts[basis])
	}
	rec.Density, rec.Clamped = densityFromBloch(rec.Bloch)

	if rec.Clamped {
		logger.Debug("tomography reconstruction clamped to the physical simplex",
			zap.Int("qubit", qubit),
			zap.Float64s("bloch", rec.Bloch[:]))
	}
	return rec, nil
}

// measureOnce prepares a fresh register, rotates the target qubit into the
// requested basis, and returns that qubit's measured bit.
func measureOnce(qubit int, basis Basis, cfg Config, rng *rand.Rand) (int, error) {
	reg := quantum.NewRegister(cfg.Qubits)
	if err := reg.ApplyAll(cfg.Prep); err != nil {
		return 0, err
	}
	// Basis rotations map the measurement axis onto Z: H for X, S-dagger
	// then H for Y, nothing for Z.
	sv := reg.State()
	switch basis {
	case BasisX:
		sv.ApplyH(qubit)
	case BasisY:
		sv.ApplyS(qubit, true)
		sv.ApplyH(qubit)
	}
	outcome := sv.Sample(rng)
	return quantum.Bit(outcome, qubit), nil
}

// expectation converts a 0/1 tally into a Pauli expectation value.
func expectation(c Counts) float64 {
	n := c.Zeros + c.Ones
	if n == 0 {
		return 0
	}
	return float64(c.Zeros-c.Ones) / float64(n)
}

// densityFromBloch builds rho = (I + x*X + y*Y + z*Z)/2. When finite
// sampling pushes the Bloch vector outside the unit ball the matrix is not
// positive-semidefinite; its eigenvalues (1±|r|)/2 are clamped to the
// nearest valid simplex point by scaling r back to unit length, and the
// clamped flag is raised instead of failing the reconstruction.
func densityFromBloch(bloch [3]float64) ([2][2]Complex, bool) {
	x, y, z := bloch[0], bloch[1], bloch[2]
	clamped := false
	if r := math.Sqrt(x*x + y*y + z*z); r > 1 {
		x, y, z = x/r, y/r, z/r
		clamped = true
	}
	return [2][2]Complex{
		{{Re: (1 + z) / 2}, {Re: x / 2, Im: -y / 2}},
		{{Re: x / 2, Im: y / 2}, {Re: (1 - z) / 2}},
	}, clamped
}
