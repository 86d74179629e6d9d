// Package rb implements single-qubit randomized benchmarking: random
// Clifford sequences of growing length, closed by the inverse element, run
// under a depolarizing noise model. The survival probability decays as
// A*p^L + B, and the fitted p yields the average gate fidelity.
package rb

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BOCK-AI/BockQSC1090/exp"
	"github.com/BOCK-AI/BockQSC1090/internal/fit"
	"github.com/BOCK-AI/BockQSC1090/quantum"
)

// Config tunes a randomized benchmarking run. Zero values get defaults.
type Config struct {
	Lengths        []int   `mapstructure:"lengths"`        // Clifford sequence lengths
	Randomizations int     `mapstructure:"randomizations"` // random sequences per length
	NoiseProb      float64 `mapstructure:"noise_prob"`     // depolarizing probability per Clifford
	Qubits         int     `mapstructure:"qubits"`         // register width; DefaultNumQubits when zero
	Workers        int     `mapstructure:"workers"`
}

// LengthPoint is the mean survival probability at one sequence length.
type LengthPoint struct {
	Length   int     `json:"length"`
	Survival float64 `json:"survival"`
}

// Record is the plain randomized benchmarking result.
type Record struct {
	RunID        string        `json:"run_id"`
	Qubit        int           `json:"qubit"`
	Points       []LengthPoint `json:"points"`
	DecayP       float64       `json:"decay_p"`       // fitted per-Clifford decay
	Amplitude    float64       `json:"amplitude"`     // fitted A
	Offset       float64       `json:"offset"`        // fitted B
	GateFidelity float64       `json:"gate_fidelity"` // 1 - (1-p)/2
	Residual     float64       `json:"residual"`
	Partial      bool          `json:"partial"`
}

func (c Config) withDefaults() Config {
	if len(c.Lengths) == 0 {
		c.Lengths = []int{1, 2, 4, 8, 16, 32, 64}
	}
	if c.Randomizations <= 0 {
		c.Randomizations = 30
	}
	if c.Qubits <= 0 {
		c.Qubits = quantum.DefaultNumQubits
	}
	return c
}

// Run benchmarks one qubit. For each sequence length it averages the survival
// probability (the population left in |0> after the inverting Clifford) over
// the configured number of random sequences, then fits the exponential decay.
// Deterministic for a fixed seed regardless of worker count.
func Run(ctx context.Context, qubit int, cfg Config, seed int64, logger *zap.Logger) (Record, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	for _, l := range cfg.Lengths {
		if l <= 0 {
			return Record{}, fmt.Errorf("rb: sequence length must be positive, got %d", l)
		}
	}

	rec := Record{
		RunID: uuid.NewString(),
		Qubit: qubit,
	}

	for li, length := range cfg.Lengths {
		survivals, partial, err := exp.Map(ctx, cfg.Randomizations, cfg.Workers, exp.ChildSeed(seed, li),
			func(trial int, rng *rand.Rand) (float64, error) {
				return runSequence(qubit, length, cfg, rng), nil
			})
		if err != nil {
			return Record{}, err
		}
		rec.Partial = rec.Partial || partial
		rec.Points = append(rec.Points, LengthPoint{Length: length, Survival: exp.Mean(survivals)})
	}

	rec.DecayP, rec.Amplitude, rec.Offset, rec.Residual = fitDecay(rec.Points)
	rec.GateFidelity = 1 - (1-rec.DecayP)/2

	logger.Debug("randomized benchmarking complete",
		zap.Int("qubit", qubit),
		zap.Float64("decay_p", rec.DecayP),
		zap.Float64("gate_fidelity", rec.GateFidelity))
	return rec, nil
}

// runSequence draws a random Clifford sequence of the given length, appends
// the group inverse, applies it with depolarizing noise after each Clifford,
// and returns the population left in |0> on the benchmarked qubit.
func runSequence(qubit, length int, cfg Config, rng *rand.Rand) float64 {
	sv := quantum.NewStateVector(cfg.Qubits)
	seq := make([]int, length)
	for i := range seq {
		seq[i] = rng.Intn(len(cliffords))
		sv.ApplyMatrix(qubit, cliffords[seq[i]])
		applyDepolarizing(sv, qubit, cfg.NoiseProb, rng)
	}
	sv.ApplyMatrix(qubit, inverseOf(seq))
	applyDepolarizing(sv, qubit, cfg.NoiseProb, rng)

	// Survival is the marginal probability of |0> on the benchmarked qubit;
	// spectator qubits never leave |0>.
	return sv.QubitProbabilities()[qubit].Prob0
}

// applyDepolarizing applies the stochastic depolarizing channel: with
// probability p a uniformly random Pauli (I excluded only by chance) hits the
// qubit. At p=0 the channel is the identity and the decay fit must report
// p=1 exactly.
func applyDepolarizing(sv *quantum.StateVector, qubit int, p float64, rng *rand.Rand) {
	if p <= 0 || rng.Float64() >= p {
		return
	}
	switch rng.Intn(3) {
	case 0:
		sv.ApplyX(qubit)
	case 1:
		sv.ApplyY(qubit)
	case 2:
		sv.ApplyZ(qubit)
	}
}

// fitDecay fits survival(L) = A*p^L + B. A and B are linear given p, so p is
// scanned on a grid and refined; a flat curve is the noiseless case and maps
// to p=1 exactly rather than an arbitrary point on the degenerate ridge.
func fitDecay(points []LengthPoint) (p, a, b, residual float64) {
	if len(points) == 0 {
		return 1, 0, 0, 0
	}
	flat := true
	for _, pt := range points {
		if math.Abs(pt.Survival-points[0].Survival) > 1e-6 {
			flat = false
			break
		}
	}
	if flat {
		return 1, 0, points[0].Survival, 0
	}

	y := make([]float64, len(points))
	ones := make([]float64, len(points))
	for i, pt := range points {
		y[i] = pt.Survival
		ones[i] = 1
	}

	sseAt := func(cand float64) float64 {
		basis := make([]float64, len(points))
		for i, pt := range points {
			basis[i] = math.Pow(cand, float64(pt.Length))
		}
		_, _, sse, ok := fit.Linear2(y, basis, ones)
		if !ok {
			return math.Inf(1)
		}
		return sse
	}

	const lo, hi, steps = 1e-3, 0.9999, 600
	best, bestSSE := hi, math.Inf(1)
	for i := 0; i <= steps; i++ {
		cand := lo + (hi-lo)*float64(i)/steps
		if sse := sseAt(cand); sse < bestSSE {
			best, bestSSE = cand, sse
		}
	}
	step := (hi - lo) / steps
	p = fit.GoldenMin(sseAt, math.Max(lo, best-2*step), math.Min(hi, best+2*step), 40)

	basis := make([]float64, len(points))
	for i, pt := range points {
		basis[i] = math.Pow(p, float64(pt.Length))
	}
	a, b, sse, _ := fit.Linear2(y, basis, ones)
	residual = fit.RMSE(sse, len(points))
	return p, a, b, residual
}
