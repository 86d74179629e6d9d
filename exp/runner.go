package exp

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TrialFunc computes one independent trial. The rng is the trial's private,
// pre-derived sub-stream; no other state is shared between trials.
type TrialFunc[T any] func(trial int, rng *rand.Rand) (T, error)

// Map runs trials concurrently across the given number of workers and
// returns the per-trial results in trial order. Each trial is seeded from
// ChildSeed(seed, trial), so the aggregate is identical for any worker
// count or scheduling order.
//
// Cancellation is cooperative and checked between trials. On cancellation
// the completed trials (in trial order, gaps removed) are returned with
// partial=true; trials that never ran are discarded, never merged.
func Map[T any](ctx context.Context, trials, workers int, seed int64, fn TrialFunc[T]) (results []T, partial bool, err error) {
	if trials <= 0 {
		return nil, false, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > trials {
		workers = trials
	}

	values := make([]T, trials)
	done := make([]bool, trials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
feed:
	for i := 0; i < trials; i++ {
		select {
		case <-gctx.Done():
			break feed
		default:
		}
		g.Go(func() error {
			v, ferr := fn(i, ChildRand(seed, i))
			if ferr != nil {
				return ferr
			}
			values[i] = v
			done[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, true, err
	}

	for i := 0; i < trials; i++ {
		if done[i] {
			results = append(results, values[i])
		} else {
			partial = true
		}
	}
	return results, partial, nil
}

// Mean reduces a slice of float64 trial results. Reduction over trial
// results never depends on completion order.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}
