package knn

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Hyperparameter is a k and distance strategy pair under evaluation.
type Hyperparameter struct {
	K        int
	Distance Distance
}

// Test classifies every testing sample against the training partition and
// returns the fraction whose classification matches its label. Testing
// samples are copied so the caller's partition is never mutated.
func (h Hyperparameter) Test(training []TrainingSample, testing []TestingSample) (float64, error) {
	if len(testing) == 0 {
		return 0, ErrNoTesting
	}

	passed := 0
	for _, ts := range testing {
		result, err := Classify(h.K, h.Distance, training, UnknownSample{Sample: ts.Sample})
		if err != nil {
			return 0, err
		}
		if err := ts.Assign(result); err != nil {
			return 0, err
		}
		if ts.Matches() {
			passed++
		}
	}

	return float64(passed) / float64(len(testing)), nil
}

// Timing reports one grid cell's quality and how long its evaluation took.
type Timing struct {
	K        int           `json:"k"`
	Distance string        `json:"distance"`
	Quality  float64       `json:"quality"`
	Elapsed  time.Duration `json:"elapsed"`
}

// TuneGrid evaluates every k and distance combination against the partition,
// bounded by GOMAXPROCS concurrent evaluations. Results arrive in grid order
// regardless of completion order.
func TuneGrid(
	ctx context.Context,
	training []TrainingSample,
	testing []TestingSample,
	ks []int,
	distances []Distance,
) ([]Timing, error) {
	results := make([]Timing, len(ks)*len(distances))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, k := range ks {
		for j, dist := range distances {
			idx := i*len(distances) + j
			h := Hyperparameter{K: k, Distance: dist}

			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				start := time.Now()
				quality, err := h.Test(training, testing)
				if err != nil {
					return err
				}

				results[idx] = Timing{
					K:        h.K,
					Distance: h.Distance.Name(),
					Quality:  quality,
					Elapsed:  time.Since(start),
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
