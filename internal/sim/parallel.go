package sim

import (
	"context"
	"sync"
)

// Ensemble runs independent loop instances concurrently, one per
// starting condition. A task is not safe for concurrent use, so the
// factory must build a fresh task and robot for every index.
type Ensemble struct {
	build   func(idx int) (*Loop, error)
	numRuns int
}

func NewEnsemble(build func(idx int) (*Loop, error), numRuns int) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			loop, err := e.build(idx)
			if err != nil {
				errs[idx] = err
				return
			}

			results[idx], errs[idx] = loop.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
