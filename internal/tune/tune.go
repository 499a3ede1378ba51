// Package tune searches parameter grids for the servo setting that
// minimizes a recorded metric.
package tune

import (
	"context"
	"fmt"
	"math"

	"github.com/davrolle/vservo/internal/sim"
)

// BuildFunc assembles a fresh loop and run config for one parameter
// assignment. Loops are single-use, so the search calls it once per
// grid point.
type BuildFunc func(params map[string]float64) (*sim.Loop, sim.Config, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every grid point and returns the assignment with the
// smallest value of the named metric. Grid points whose build or run
// fails are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	build BuildFunc,
	metricName string,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	if bestParams == nil {
		return nil, 0, fmt.Errorf("no grid point produced metric %s", metricName)
	}

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build BuildFunc,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		loop, cfg, err := build(current)
		if err != nil {
			return
		}

		result, err := loop.Run(ctx, cfg)
		if err != nil {
			return
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return
		}

		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		g.searchRecursive(ctx, depth+1, next, build, metricName, best, bestParams)
	}
}
