package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/internal/config"
	"github.com/san-kum/dynfilter/internal/metrics"
	"github.com/san-kum/dynfilter/internal/sim"
)

var ErrNoCandidate = errors.New("optim: no valid parameter combination")

// Candidate is one evaluated point of the grid.
type Candidate struct {
	Params dynamo.Params
	Score  float64
}

// GridSearch tries every combination of frequency, damping and response and
// keeps the one minimizing a metric.
type GridSearch struct {
	ranges [3][]float32
}

func NewGridSearch(frequencies, dampings, responses []float32) *GridSearch {
	return &GridSearch{ranges: [3][]float32{frequencies, dampings, responses}}
}

// Size is the number of combinations in the grid.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs cfg once per grid point and returns the parameters with the
// lowest value of metricName. Combinations that fail validation are skipped.
// Ties go to the point enumerated first.
func (g *GridSearch) Search(ctx context.Context, cfg *config.Config, metricName string) (Candidate, []Candidate, error) {
	var points []dynamo.Params
	g.searchRecursive(0, dynamo.Params{}, &points)

	sims := make([]*sim.Simulator, 0, len(points))
	valid := make([]dynamo.Params, 0, len(points))
	for _, p := range points {
		c := *cfg
		c.Filter = p
		s, _, err := sim.FilterFromConfig(&c)
		var pe *dynamo.ParamError
		if errors.As(err, &pe) {
			continue
		}
		if err != nil {
			return Candidate{}, nil, err
		}
		for _, m := range metrics.Standard() {
			s.AddMetric(m)
		}
		sims = append(sims, s)
		valid = append(valid, p)
	}
	if len(sims) == 0 {
		return Candidate{}, nil, ErrNoCandidate
	}

	results, err := sim.RunAll(ctx, sims, cfg.Clock.Duration)
	if err != nil {
		return Candidate{}, nil, err
	}

	best := Candidate{Score: math.Inf(1)}
	found := false
	all := make([]Candidate, len(results))
	for i, res := range results {
		val, ok := res.Metrics[metricName]
		if !ok {
			return Candidate{}, nil, fmt.Errorf("unknown metric %q", metricName)
		}
		all[i] = Candidate{Params: valid[i], Score: val}
		if !math.IsNaN(val) && (!found || val < best.Score) {
			best = all[i]
			found = true
		}
	}
	if !found {
		return Candidate{}, all, ErrNoCandidate
	}
	return best, all, nil
}

func (g *GridSearch) searchRecursive(depth int, current dynamo.Params, out *[]dynamo.Params) {
	if depth == len(g.ranges) {
		*out = append(*out, current)
		return
	}

	for _, val := range g.ranges[depth] {
		next := current
		switch depth {
		case 0:
			next.Frequency = val
		case 1:
			next.Damping = val
		case 2:
			next.Response = val
		}
		g.searchRecursive(depth+1, next, out)
	}
}
