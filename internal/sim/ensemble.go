package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/dynfilter/internal/config"
)

// Ensemble reruns one configuration with consecutive seeds for the target
// noise and the frame jitter.
type Ensemble struct {
	cfg       config.Config
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

// NewEnsemble returns an ensemble of numRuns runs of cfg. newMetrics builds a
// fresh metric set for each run and may be nil.
func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{cfg: *cfg, numRuns: numRuns, seedStart: seedStart, metrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", e.numRuns)
	}

	sims := make([]*Simulator, e.numRuns)
	for i := range sims {
		cfgCopy := e.cfg
		seed := e.seedStart + int64(i)
		cfgCopy.Signal.Seed, cfgCopy.Clock.Seed = seed, seed

		s, _, err := FilterFromConfig(&cfgCopy)
		if err != nil {
			return nil, err
		}
		if e.metrics != nil {
			for _, m := range e.metrics() {
				s.AddMetric(m)
			}
		}
		sims[i] = s
	}

	return RunAll(ctx, sims, e.cfg.Clock.Duration)
}

// Spread summarizes one metric across an ensemble.
type Spread struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Aggregate computes the spread of every metric reported by all results.
func Aggregate(results []*Result) map[string]Spread {
	out := make(map[string]Spread)
	if len(results) == 0 {
		return out
	}

	for name := range results[0].Metrics {
		sp := Spread{Min: math.Inf(1), Max: math.Inf(-1)}
		var sum, sumSq float64
		n := 0
		for _, r := range results {
			v, ok := r.Metrics[name]
			if !ok {
				continue
			}
			sum += v
			sumSq += v * v
			sp.Min = min(sp.Min, v)
			sp.Max = max(sp.Max, v)
			n++
		}
		if n != len(results) {
			continue
		}
		sp.Mean = sum / float64(n)
		sp.Std = math.Sqrt(max(0, sumSq/float64(n)-sp.Mean*sp.Mean))
		out[name] = sp
	}
	return out
}
