package baseline

import (
	"context"
	"fmt"

	"github.com/san-kum/dynfilter/internal/config"
	"github.com/san-kum/dynfilter/internal/metrics"
	"github.com/san-kum/dynfilter/internal/sim"
)

// Entry is the outcome of one smoother in a comparison.
type Entry struct {
	Name   string      `json:"name"`
	Result *sim.Result `json:"result"`
}

// Compare runs every kind against the signal and clock described by cfg
// and collects the standard metrics for each. All runs see identical
// targets and frame times.
func Compare(ctx context.Context, cfg *config.Config, kinds []string) ([]Entry, error) {
	sims := make([]*sim.Simulator, len(kinds))
	for i, kind := range kinds {
		sm, err := New(kind, cfg.Filter, float64(cfg.InitValue))
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", kind, err)
		}
		s, err := sim.FromConfig(sm, cfg)
		if err != nil {
			return nil, err
		}
		for _, m := range metrics.Standard() {
			s.AddMetric(m)
		}
		sims[i] = s
	}

	results, err := sim.RunAll(ctx, sims, cfg.Clock.Duration)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(kinds))
	for i, kind := range kinds {
		entries[i] = Entry{Name: kind, Result: results[i]}
	}
	return entries, nil
}
