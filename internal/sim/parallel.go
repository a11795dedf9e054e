package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunAll runs independent simulators concurrently. Simulators must not share
// smoothers, signals or clocks.
func RunAll(ctx context.Context, sims []*Simulator, duration float64) ([]*Result, error) {
	results := make([]*Result, len(sims))

	g, ctx := errgroup.WithContext(ctx)
	for i, s := range sims {
		g.Go(func() error {
			r, err := s.Run(ctx, duration)
			results[i] = r
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
