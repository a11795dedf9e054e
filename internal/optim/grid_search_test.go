package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/dynfilter/internal/config"
)

func stepConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Clock.Duration = 3
	return cfg
}

func TestGridSearch_PicksFasterFilter(t *testing.T) {
	g := NewGridSearch([]float32{0.5, 4}, []float32{1}, []float32{0})
	if g.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", g.Size())
	}

	best, all, err := g.Search(context.Background(), stepConfig(), "rms_error")
	if err != nil {
		t.Fatal(err)
	}
	if best.Params.Frequency != 4 {
		t.Errorf("best frequency = %g, want 4", best.Params.Frequency)
	}
	if len(all) != 2 {
		t.Fatalf("got %d candidates, want 2", len(all))
	}
	if all[0].Score <= all[1].Score {
		t.Errorf("slow filter scored %g, fast %g", all[0].Score, all[1].Score)
	}
}

func TestGridSearch_SkipsInvalid(t *testing.T) {
	g := NewGridSearch([]float32{0, 2}, []float32{-1, 1}, []float32{0})

	best, all, err := g.Search(context.Background(), stepConfig(), "rms_error")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d candidates, want 1", len(all))
	}
	if best.Params.Frequency != 2 || best.Params.Damping != 1 {
		t.Errorf("best = %+v", best.Params)
	}
}

func TestGridSearch_Errors(t *testing.T) {
	ctx := context.Background()

	_, _, err := NewGridSearch([]float32{0}, []float32{1}, []float32{0}).Search(ctx, stepConfig(), "rms_error")
	if !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}

	_, _, err = NewGridSearch([]float32{1}, []float32{1}, []float32{0}).Search(ctx, stepConfig(), "nope")
	if err == nil {
		t.Error("expected error for unknown metric")
	}

	cfg := stepConfig()
	cfg.Clock.Dt = 0
	_, _, err = NewGridSearch([]float32{1}, []float32{1}, []float32{0}).Search(ctx, cfg, "rms_error")
	if err == nil || errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected config error, got %v", err)
	}
}
