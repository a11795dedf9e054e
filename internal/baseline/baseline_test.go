package baseline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/internal/config"
	"github.com/san-kum/dynfilter/internal/sim"
)

func drive(t *testing.T, sm sim.Smoother, dt, target float64, steps int) []float64 {
	t.Helper()
	out := make([]float64, steps)
	for i := range out {
		v, err := sm.Step(dt, target, nil)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		out[i] = v
	}
	return out
}

func TestNew(t *testing.T) {
	p := dynamo.Params{Frequency: 1, Damping: 1}
	for _, kind := range Kinds {
		sm, err := New(kind, p, 0)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if sm == nil {
			t.Fatalf("%s: nil smoother", kind)
		}
	}

	if _, err := New("kalman", p, 0); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := New(KindSpring, dynamo.Params{Frequency: -1}, 0); !errors.Is(err, dynamo.ErrFrequency) {
		t.Errorf("expected ErrFrequency, got %v", err)
	}
}

func TestSmoothersConverge(t *testing.T) {
	p := dynamo.Params{Frequency: 2, Damping: 1}
	for _, kind := range Kinds {
		t.Run(kind, func(t *testing.T) {
			sm, _ := New(kind, p, -1)
			out := drive(t, sm, 1.0/60, 3, 600)
			if final := out[len(out)-1]; math.Abs(final-3) > 1e-3 {
				t.Errorf("final %g, want 3", final)
			}
		})
	}
}

func TestEWMA_Monotone(t *testing.T) {
	e := NewEWMA(0.2, 0)
	if e.Value() != 0 {
		t.Fatalf("not primed: %g", e.Value())
	}

	prev := 0.0
	for i, v := range drive(t, e, 0.01, 1, 200) {
		if v < prev || v > 1 {
			t.Fatalf("step %d: %g after %g", i, v, prev)
		}
		prev = v
	}
}

func TestEWMA_ZeroStepHolds(t *testing.T) {
	e := NewEWMA(0.5, 2)
	v, _ := e.Step(0, 10, nil)
	if v != 2 {
		t.Errorf("zero step moved the average to %g", v)
	}
}

func TestEWMA_Primed(t *testing.T) {
	e := NewEWMA(0.2, 5)
	if e.Value() != 5 {
		t.Fatalf("primed value = %g, want 5", e.Value())
	}
	if v, _ := e.Step(0.01, 5, nil); math.Abs(v-5) > 1e-12 {
		t.Errorf("holding the initial target moved the average to %g", v)
	}
}

func TestNew_EWMATimeConstant(t *testing.T) {
	p := dynamo.Params{Frequency: 1, Damping: 1}
	sm, err := New(KindEWMA, p, 0)
	if err != nil {
		t.Fatal(err)
	}

	// one time constant 1/w covers 1 - 1/e of a step
	v, _ := sm.Step(1/(2*math.Pi), 1, nil)
	if want := 1 - math.Exp(-1); math.Abs(v-want) > 1e-6 {
		t.Errorf("after one time constant: %g, want %g", v, want)
	}
}

func TestSpring_Underdamped(t *testing.T) {
	s := NewSpring(2*math.Pi, 0.2, 0)
	peak := 0.0
	for _, v := range drive(t, s, 1.0/120, 1, 240) {
		peak = max(peak, v)
	}
	if peak <= 1.2 {
		t.Errorf("underdamped spring peaked at %g, expected overshoot", peak)
	}
}

func TestSpring_VariableStep(t *testing.T) {
	s := NewSpring(4*math.Pi, 1, 0)
	dts := []float64{0.01, 0.03, 0.005, 0.02}
	var v float64
	for i := 0; i < 400; i++ {
		v, _ = s.Step(dts[i%len(dts)], 1, nil)
	}
	if math.Abs(v-1) > 1e-3 {
		t.Errorf("final %g, want 1", v)
	}

	if got, _ := s.Step(0, 5, nil); got != v {
		t.Errorf("zero step moved the spring to %g", got)
	}
}

func TestCompare(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Filter = dynamo.Params{Frequency: 2, Damping: 0.5, Response: 2}
	cfg.Clock.Duration = 3

	entries, err := Compare(context.Background(), cfg, Kinds)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(Kinds) {
		t.Fatalf("expected %d entries, got %d", len(Kinds), len(entries))
	}

	ref := entries[0].Result
	for i, e := range entries {
		if e.Name != Kinds[i] {
			t.Errorf("entry %d named %q, want %q", i, e.Name, Kinds[i])
		}
		if len(e.Result.Times) != len(ref.Times) {
			t.Fatalf("%s: %d frames, want %d", e.Name, len(e.Result.Times), len(ref.Times))
		}
		for j := range ref.Times {
			if e.Result.Times[j] != ref.Times[j] || e.Result.Targets[j] != ref.Targets[j] {
				t.Fatalf("%s: frame %d differs from the filter's", e.Name, j)
			}
		}
		if _, ok := e.Result.Metrics["rms_error"]; !ok {
			t.Errorf("%s: missing rms_error metric", e.Name)
		}
	}

	// the anticipating underdamped filter overshoots; the average never does
	if entries[0].Result.Metrics["overshoot"] <= 0 {
		t.Error("dynamics filter should overshoot")
	}
	if entries[2].Result.Metrics["overshoot"] > 1e-9 {
		t.Errorf("ewma overshot by %g", entries[2].Result.Metrics["overshoot"])
	}
}

func TestCompare_UnknownKind(t *testing.T) {
	if _, err := Compare(context.Background(), config.DefaultConfig(), []string{"bogus"}); err == nil {
		t.Error("expected error")
	}
}
