package dynamo_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/vector"
)

func scalar(v float32) *vector.Scalar {
	s := vector.Scalar(v)
	return &s
}

func TestNew_InitialState(t *testing.T) {
	for _, f := range []float32{0.1, 1, 7.5} {
		for _, z := range []float32{0, 0.5, 1, 3} {
			filter, err := dynamo.New(f, z, -1.5, vector.Scalar(4.25))
			if err != nil {
				t.Fatalf("New(%g, %g): %v", f, z, err)
			}
			if filter.Value() != 4.25 {
				t.Errorf("f=%g z=%g: value = %g, want 4.25", f, z, filter.Value())
			}
			if filter.Rate() != 0 {
				t.Errorf("f=%g z=%g: rate = %g, want 0", f, z, filter.Rate())
			}
		}
	}
}

func TestNew_Coefficients(t *testing.T) {
	filter := dynamo.MustNew(1, 0.5, 2, vector.Scalar(0))
	c := filter.Coefficients()

	w := 2 * math.Pi
	checks := []struct {
		name      string
		got, want float64
	}{
		{"w", float64(c.W), w},
		{"d", float64(c.D), w * math.Sqrt(0.75)},
		{"k1", float64(c.K1), 0.5 / math.Pi},
		{"k2", float64(c.K2), 1 / (w * w)},
		{"k3", float64(c.K3), 2 * 0.5 / w},
	}

	for _, ch := range checks {
		if math.Abs(ch.got-ch.want) > 1e-5*math.Max(1, math.Abs(ch.want)) {
			t.Errorf("%s = %.8f, want %.8f", ch.name, ch.got, ch.want)
		}
	}
}

func TestNew_InvalidParams(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name    string
		p       dynamo.Params
		wantErr error
		param   string
	}{
		{"zero frequency", dynamo.Params{Frequency: 0, Damping: 1}, dynamo.ErrFrequency, "frequency"},
		{"negative frequency", dynamo.Params{Frequency: -1, Damping: 1}, dynamo.ErrFrequency, "frequency"},
		{"NaN frequency", dynamo.Params{Frequency: nan, Damping: 1}, dynamo.ErrFrequency, "frequency"},
		{"infinite frequency", dynamo.Params{Frequency: inf, Damping: 1}, dynamo.ErrFrequency, "frequency"},
		{"negative damping", dynamo.Params{Frequency: 1, Damping: -0.5}, dynamo.ErrDamping, "damping"},
		{"NaN damping", dynamo.Params{Frequency: 1, Damping: nan}, dynamo.ErrDamping, "damping"},
		{"infinite response", dynamo.Params{Frequency: 1, Damping: 1, Response: inf}, dynamo.ErrResponse, "response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := dynamo.NewFromParams(tt.p, vector.Scalar(0))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if filter != nil {
				t.Error("expected nil filter on error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not wrap %v", err, tt.wantErr)
			}
			var pe *dynamo.ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v is not a *ParamError", err)
			}
			if pe.Name != tt.param {
				t.Errorf("ParamError.Name = %q, want %q", pe.Name, tt.param)
			}
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, dynamo.ErrFrequency) {
			t.Errorf("panic value %v, want ErrFrequency", r)
		}
	}()
	dynamo.MustNew(0, 1, 0, vector.Scalar(0))
}

func TestUpdate_ZeroStepEstimated(t *testing.T) {
	filter := dynamo.MustNew(1, 1, 1, vector.Scalar(2))

	v, err := filter.Update(0, 5, nil)
	if !errors.Is(err, dynamo.ErrZeroStep) {
		t.Fatalf("expected ErrZeroStep, got %v", err)
	}
	if v != 2 || filter.Value() != 2 || filter.Rate() != 0 {
		t.Errorf("state changed on error: value=%g rate=%g", filter.Value(), filter.Rate())
	}
}

func TestUpdate_ZeroStepExplicitRate(t *testing.T) {
	for _, z := range []float32{0, 1} {
		filter := dynamo.MustNew(1, z, 1, vector.Scalar(2))
		v, err := filter.Update(0, 5, scalar(1))
		if err != nil {
			t.Fatalf("z=%g: unexpected error: %v", z, err)
		}
		if v != 2 || filter.Rate() != 0 {
			t.Errorf("z=%g: zero step moved the filter: value=%g rate=%g", z, v, filter.Rate())
		}
	}
}

// two small steps from rest must move the value
func TestUpdate_MovesAfterTwoSteps(t *testing.T) {
	filter := dynamo.MustNew(1, 1, 1, vector.Scalar(0))
	if _, err := filter.Update(0.01, 1, scalar(0.01)); err != nil {
		t.Fatal(err)
	}
	v, err := filter.Update(0.01, 1, scalar(0.01))
	if err != nil {
		t.Fatal(err)
	}
	if v == 0 {
		t.Error("expected nonzero value after second update")
	}
}

func TestUpdate_MovesAfterTwoStepsVec3(t *testing.T) {
	x := mgl32.Vec3{1, 0, 0}
	filter := dynamo.MustNew(1, 1, 1, mgl32.Vec3{})
	filter.Update(0.01, x, &x)
	v, _ := filter.Update(0.01, x, &x)
	if v == (mgl32.Vec3{}) {
		t.Error("expected nonzero vector after second update")
	}
	if v[1] != 0 || v[2] != 0 {
		t.Errorf("off-axis components moved: %v", v)
	}
}

func TestUpdate_PositiveResponseOvershoots(t *testing.T) {
	filter := dynamo.MustNew(2, 1, 2, vector.Scalar(0))

	var v vector.Scalar
	for i := 0; i < 100; i++ {
		var err error
		v, err = filter.Update(0.01, 1, scalar(0.01))
		if err != nil {
			t.Fatal(err)
		}
	}
	if v < 1 {
		t.Errorf("final value %g, want >= 1", v)
	}
}

func TestUpdate_ExplicitRateKeepsPreviousTarget(t *testing.T) {
	a := dynamo.MustNew(1, 0.7, 1.5, vector.Scalar(0))
	b := dynamo.MustNew(1, 0.7, 1.5, vector.Scalar(0))

	a.Update(0.1, 5, scalar(0))
	b.Update(0.1, 5, scalar(0))

	// a estimates from the initial target 0, not from the explicit call's 5
	va, err := a.Update(0.1, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	vb, _ := b.Update(0.1, 5, scalar(50))

	if va != vb || a.Rate() != b.Rate() {
		t.Errorf("estimated path diverged: (%g, %g) vs (%g, %g)", va, a.Rate(), vb, b.Rate())
	}
}

func TestUpdate_Deterministic(t *testing.T) {
	a := dynamo.MustNew(3, 0.4, -0.8, vector.Scalar(1))
	b := dynamo.MustNew(3, 0.4, -0.8, vector.Scalar(1))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		dt := float32(0.001 + rng.Float64()*0.2)
		target := vector.Scalar(rng.NormFloat64())

		var rate *vector.Scalar
		if i%3 == 0 {
			rate = scalar(float32(rng.NormFloat64()))
		}

		va, errA := a.Update(dt, target, rate)
		vb, errB := b.Update(dt, target, rate)
		if errA != nil || errB != nil {
			t.Fatalf("step %d: unexpected errors %v, %v", i, errA, errB)
		}
		if va != vb {
			t.Fatalf("step %d: outputs differ: %g vs %g", i, va, vb)
		}
	}
}

func TestUpdate_LastStep(t *testing.T) {
	filter := dynamo.MustNew(1, 1, 0, vector.Scalar(0))

	filter.Update(0.01, 1, nil)
	if filter.LastStep().Mode != dynamo.ModeClamped {
		t.Errorf("small step mode = %v, want clamped", filter.LastStep().Mode)
	}

	filter.Update(1, 1, nil)
	if filter.LastStep().Mode != dynamo.ModePoleMatched {
		t.Errorf("large step mode = %v, want pole-matched", filter.LastStep().Mode)
	}
}

func TestRetune(t *testing.T) {
	filter := dynamo.MustNew(1, 1, 0, vector.Scalar(0))
	for i := 0; i < 10; i++ {
		filter.Update(0.02, 1, nil)
	}
	value, rate := filter.Value(), filter.Rate()

	p := dynamo.Params{Frequency: 4, Damping: 0.3, Response: 1}
	if err := filter.Retune(p); err != nil {
		t.Fatal(err)
	}
	if filter.Value() != value || filter.Rate() != rate {
		t.Error("retune changed the state")
	}
	if filter.Params() != p {
		t.Errorf("Params() = %+v, want %+v", filter.Params(), p)
	}
	if filter.Coefficients() != p.Compile() {
		t.Error("coefficients not recompiled")
	}

	if err := filter.Retune(dynamo.Params{Frequency: -1}); !errors.Is(err, dynamo.ErrFrequency) {
		t.Errorf("expected ErrFrequency, got %v", err)
	}
	if filter.Params() != p {
		t.Error("failed retune replaced the parameters")
	}
}

func TestUpdate_Undamped(t *testing.T) {
	filter := dynamo.MustNew(1, 0, 0, vector.Scalar(0))

	lo, hi := float32(0), float32(0)
	for i := 0; i < 2000; i++ {
		v, err := filter.Update(0.01, 1, scalar(0))
		if err != nil {
			t.Fatal(err)
		}
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("step %d: non-finite value %g", i, v)
		}
		if filter.LastStep().Mode != dynamo.ModePoleMatched {
			t.Fatalf("step %d: undamped filter used %v", i, filter.LastStep().Mode)
		}
		lo, hi = min(lo, float32(v)), max(hi, float32(v))
	}

	// oscillates between the start and twice the target without decaying or growing
	if lo < -0.05 || hi > 2.05 {
		t.Errorf("oscillation out of bounds: [%g, %g]", lo, hi)
	}
	if hi < 1.9 {
		t.Errorf("oscillation decayed: max %g", hi)
	}
}

func TestUpdate_Color(t *testing.T) {
	from, _ := vector.ParseHex("#000000")
	to, _ := vector.ParseHex("#ff8000")

	filter := dynamo.MustNew(2, 1, 0, from)
	for i := 0; i < 600; i++ {
		filter.Update(1.0/60, to, nil)
	}

	if got := filter.Value().Hex(); got != "#ff8000" {
		t.Errorf("color converged to %s, want #ff8000", got)
	}
}
