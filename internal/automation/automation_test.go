package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/san-kum/dynfilter/internal/storage"
)

const scenarioYAML = `
name: damping
description: critical preset with less damping
steps:
  - preset: critical
    save_as: crit
  - preset: critical
    config:
      filter:
        damping: 0.3
      clock:
        duration: 2
  - config:
      signal:
        kind: sine
        period: 1
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "damping" || len(sc.Steps) != 3 {
		t.Fatalf("got %q with %d steps", sc.Name, len(sc.Steps))
	}

	cfg, err := sc.Steps[1].Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Filter.Damping != 0.3 {
		t.Errorf("damping = %g, want 0.3", cfg.Filter.Damping)
	}
	if cfg.Filter.Frequency != 1 {
		t.Errorf("frequency = %g, want the preset's 1", cfg.Filter.Frequency)
	}
	if cfg.Clock.Duration != 2 {
		t.Errorf("duration = %g, want 2", cfg.Clock.Duration)
	}
}

func TestParseScenario_Errors(t *testing.T) {
	if _, err := ParseScenario([]byte("name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
	if _, err := ParseScenario([]byte("steps: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolve_Errors(t *testing.T) {
	sc, err := ParseScenario([]byte(`
steps:
  - preset: nope
  - config:
      clock:
        dt: -1
`))
	if err != nil {
		t.Fatal(err)
	}
	for i, step := range sc.Steps {
		if _, err := step.Resolve(); err == nil {
			t.Errorf("step %d: expected error", i)
		}
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	store := storage.New(dir)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, store, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	names := []string{"crit", "critical", "step3"}
	for i, r := range results {
		if r.Name != names[i] {
			t.Errorf("result %d name = %q, want %q", i, r.Name, names[i])
		}
		if _, ok := r.Result.Metrics["rms_error"]; !ok {
			t.Errorf("result %d missing metrics", i)
		}
	}

	if results[0].RunID == "" || results[1].RunID != "" {
		t.Errorf("run ids = %q, %q", results[0].RunID, results[1].RunID)
	}
	if _, err := os.Stat(filepath.Join(dir, results[0].RunID)); err != nil {
		t.Errorf("saved run missing: %v", err)
	}
	if last := results[1].Result.Times; last[len(last)-1] < 2 || last[len(last)-1] > 2+1.0/30 {
		t.Errorf("second step ran until %g", last[len(last)-1])
	}
}

func TestRunScenario_StopsOnError(t *testing.T) {
	sc, err := ParseScenario([]byte(`
steps:
  - preset: critical
  - preset: missing
  - preset: critical
`))
	if err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, nil, zaptest.NewLogger(t))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(results) != 1 {
		t.Errorf("got %d results before the failure, want 1", len(results))
	}
}
