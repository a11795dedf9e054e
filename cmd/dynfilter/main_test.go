package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynfilter/internal/config"
)

func newTestCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	configFile = ""
	cmd := &cobra.Command{Use: "test"}
	addConfigFlags(cmd)
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set --%s: %v", name, err)
		}
	}
	return cmd
}

func TestResolveConfig_Preset(t *testing.T) {
	cfg, name, err := resolveConfig(newTestCmd(t, nil), []string{"sphere"})
	if err != nil {
		t.Fatal(err)
	}
	if name != "sphere" {
		t.Errorf("name = %q", name)
	}
	if cfg.Filter != config.GetPreset("sphere").Filter {
		t.Errorf("params = %+v", cfg.Filter)
	}
}

func TestResolveConfig_FlagsOverride(t *testing.T) {
	cmd := newTestCmd(t, map[string]string{"freq": "3", "signal": "sine", "seed": "9", "estimate": "true"})
	cfg, name, err := resolveConfig(cmd, []string{"critical"})
	if err != nil {
		t.Fatal(err)
	}
	if name != "critical" {
		t.Errorf("name = %q", name)
	}
	if cfg.Filter.Frequency != 3 || cfg.Filter.Damping != 1 {
		t.Errorf("params = %+v", cfg.Filter)
	}
	if cfg.Signal.Kind != config.SignalSine || !cfg.Estimate {
		t.Errorf("signal = %q, estimate = %v", cfg.Signal.Kind, cfg.Estimate)
	}
	if cfg.Signal.Seed != 9 || cfg.Clock.Seed != 9 {
		t.Errorf("seeds = %d, %d", cfg.Signal.Seed, cfg.Clock.Seed)
	}
}

func TestResolveConfig_PeriodicSignalOnStepPreset(t *testing.T) {
	for _, kind := range []string{config.SignalSine, config.SignalSquare} {
		cfg, _, err := resolveConfig(newTestCmd(t, map[string]string{"signal": kind}), []string{"critical"})
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if cfg.Signal.Period != config.DefaultPeriod {
			t.Errorf("%s: period = %g, want %g", kind, cfg.Signal.Period, config.DefaultPeriod)
		}
	}

	cfg, _, err := resolveConfig(newTestCmd(t, map[string]string{"signal": "sine", "period": "0.5"}), []string{"critical"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Signal.Period != 0.5 {
		t.Errorf("explicit period = %g, want 0.5", cfg.Signal.Period)
	}

	if _, _, err := resolveConfig(newTestCmd(t, map[string]string{"signal": "sine", "period": "0"}), []string{"critical"}); err == nil {
		t.Error("expected error for an explicit zero period")
	}
}

func TestResolveConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slow.yaml")
	if err := os.WriteFile(path, []byte("filter:\n  frequency: 0.25\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newTestCmd(t, map[string]string{"config": path})
	cfg, name, err := resolveConfig(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if name != "slow" || cfg.Filter.Frequency != 0.25 {
		t.Errorf("got %q with %+v", name, cfg.Filter)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	if _, _, err := resolveConfig(newTestCmd(t, nil), []string{"nope"}); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, _, err := resolveConfig(newTestCmd(t, map[string]string{"freq": "0"}), nil); err == nil {
		t.Error("expected invalid frequency error")
	}
	if _, _, err := resolveConfig(newTestCmd(t, map[string]string{"jitter": "1.5"}), nil); err == nil {
		t.Error("expected invalid jitter error")
	}
}
