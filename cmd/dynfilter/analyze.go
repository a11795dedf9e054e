package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/internal/analysis"
	"github.com/san-kum/dynfilter/internal/config"
	"github.com/san-kum/dynfilter/internal/signal"
	"github.com/san-kum/dynfilter/internal/sim"
	"github.com/san-kum/dynfilter/internal/viz"
	"github.com/san-kum/dynfilter/vector"
)

func analyzeFilter(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	c := cfg.Filter.Compile()
	natural := float64(c.W) / (2 * math.Pi)
	fc := analysis.Cutoff(c)

	fmt.Printf("frequency analysis: %s\n", name)
	fmt.Printf("natural frequency: %.3f hz\n", natural)
	if math.IsInf(fc, 1) {
		fmt.Println("cutoff: none")
		fc = natural
	} else {
		fmt.Printf("cutoff (-3 dB): %.3f hz\n", fc)
	}
	fmt.Println()

	// analytic gain over three decades around the natural frequency
	curve := make([]float64, 80)
	for i := range curve {
		f := natural * math.Pow(10, -1.5+3*float64(i)/float64(len(curve)-1))
		curve[i] = analysis.Gain(c, f)
	}
	fmt.Println(asciigraph.Plot(curve,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("gain, %.3f to %.3f hz (log)", natural*math.Pow(10, -1.5), natural*math.Pow(10, 1.5))),
	))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FREQ\tANALYTIC\tMEASURED (dt=%.4f)\tERROR\n", cfg.Clock.Dt)
	for _, k := range []float64{0.25, 0.5, 1, 2} {
		f := fc * k
		want := analysis.Gain(c, f)
		got, err := analysis.MeasureGain(cfg.Filter, f, cfg.Clock.Dt)
		if err != nil {
			log.Warn("gain measurement failed", zap.Float64("freq", f), zap.Error(err))
			fmt.Fprintf(w, "%.3f\t%.4f\t-\t-\n", f, want)
			continue
		}
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\t%+.2f%%\n", f, want, got, 100*(got-want)/want)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	return reportDeviation(cmd.Context(), cfg, c)
}

// reportDeviation runs cfg with a noise-free target and compares the output
// with the continuous model.
func reportDeviation(ctx context.Context, cfg *config.Config, c dynamo.Coefficients) error {
	clean := *cfg
	clean.Signal.Noise = 0

	s, _, err := sim.FilterFromConfig(&clean)
	if err != nil {
		return err
	}
	result, err := s.Run(ctx, clean.Clock.Duration)
	if err != nil {
		return err
	}
	sig, err := signal.New(clean.Signal)
	if err != nil {
		return err
	}

	dev := analysis.Deviation(result, c, sig)
	fmt.Println("deviation from continuous model:")
	fmt.Printf("  rms: %.6f\n", dev.RMS)
	fmt.Printf("  max: %.6f at t=%.3fs\n", dev.Max, dev.MaxAt)

	if clean.Signal.Kind != config.SignalSine || clean.Clock.Jitter != 0 || clean.Signal.Hold != 0 {
		return nil
	}

	// drop the first period so the spectrum sees the steady state
	skip := min(int(math.Ceil(clean.Signal.Period/clean.Clock.Dt)), len(result.Values)/2)
	bins, err := analysis.FrequencyResponse(result.Targets[skip:], result.Values[skip:], clean.Clock.Dt, 0.1)
	if err != nil {
		return err
	}
	fmt.Println("\nmeasured response:")
	for _, b := range bins {
		fmt.Printf("  %.3f hz: gain %.4f, phase %+.1f°\n", b.Freq, b.Gain, b.Phase*180/math.Pi)
	}
	return nil
}

func inspectFilter(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	c := cfg.Filter.Compile()

	fmt.Printf("%s\n\n", name)
	fmt.Println(pretty.Sprint(cfg.Filter))
	fmt.Println(pretty.Sprint(c))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tW·DT\tMODE\tK1\tK2")
	for _, d := range dts {
		if d <= 0 {
			return fmt.Errorf("step sizes must be positive, got %g", d)
		}
		s := dynamo.Stabilize(c, float32(d))
		fmt.Fprintf(w, "%.4f\t%.3f\t%s\t%.6g\t%.6g\n", d, float64(c.W)*d, s.Mode, s.K1, s.K2)
	}
	return w.Flush()
}

func benchFilter(cmd *cobra.Command, args []string) error {
	durations := []float64{1.0, 10.0, 60.0}
	steps := []float64{0.001, 1.0 / 60, 0.1}

	fmt.Println("benchmarking filter updates")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, d := range steps {
			cfg := config.DefaultConfig()
			cfg.Signal.Kind = config.SignalSine
			cfg.Clock.Dt, cfg.Clock.Duration = d, dur

			s, _, err := sim.FilterFromConfig(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := s.Run(cmd.Context(), dur)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, d, result.StepsTaken, elapsed, float64(result.StepsTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	p, err := viz.RunTuner(cfg)
	if err != nil {
		return err
	}
	fmt.Println(pretty.Sprint(p))

	if saveConfig != "" {
		cfg.Filter = p
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", saveConfig)
	}
	return nil
}

func smoothColors(cmd *cobra.Command, args []string) error {
	from, err := vector.ParseHex(fromHex)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := vector.ParseHex(toHex)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	f, err := dynamo.New(float32(freq), float32(damping), float32(response), from)
	if err != nil {
		return err
	}

	for i := 0; i < frames; i++ {
		v, err := f.Update(float32(dt), to, nil)
		if err != nil {
			return err
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(v.Hex())).Render("      ")
		fmt.Printf("%3d %s %s\n", i, swatch, v.Hex())
	}
	return nil
}
