package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/dynfilter/internal/config"
	"github.com/san-kum/dynfilter/internal/logging"
)

var (
	dataDir string
	verbose bool
	log     = zap.NewNop()

	// filter and run overrides
	configFile string
	freq       float64
	damping    float64
	response   float64
	signalKind string
	period     float64
	amplitude  float64
	noise      float64
	hold       float64
	dt         float64
	jitter     float64
	duration   float64
	seed       int64
	estimate   bool

	// output
	format  string
	save    bool
	svgPath string

	// inspect and colors
	dts     []float64
	fromHex string
	toHex   string
	frames  int

	saveConfig string
	runs       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dynfilter",
		Short: "second-order dynamics smoothing lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
		SilenceUsage: true,
		RunE:         runTune,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynfilter", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "simulate the filter against a target signal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&format, "format", "plot", "output format: plot, csv or json")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "also write an svg plot to this path")

	compareCmd := &cobra.Command{
		Use:   "compare [preset]",
		Short: "compare the filter with a spring and an exponential average",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareSmoothers,
	}
	addConfigFlags(compareCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [preset]",
		Short: "frequency response and deviation from the continuous model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeFilter,
	}
	addConfigFlags(analyzeCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect [preset]",
		Short: "show compiled coefficients and per-step stabilization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspectFilter,
	}
	addConfigFlags(inspectCmd)
	inspectCmd.Flags().Float64SliceVar(&dts, "dts", []float64{0.001, 1.0 / 60, 0.1, 0.5, 1}, "step sizes to stabilize")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark filter updates",
		RunE:  benchFilter,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "tune parameters interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	addConfigFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the tuned configuration to this yaml file")

	fitCmd := &cobra.Command{
		Use:   "fit [preset]",
		Short: "grid search filter parameters minimizing a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  fitFilter,
	}
	addConfigFlags(fitCmd)
	fitCmd.Flags().StringVar(&fitMetric, "metric", "rms_error", "metric to minimize")
	fitCmd.Flags().Float64SliceVar(&fitFreqs, "freqs", []float64{0.5, 1, 2, 4, 8}, "frequencies to try")
	fitCmd.Flags().Float64SliceVar(&fitDampings, "dampings", []float64{0.25, 0.5, 0.75, 1, 1.5}, "damping ratios to try")
	fitCmd.Flags().Float64SliceVar(&fitResponses, "responses", []float64{-1, 0, 1, 2}, "initial responses to try")
	fitCmd.Flags().IntVar(&fitTop, "top", 5, "candidates to list")
	fitCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the best configuration to this yaml file")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [preset]",
		Short: "metric spread over seeded noise and jitter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addConfigFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 16, "number of seeded runs")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a yaml scenario of filter configurations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&save, "save", false, "save steps with save_as to the data directory")

	colorsCmd := &cobra.Command{
		Use:   "colors",
		Short: "smooth between two colors in linear rgb",
		RunE:  smoothColors,
	}
	colorsCmd.Flags().StringVar(&fromHex, "from", "#000000", "start color")
	colorsCmd.Flags().StringVar(&toHex, "to", "#ff8000", "target color")
	colorsCmd.Flags().IntVar(&frames, "frames", 30, "frames to render")
	colorsCmd.Flags().Float64Var(&freq, "freq", 2, "response frequency in hz")
	colorsCmd.Flags().Float64Var(&damping, "damping", 0.5, "damping ratio")
	colorsCmd.Flags().Float64Var(&response, "response", 2, "initial response")
	colorsCmd.Flags().Float64Var(&dt, "dt", 1.0/30, "frame duration")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, compareCmd, analyzeCmd, inspectCmd, benchCmd, tuneCmd, fitCmd, ensembleCmd, batchCmd, colorsCmd, presetsCmd, listCmd, showCmd, exportCmd)

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.Float64Var(&freq, "freq", config.DefaultFrequency, "response frequency in hz")
	f.Float64Var(&damping, "damping", config.DefaultDamping, "damping ratio")
	f.Float64Var(&response, "response", config.DefaultResponse, "initial response (overshoot > 0, anticipation < 0)")
	f.StringVar(&signalKind, "signal", config.SignalStep, "target signal: step, square, sine or ramp")
	f.Float64Var(&period, "period", config.DefaultPeriod, "signal period")
	f.Float64Var(&amplitude, "amplitude", config.DefaultAmplitude, "signal amplitude")
	f.Float64Var(&noise, "noise", 0, "gaussian noise on the target")
	f.Float64Var(&hold, "hold", 0, "sample-and-hold interval for the target")
	f.Float64Var(&dt, "dt", config.DefaultDt, "frame duration")
	f.Float64Var(&jitter, "jitter", 0, "relative frame time jitter in [0, 1)")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	f.Int64Var(&seed, "seed", 0, "random seed for noise and jitter")
	f.BoolVar(&estimate, "estimate", false, "estimate the target rate instead of using the analytic one")
}

// resolveConfig layers the preset, the config file and explicitly set flags,
// in that order. It returns the configuration and a name for the run.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg, name := config.DefaultConfig(), "custom"

	if len(args) > 0 {
		p := config.GetPreset(args[0])
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		cfg, name = p, args[0]
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	flags := cmd.Flags()
	if flags.Changed("freq") {
		cfg.Filter.Frequency = float32(freq)
	}
	if flags.Changed("damping") {
		cfg.Filter.Damping = float32(damping)
	}
	if flags.Changed("response") {
		cfg.Filter.Response = float32(response)
	}
	if flags.Changed("signal") {
		cfg.Signal.Kind = signalKind
	}
	if flags.Changed("period") {
		cfg.Signal.Period = period
	} else if periodic(cfg.Signal.Kind) && cfg.Signal.Period <= 0 {
		// step presets carry no period
		cfg.Signal.Period = config.DefaultPeriod
	}
	if flags.Changed("amplitude") {
		cfg.Signal.Amplitude = amplitude
	}
	if flags.Changed("noise") {
		cfg.Signal.Noise = noise
	}
	if flags.Changed("hold") {
		cfg.Signal.Hold = hold
	}
	if flags.Changed("dt") {
		cfg.Clock.Dt = dt
	}
	if flags.Changed("jitter") {
		cfg.Clock.Jitter = jitter
	}
	if flags.Changed("time") {
		cfg.Clock.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Signal.Seed, cfg.Clock.Seed = seed, seed
	}
	if flags.Changed("estimate") {
		cfg.Estimate = estimate
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	log.Info("configuration",
		zap.String("name", name),
		zap.Float32("frequency", cfg.Filter.Frequency),
		zap.Float32("damping", cfg.Filter.Damping),
		zap.Float32("response", cfg.Filter.Response),
		zap.String("signal", cfg.Signal.Kind),
		zap.Float64("dt", cfg.Clock.Dt),
		zap.Float64("jitter", cfg.Clock.Jitter),
		zap.Bool("estimate", cfg.Estimate),
	)
	return cfg, name, nil
}

func periodic(kind string) bool {
	return kind == config.SignalSquare || kind == config.SignalSine
}
