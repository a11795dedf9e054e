package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/dynfilter/internal/baseline"
	"github.com/san-kum/dynfilter/internal/config"
	"github.com/san-kum/dynfilter/internal/metrics"
	"github.com/san-kum/dynfilter/internal/sim"
	"github.com/san-kum/dynfilter/internal/storage"
	"github.com/san-kum/dynfilter/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	s, _, err := sim.FilterFromConfig(cfg)
	if err != nil {
		return err
	}
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}
	s.AddObserver(sim.NewModeLogger(log))

	start := time.Now()
	result, err := s.Run(cmd.Context(), cfg.Clock.Duration)
	if err != nil {
		return err
	}
	log.Info("run finished", zap.Duration("elapsed", time.Since(start)), zap.Int("steps", result.StepsTaken))

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(name, cfg, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	}

	if svgPath != "" {
		svg := viz.SVG(result, 800, 300, viz.Themes[0])
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}

	switch format {
	case "csv":
		return storage.WriteCSV(os.Stdout, result)
	case "json":
		data := storage.NewExportData(cfg.Filter, cfg.Signal.Kind, cfg.Clock.Dt, cfg.Clock.Duration, result)
		return storage.WriteJSON(os.Stdout, data)
	case "plot":
		opts := viz.DefaultPlotOptions()
		opts.Caption = fmt.Sprintf("%s: f=%.2f z=%.2f r=%.2f", name, cfg.Filter.Frequency, cfg.Filter.Damping, cfg.Filter.Response)
		fmt.Println(viz.Plot(result, opts))
		fmt.Println()
		fmt.Printf("steps: %d\n\n", result.StepsTaken)
		fmt.Println(viz.Summary(result.Metrics))
		return nil
	default:
		return fmt.Errorf("unknown format: %q", format)
	}
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFREQ\tDAMPING\tRESPONSE\tSIGNAL\tDT\tESTIMATE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%s\t%.4f\t%v\n",
			name,
			p.Filter.Frequency,
			p.Filter.Damping,
			p.Filter.Response,
			p.Signal.Kind,
			p.Clock.Dt,
			p.Estimate,
		)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tFREQ\tDAMPING\tRESPONSE\tSIGNAL\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%s\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Filter.Frequency,
			run.Config.Filter.Damping,
			run.Config.Filter.Response,
			run.Config.Signal.Kind,
			run.Steps,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}
	if len(result.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(result.Times))

	opts := viz.DefaultPlotOptions()
	opts.Caption = meta.Name
	fmt.Println(viz.Plot(result, opts))
	fmt.Println()
	fmt.Println(viz.Summary(result.Metrics))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, meta)
}

func compareSmoothers(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	entries, err := baseline.Compare(cmd.Context(), cfg, baseline.Kinds)
	if err != nil {
		return err
	}

	opts := viz.DefaultPlotOptions()
	opts.Caption = name
	fmt.Println(viz.PlotCompare(entries, opts))
	fmt.Println()
	fmt.Println(viz.CompareTable(entries))
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := sim.NewEnsemble(cfg, runs, cfg.Signal.Seed, metrics.Standard).Run(cmd.Context())
	if err != nil {
		return err
	}
	log.Debug("ensemble done", zap.Int("runs", runs), zap.Duration("elapsed", time.Since(start)))

	spread := sim.Aggregate(results)
	names := make([]string, 0, len(spread))
	for n := range spread {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Printf("ensemble %s: %d runs, noise %.3f, jitter %.2f\n\n", name, runs, cfg.Signal.Noise, cfg.Clock.Jitter)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "metric\tmean\tstd\tmin\tmax")
	for _, n := range names {
		s := spread[n]
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", n, s.Mean, s.Std, s.Min, s.Max)
	}
	return w.Flush()
}
