package main

import (
	"fmt"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/dynfilter/internal/automation"
	"github.com/san-kum/dynfilter/internal/config"
	"github.com/san-kum/dynfilter/internal/optim"
	"github.com/san-kum/dynfilter/internal/storage"
)

var (
	fitMetric    string
	fitFreqs     []float64
	fitDampings  []float64
	fitResponses []float64
	fitTop       int
)

func float32s(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

func fitFilter(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	g := optim.NewGridSearch(float32s(fitFreqs), float32s(fitDampings), float32s(fitResponses))
	log.Info("grid search", zap.String("name", name), zap.String("metric", fitMetric), zap.Int("points", g.Size()))

	start := time.Now()
	best, all, err := g.Search(cmd.Context(), cfg, fitMetric)
	if err != nil {
		return err
	}
	log.Debug("grid search done", zap.Duration("elapsed", time.Since(start)))

	slices.SortStableFunc(all, func(a, b optim.Candidate) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	})

	fmt.Printf("fit %s: minimizing %s over %d points\n\n", name, fitMetric, len(all))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "frequency\tdamping\tresponse\tscore")
	for _, c := range all[:min(fitTop, len(all))] {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t%.6f\n", c.Params.Frequency, c.Params.Damping, c.Params.Response, c.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %s\n", pretty.Sprint(best.Params))

	if saveConfig != "" {
		cfg.Filter = best.Params
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", saveConfig)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	results, err := automation.RunScenario(cmd.Context(), sc, st, log)
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %s\n\n", sc.Name, sc.Description)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "step\tfrequency\tdamping\tresponse\trms_error\tovershoot\tsettling_time\trun")
	for _, r := range results {
		p, m := r.Config.Filter, r.Result.Metrics
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.4f\t%.4f\t%.3f\t%s\n",
			r.Name, p.Frequency, p.Damping, p.Response,
			m["rms_error"], m["overshoot"], m["settling_time"], r.RunID)
	}
	return w.Flush()
}
