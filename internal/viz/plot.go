package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dynfilter/internal/baseline"
	"github.com/san-kum/dynfilter/internal/sim"
)

// PlotOptions sizes a terminal plot.
type PlotOptions struct {
	Width, Height int
	Caption       string
	Theme         Theme
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 80, Height: 15, Theme: Themes[0]}
}

// Plot draws the target and output series of a run.
func Plot(res *sim.Result, opts PlotOptions) string {
	if res == nil || len(res.Values) < 2 {
		return ""
	}
	return asciigraph.PlotMany([][]float64{res.Targets, res.Values},
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(opts.Caption),
		asciigraph.SeriesColors(opts.Theme.Target, opts.Theme.Output),
		asciigraph.SeriesLegends("target", "output"),
	)
}

// PlotCompare draws the outputs of several smoothers over the shared target.
func PlotCompare(entries []baseline.Entry, opts PlotOptions) string {
	if len(entries) == 0 || len(entries[0].Result.Targets) < 2 {
		return ""
	}
	series := [][]float64{entries[0].Result.Targets}
	legends := []string{"target"}
	for _, e := range entries {
		series = append(series, e.Result.Values)
		legends = append(legends, e.Name)
	}
	palette := []asciigraph.AnsiColor{opts.Theme.Target, opts.Theme.Output, asciigraph.Cyan, asciigraph.Yellow, asciigraph.Green}
	return asciigraph.PlotMany(series,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(opts.Caption),
		asciigraph.SeriesColors(palette[:min(len(series), len(palette))]...),
		asciigraph.SeriesLegends(legends...),
	)
}

// Summary renders the metrics of a run as label/value lines, sorted by name.
func Summary(m map[string]float64) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(MetricLabel.Render(name) + MetricValue.Render(fmt.Sprintf("%.4f", m[name])) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// CompareTable renders one column per smoother and one row per metric.
func CompareTable(entries []baseline.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	names := make([]string, 0, len(entries[0].Result.Metrics))
	for name := range entries[0].Result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	cell := lipgloss.NewStyle().Width(14).Align(lipgloss.Right)
	head := cell.Bold(true).Foreground(lipgloss.Color("#00ffff"))

	var rows []string
	header := MetricLabel.Render("")
	for _, e := range entries {
		header += head.Render(e.Name)
	}
	rows = append(rows, header)

	for _, name := range names {
		row := MetricLabel.Render(name)
		for _, e := range entries {
			row += cell.Render(fmt.Sprintf("%.4f", e.Result.Metrics[name]))
		}
		rows = append(rows, row)
	}
	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
