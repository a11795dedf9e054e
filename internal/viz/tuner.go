package viz

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/dynfilter/dynamo"
	"github.com/san-kum/dynfilter/internal/config"
	"github.com/san-kum/dynfilter/internal/metrics"
	"github.com/san-kum/dynfilter/internal/sim"
)

// knob is one adjustable filter parameter.
type knob struct {
	name   string
	lo, hi float32
	step   float32
	get    func(*dynamo.Params) *float32
}

var knobs = []knob{
	{name: "frequency", lo: 0.05, hi: 10, step: 0.05,
		get: func(p *dynamo.Params) *float32 { return &p.Frequency }},
	{name: "damping", lo: 0, hi: 10, step: 0.05,
		get: func(p *dynamo.Params) *float32 { return &p.Damping }},
	{name: "response", lo: -10, hi: 10, step: 0.1,
		get: func(p *dynamo.Params) *float32 { return &p.Response }},
}

type keyMap struct {
	Quit     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Inc      key.Binding
	Dec      key.Binding
	IncMore  key.Binding
	DecMore  key.Binding
	Signal   key.Binding
	Estimate key.Binding
	Reset    key.Binding
	Theme    key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Next:     key.NewBinding(key.WithKeys("tab", "down", "j"), key.WithHelp("j", "next")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "up", "k"), key.WithHelp("k", "prev")),
	Inc:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l", "raise")),
	Dec:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h", "lower")),
	IncMore:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "raise x10")),
	DecMore:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "lower x10")),
	Signal:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "signal")),
	Estimate: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "estimate")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Next, k.Prev, k.Dec, k.Inc, k.DecMore, k.IncMore, k.Signal, k.Estimate, k.Reset, k.Theme}
}

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var signalKinds = []string{config.SignalStep, config.SignalSquare, config.SignalSine, config.SignalRamp}

// Tuner is an interactive bubbletea program that re-simulates the filter
// every time a parameter changes.
type Tuner struct {
	cfg      config.Config
	initial  dynamo.Params
	selected int
	theme    Theme
	bar      progress.Model
	help     help.Model
	result   *sim.Result
	err      error
	width    int
	height   int
}

func NewTuner(cfg *config.Config) Tuner {
	t := Tuner{
		cfg:     *cfg,
		initial: cfg.Filter,
		theme:   Themes[0],
		width:   80,
		height:  24,
		help:    help.New(),
	}
	t.bar = knobBar(t.theme)
	t.simulate()
	return t
}

// Params returns the current filter parameters.
func (m Tuner) Params() dynamo.Params { return m.cfg.Filter }

// Result returns the latest simulation, nil if it failed.
func (m Tuner) Result() *sim.Result { return m.result }

func (m Tuner) Err() error { return m.err }

func (m Tuner) Init() tea.Cmd { return nil }

func (m Tuner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.selected = (m.selected + 1) % len(knobs)
		case key.Matches(msg, keys.Prev):
			m.selected = (m.selected + len(knobs) - 1) % len(knobs)
		case key.Matches(msg, keys.Inc):
			m.adjust(1)
		case key.Matches(msg, keys.Dec):
			m.adjust(-1)
		case key.Matches(msg, keys.IncMore):
			m.adjust(10)
		case key.Matches(msg, keys.DecMore):
			m.adjust(-10)
		case key.Matches(msg, keys.Signal):
			m.cycleSignal()
		case key.Matches(msg, keys.Estimate):
			m.cfg.Estimate = !m.cfg.Estimate
			m.simulate()
		case key.Matches(msg, keys.Reset):
			m.cfg.Filter = m.initial
			m.simulate()
		case key.Matches(msg, keys.Theme):
			m.theme = nextTheme(m.theme.Name)
			m.bar = knobBar(m.theme)
		}
	}
	return m, nil
}

func knobBar(t Theme) progress.Model {
	return progress.New(
		progress.WithScaledGradient(string(t.Primary), string(t.Accent)),
		progress.WithWidth(20),
		progress.WithoutPercentage(),
	)
}

func (m *Tuner) adjust(steps float32) {
	k := knobs[m.selected]
	v := k.get(&m.cfg.Filter)
	*v = min(max(*v+steps*k.step, k.lo), k.hi)
	m.simulate()
}

func (m *Tuner) cycleSignal() {
	next := signalKinds[0]
	for i, kind := range signalKinds {
		if kind == m.cfg.Signal.Kind {
			next = signalKinds[(i+1)%len(signalKinds)]
			break
		}
	}
	m.cfg.Signal.Kind = next
	m.simulate()
}

func (m *Tuner) simulate() {
	s, _, err := sim.FilterFromConfig(&m.cfg)
	if err != nil {
		m.result, m.err = nil, err
		return
	}
	for _, metric := range metrics.Standard() {
		s.AddMetric(metric)
	}
	m.result, m.err = s.Run(context.Background(), m.cfg.Clock.Duration)
	if m.err != nil {
		m.result = nil
	}
}

func (m Tuner) View() string {
	var b strings.Builder

	b.WriteString(GradientText("DYNFILTER TUNER", string(m.theme.Primary), string(m.theme.Accent)) + "\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("signal %s · dt %.4f · %s", m.cfg.Signal.Kind, m.cfg.Clock.Dt, m.rateSource())) + "\n\n")

	for i, k := range knobs {
		v := *k.get(&m.cfg.Filter)
		cursor := "  "
		if i == m.selected {
			cursor = "▸ "
		}
		bar := m.bar.ViewAs(float64((v - k.lo) / (k.hi - k.lo)))
		b.WriteString(fmt.Sprintf("%s%s %s %7.2f\n", cursor, MetricLabel.Render(k.name), bar, v))
	}
	b.WriteString(Separator(40) + "\n")

	if m.err != nil {
		b.WriteString(SparkLow.Render("error: "+m.err.Error()) + "\n")
	} else if m.result != nil {
		opts := PlotOptions{Width: max(m.width-12, 20), Height: max(m.height-22, 6), Theme: m.theme}
		b.WriteString(Plot(m.result, opts) + "\n\n")
		b.WriteString(MetricLabel.Render("rate") + SparklineChart(m.result.Rates, 40) + "\n")
		b.WriteString(Summary(m.result.Metrics) + "\n")
	}

	b.WriteString("\n" + m.help.View(keys))
	return b.String()
}

func (m Tuner) rateSource() string {
	if m.cfg.Estimate {
		return "estimated rate"
	}
	return "analytic rate"
}

// RunTuner starts the tuner in the alternate screen and blocks until it exits.
func RunTuner(cfg *config.Config) (dynamo.Params, error) {
	final, err := tea.NewProgram(NewTuner(cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return cfg.Filter, err
	}
	return final.(Tuner).Params(), nil
}
