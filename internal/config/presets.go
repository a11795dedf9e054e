package config

import (
	"sort"

	"github.com/san-kum/dynfilter/dynamo"
)

var Presets = map[string]*Config{
	"sphere": {
		Filter: dynamo.Params{Frequency: 2.5, Damping: 1.0, Response: 1.0},
		Signal: SignalConfig{Kind: SignalSquare, Amplitude: 1, Period: 3},
		Clock:  ClockConfig{Dt: 1.0 / 60, Duration: 6},
	},
	"rope": {
		Filter: dynamo.Params{Frequency: 3.0, Damping: 0.5, Response: 2.0},
		Signal: SignalConfig{Kind: SignalSine, Amplitude: 1, Period: 2},
		Clock:  ClockConfig{Dt: 1.0 / 60, Duration: 6},
	},
	"critical": {
		Filter: dynamo.Params{Frequency: 1, Damping: 1, Response: 0},
		Signal: SignalConfig{Kind: SignalStep, Amplitude: 1, Delay: 0.5},
		Clock:  ClockConfig{Dt: 1.0 / 60, Duration: 4},
	},
	"anticipate": {
		Filter: dynamo.Params{Frequency: 1.5, Damping: 0.7, Response: 3},
		Signal: SignalConfig{Kind: SignalSquare, Amplitude: 1, Period: 4},
		Clock:  ClockConfig{Dt: 1.0 / 60, Duration: 8},
	},
	"windup": {
		Filter: dynamo.Params{Frequency: 1.5, Damping: 1, Response: -2},
		Signal: SignalConfig{Kind: SignalSquare, Amplitude: 1, Period: 4},
		Clock:  ClockConfig{Dt: 1.0 / 60, Duration: 8},
	},
	"wobbly": {
		Filter: dynamo.Params{Frequency: 2, Damping: 0.1, Response: 0},
		Signal: SignalConfig{Kind: SignalStep, Amplitude: 1, Delay: 0.5},
		Clock:  ClockConfig{Dt: 1.0 / 60, Duration: 6},
	},
	"sluggish": {
		Filter: dynamo.Params{Frequency: 0.5, Damping: 3, Response: 0},
		Signal: SignalConfig{Kind: SignalSquare, Amplitude: 1, Period: 6},
		Clock:  ClockConfig{Dt: 1.0 / 60, Duration: 12},
	},
	"noisy": {
		Filter: dynamo.Params{Frequency: 1, Damping: 1, Response: 0},
		Signal: SignalConfig{Kind: SignalSine, Amplitude: 1, Period: 4, Noise: 0.2, Seed: 1},
		Clock:  ClockConfig{Dt: 1.0 / 60, Duration: 8},
	},
	"stepwise": {
		Filter:   dynamo.Params{Frequency: 2, Damping: 0.8, Response: 1},
		Signal:   SignalConfig{Kind: SignalRamp, Amplitude: 0.5, Hold: 0.25},
		Clock:    ClockConfig{Dt: 1.0 / 60, Duration: 4},
		Estimate: true,
	},
	"stutter": {
		Filter:   dynamo.Params{Frequency: 4, Damping: 0.6, Response: 1},
		Signal:   SignalConfig{Kind: SignalSquare, Amplitude: 1, Period: 2},
		Clock:    ClockConfig{Dt: 0.1, Jitter: 0.9, Duration: 8, Seed: 3},
		Estimate: true,
	},
}

// GetPreset returns a copy of the named preset, or nil if there is none.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
