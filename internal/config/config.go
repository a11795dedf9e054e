package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynfilter/dynamo"
)

const (
	DefaultFrequency = 1.0
	DefaultDamping   = 0.5
	DefaultResponse  = 2.0
	DefaultDt        = 1.0 / 60
	DefaultDuration  = 5.0
	DefaultAmplitude = 1.0
	DefaultPeriod    = 2.0
)

// Signal kinds understood by the signal package.
const (
	SignalStep   = "step"
	SignalSquare = "square"
	SignalSine   = "sine"
	SignalRamp   = "ramp"
)

type Config struct {
	Filter    dynamo.Params `yaml:"filter"`
	Signal    SignalConfig  `yaml:"signal"`
	Clock     ClockConfig   `yaml:"clock"`
	Estimate  bool          `yaml:"estimate"`
	InitValue float32       `yaml:"init_value"`
}

type SignalConfig struct {
	Kind      string  `yaml:"kind"`
	Amplitude float64 `yaml:"amplitude"`
	Offset    float64 `yaml:"offset"`
	Period    float64 `yaml:"period"`
	Delay     float64 `yaml:"delay"`
	Noise     float64 `yaml:"noise"`
	Hold      float64 `yaml:"hold"`
	Seed      int64   `yaml:"seed"`
}

type ClockConfig struct {
	Dt       float64 `yaml:"dt"`
	Jitter   float64 `yaml:"jitter"`
	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Filter: dynamo.Params{
			Frequency: DefaultFrequency,
			Damping:   DefaultDamping,
			Response:  DefaultResponse,
		},
		Signal: SignalConfig{
			Kind:      SignalStep,
			Amplitude: DefaultAmplitude,
			Period:    DefaultPeriod,
		},
		Clock: ClockConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the filter parameters and the run settings.
func (c *Config) Validate() error {
	if err := c.Filter.Validate(); err != nil {
		return err
	}
	if c.Clock.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Clock.Dt)
	}
	if c.Clock.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Clock.Duration)
	}
	if c.Clock.Jitter < 0 || c.Clock.Jitter >= 1 {
		return fmt.Errorf("jitter must be in [0, 1), got %f", c.Clock.Jitter)
	}
	if c.Signal.Noise < 0 {
		return fmt.Errorf("noise must be non-negative, got %f", c.Signal.Noise)
	}
	if c.Signal.Hold < 0 {
		return fmt.Errorf("hold must be non-negative, got %f", c.Signal.Hold)
	}
	switch c.Signal.Kind {
	case SignalStep, SignalRamp:
	case SignalSquare, SignalSine:
		if c.Signal.Period <= 0 {
			return fmt.Errorf("%s signal needs a positive period, got %f", c.Signal.Kind, c.Signal.Period)
		}
	default:
		return fmt.Errorf("unknown signal kind: %q", c.Signal.Kind)
	}
	return nil
}
