package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultMaxParticles = 1024
	DefaultTimeStep     = 1.0 / 60.0

	ProviderBuiltin  = "builtin"
	ProviderChipmunk = "chipmunk"
)

type Config struct {
	MaxParticles int               `yaml:"max_particles"`
	Physics      Physics           `yaml:"physics"`
	Log          Log               `yaml:"log"`
	Presets      map[string]Preset `yaml:"presets"`
}

type Physics struct {
	Provider string     `yaml:"provider"`
	TimeStep float64    `yaml:"timestep"`
	Gravity  [2]float32 `yaml:"gravity"`
	Workers  int        `yaml:"workers"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	ShowCaller bool   `yaml:"show_caller"`
}

// Range is either a single value or a [min, max] pair.
type Range []float32

func (r *Range) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single float32
	if err := unmarshal(&single); err == nil {
		*r = Range{single}
		return nil
	}
	var pair []float32
	if err := unmarshal(&pair); err != nil {
		return err
	}
	*r = pair
	return nil
}

// Preset is the file form of a despawn parameter template.
type Preset struct {
	Lifetime          Range     `yaml:"lifetime"`
	TargetFragments   int       `yaml:"target_fragments"`
	LinearVelocity    Range     `yaml:"linvel"`
	AngularVelocity   []float32 `yaml:"angvel"`
	Mass              Range     `yaml:"mass"`
	LinearDamping     Range     `yaml:"lindamp"`
	AngularDamping    Range     `yaml:"angdamp"`
	AdditionalLinvel  [2]Range  `yaml:"linvel_addtl"`
	IgnoreParentSpeed bool      `yaml:"ignore_parent_phys"`
	Fade              bool      `yaml:"fade"`
	Shrink            bool      `yaml:"shrink"`
	Gray              bool      `yaml:"gray"`
	Recurse           bool      `yaml:"recurse"`
}

var (
	ErrMaxParticles = errors.New("max_particles must be positive")
	ErrTimeStep     = errors.New("physics timestep must be positive")
	ErrProvider     = errors.New("unknown physics provider")
)

func Default() *Config {
	return &Config{
		MaxParticles: DefaultMaxParticles,
		Physics: Physics{
			Provider: ProviderBuiltin,
			TimeStep: DefaultTimeStep,
			Gravity:  [2]float32{0, -150},
		},
		Log: Log{Level: "warn"},
	}
}

// Load reads a YAML file on top of Default. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxParticles <= 0 {
		return fmt.Errorf("%w: got %d", ErrMaxParticles, c.MaxParticles)
	}
	if c.Physics.TimeStep <= 0 {
		return fmt.Errorf("%w: got %v", ErrTimeStep, c.Physics.TimeStep)
	}
	switch c.Physics.Provider {
	case ProviderBuiltin, ProviderChipmunk:
	default:
		return fmt.Errorf("%w: %q", ErrProvider, c.Physics.Provider)
	}
	for name, p := range c.Presets {
		for _, r := range []Range{p.Lifetime, p.LinearVelocity, p.Mass, p.LinearDamping, p.AngularDamping, p.AdditionalLinvel[0], p.AdditionalLinvel[1]} {
			if len(r) > 2 {
				return fmt.Errorf("preset %q: range takes at most two values, got %d", name, len(r))
			}
		}
		if p.TargetFragments < 0 {
			return fmt.Errorf("preset %q: target_fragments must not be negative", name)
		}
	}
	return nil
}
