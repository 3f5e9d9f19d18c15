package config

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultN       = 1024
	DefaultK       = 22
	DefaultMargin  = 2
	DefaultTol     = 1e-6
	DefaultMaxIter = 100
)

// Seed kinds.
const (
	SeedPoint = "point"
	SeedCurve = "curve"
	SeedCycle = "cycle"
)

// Initializer names.
const (
	InitZero          = "zero"
	InitLinearized    = "linearized"
	InitCurveDistance = "curve-distance"
	InitExact         = "exact"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Field   string             `yaml:"field"`
	Params  map[string]float64 `yaml:"params,omitempty"`
	Grid    GridConfig         `yaml:"grid"`
	Stencil StencilConfig      `yaml:"stencil"`
	Solver  SolverConfig       `yaml:"solver"`
	Seed    SeedConfig         `yaml:"seed"`
}

type GridConfig struct {
	NX   int     `yaml:"nx"`
	NY   int     `yaml:"ny"`
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

type StencilConfig struct {
	K      int `yaml:"k"`
	Margin int `yaml:"margin"`
}

type SolverConfig struct {
	Tol     float64 `yaml:"tol"`
	MaxIter int     `yaml:"max_iter"`
}

type SeedConfig struct {
	Kind string `yaml:"kind"`
	// Point is the seed location; nil means the field's attractor, or the
	// start of the trace for cycle seeds.
	Point       *PointConfig `yaml:"point,omitempty"`
	CurveFile   string       `yaml:"curve_file,omitempty"`
	CurvePoints int          `yaml:"curve_points,omitempty"`
	CurveRadius float64      `yaml:"curve_radius,omitempty"`
	Trace       TraceConfig  `yaml:"trace,omitempty"`
	Init        string       `yaml:"init"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// TraceConfig tunes limit cycle tracing for cycle seeds. Zero fields take
// the tracer defaults.
type TraceConfig struct {
	Transient float64 `yaml:"transient,omitempty"`
	Dt        float64 `yaml:"dt,omitempty"`
	Spacing   float64 `yaml:"spacing,omitempty"`
	MaxTime   float64 `yaml:"max_time,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Field: "linear",
		Grid: GridConfig{
			NX: DefaultN, NY: DefaultN,
			XMin: -1, XMax: 1, YMin: -1, YMax: 1,
		},
		Stencil: StencilConfig{K: DefaultK, Margin: DefaultMargin},
		Solver:  SolverConfig{Tol: DefaultTol, MaxIter: DefaultMaxIter},
		Seed:    SeedConfig{Kind: SeedPoint, Init: InitLinearized},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = maps.Clone(c.Params)
	if c.Seed.Point != nil {
		p := *c.Seed.Point
		out.Seed.Point = &p
	}
	return &out
}

// Validate checks everything that can be checked without resolving the
// field or reading files.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Field == "" {
		add("field is empty")
	}
	g := c.Grid
	if g.NX < 2 || g.NY < 2 {
		add("grid %dx%d needs at least 2 points per axis", g.NX, g.NY)
	}
	if !(g.XMin < g.XMax) || !(g.YMin < g.YMax) {
		add("grid domain x [%g, %g], y [%g, %g] is empty", g.XMin, g.XMax, g.YMin, g.YMax)
	}
	if c.Stencil.K < 1 {
		add("stencil k = %d must be positive", c.Stencil.K)
	}
	if c.Stencil.Margin < 0 {
		add("stencil margin = %d must not be negative", c.Stencil.Margin)
	}
	if !(c.Solver.Tol > 0) {
		add("solver tol = %g must be positive", c.Solver.Tol)
	}
	if c.Solver.MaxIter < 1 {
		add("solver max_iter = %d must be positive", c.Solver.MaxIter)
	}

	switch c.Seed.Kind {
	case SeedPoint:
	case SeedCurve:
		if c.Seed.CurveFile == "" && (c.Seed.CurvePoints < 3 || !(c.Seed.CurveRadius > 0)) {
			add("curve seed needs curve_file or curve_points >= 3 with curve_radius > 0")
		}
	case SeedCycle:
		if c.Seed.Point == nil {
			add("cycle seed needs a starting point")
		}
	default:
		add("unknown seed kind %q", c.Seed.Kind)
	}

	switch c.Seed.Init {
	case InitZero, InitLinearized, InitCurveDistance, InitExact:
	default:
		add("unknown init %q", c.Seed.Init)
	}
	if c.Seed.Init == InitLinearized && c.Seed.Kind != SeedPoint {
		add("init %q needs a point seed", InitLinearized)
	}
	if c.Seed.Init == InitCurveDistance && c.Seed.Kind == SeedPoint {
		add("init %q needs a curve or cycle seed", InitCurveDistance)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
