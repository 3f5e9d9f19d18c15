package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/qpot/internal/analysis"
	"github.com/san-kum/qpot/internal/config"
	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/olim"
	"github.com/san-kum/qpot/internal/rootfind"
	"github.com/san-kum/qpot/internal/seed"
)

// Outcome is the result of one solve together with its error report, which
// is nil when the field has no exact quasi-potential.
type Outcome struct {
	Config *config.Config
	Result *olim.Result
	Report *analysis.Report
	// Curve is the seed curve, nil for point-seeded runs.
	Curve seed.Curve
}

type Experiment struct {
	cfg *config.Config
	reg *Registry

	grid   *mesh.Grid
	field  dynamo.Field
	anchor geom.Vec
	curve  seed.Curve
	seeds  seed.Set
	solver *olim.Solver
}

func New(cfg *config.Config, reg *Registry) *Experiment {
	return &Experiment{cfg: cfg, reg: reg}
}

// Setup builds the grid, the field, the seed set and the solver described by
// the configuration and attaches metrics to the solver.
func (e *Experiment) Setup(metrics []dynamo.Metric) error {
	cfg := e.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	grid, err := mesh.New(cfg.Grid.NX, cfg.Grid.NY, cfg.Grid.XMin, cfg.Grid.XMax, cfg.Grid.YMin, cfg.Grid.YMax)
	if err != nil {
		return err
	}
	field, err := e.reg.GetField(cfg.Field, cfg.Params)
	if err != nil {
		return err
	}
	e.grid, e.field = grid, field

	seeds, err := e.buildSeeds()
	if err != nil {
		return err
	}

	solver, err := olim.New(grid, field, olim.Options{
		K:      cfg.Stencil.K,
		Margin: cfg.Stencil.Margin,
		Root:   rootfind.Options{Tol: cfg.Solver.Tol, MaxIter: cfg.Solver.MaxIter},
	})
	if err != nil {
		return err
	}
	for _, m := range metrics {
		solver.AddMetric(m)
	}
	if err := solver.Seed(seeds); err != nil {
		return err
	}

	e.seeds = seeds
	e.solver = solver
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if e.solver == nil {
		return nil, ErrNotSetup
	}

	res, err := e.solver.Run(ctx)
	if res == nil {
		return nil, err
	}
	out := &Outcome{Config: e.cfg, Result: res, Curve: e.curve}
	if ex, ok := e.field.(dynamo.Exact); ok {
		rep := analysis.Compare(e.grid, res.Values(), ex.Potential)
		out.Report = &rep
	}
	return out, err
}

func (e *Experiment) buildSeeds() (seed.Set, error) {
	cfg := e.cfg.Seed

	switch cfg.Kind {
	case config.SeedPoint:
		p, err := e.seedPoint()
		if err != nil {
			return nil, err
		}
		e.anchor = p
	case config.SeedCurve:
		c, err := e.loadCurve()
		if err != nil {
			return nil, err
		}
		e.curve = c
	case config.SeedCycle:
		start := geom.Vec{X: cfg.Point.X, Y: cfg.Point.Y}
		c, err := seed.TraceCycle(e.field, start, e.traceOptions())
		if err != nil {
			return nil, err
		}
		e.curve = c
	}

	init, err := e.initializer()
	if err != nil {
		return nil, err
	}

	if e.curve != nil {
		if err := dynamo.CheckDrift(e.cfg.Field, e.field, e.curve[0]); err != nil {
			return nil, err
		}
		return seed.FromCurve(e.grid, e.curve, init)
	}
	if err := dynamo.CheckDrift(e.cfg.Field, e.field, e.anchor); err != nil {
		return nil, err
	}
	return seed.FromPoint(e.grid, e.anchor, init)
}

func (e *Experiment) seedPoint() (geom.Vec, error) {
	if p := e.cfg.Seed.Point; p != nil {
		return geom.Vec{X: p.X, Y: p.Y}, nil
	}
	pa, ok := e.field.(dynamo.PointAttractor)
	if !ok {
		return geom.Vec{}, fmt.Errorf("%w: %s", dynamo.ErrNoAttractor, e.cfg.Field)
	}
	return pa.Attractor(), nil
}

func (e *Experiment) loadCurve() (seed.Curve, error) {
	cfg := e.cfg.Seed
	if cfg.CurveFile != "" {
		return seed.LoadCurve(cfg.CurveFile)
	}
	return seed.Circle(cfg.CurvePoints, cfg.CurveRadius), nil
}

func (e *Experiment) traceOptions() seed.TraceOptions {
	opts := seed.DefaultTraceOptions()
	opts.Spacing = min(e.grid.Hx(), e.grid.Hy())

	tc := e.cfg.Seed.Trace
	if tc.Transient > 0 {
		opts.Transient = tc.Transient
	}
	if tc.Dt > 0 {
		opts.Dt = tc.Dt
	}
	if tc.Spacing > 0 {
		opts.Spacing = tc.Spacing
	}
	if tc.MaxTime > 0 {
		opts.MaxTime = tc.MaxTime
	}
	return opts
}

func (e *Experiment) initializer() (seed.Initializer, error) {
	switch e.cfg.Seed.Init {
	case config.InitZero:
		return seed.Zero, nil
	case config.InitExact:
		ex, ok := e.field.(dynamo.Exact)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoExact, e.cfg.Field)
		}
		return seed.Exact(ex), nil
	case config.InitLinearized:
		return seed.Linearized(e.field, e.anchor)
	case config.InitCurveDistance:
		return seed.CurveDistance(e.field, e.curve), nil
	}
	return nil, fmt.Errorf("%w: unknown init %q", config.ErrInvalidConfig, e.cfg.Seed.Init)
}

func (e *Experiment) Grid() *mesh.Grid { return e.grid }

func (e *Experiment) Field() dynamo.Field { return e.field }

// Curve returns the seed curve, nil for point seeds.
func (e *Experiment) Curve() seed.Curve { return e.curve }

func (e *Experiment) Seeds() seed.Set { return e.seeds }

// GetSolver returns the underlying solver for adding observers.
func (e *Experiment) GetSolver() *olim.Solver {
	return e.solver
}
