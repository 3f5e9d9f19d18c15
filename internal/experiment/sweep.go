package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/qpot/internal/config"
	"github.com/san-kum/qpot/internal/dynamo"
)

// Sweep solves every configuration on up to workers goroutines, each with its
// own solver. Outcomes are returned in configuration order. The first failing
// solve cancels the rest.
func Sweep(ctx context.Context, reg *Registry, cfgs []*config.Config, workers int) ([]*Outcome, error) {
	out := make([]*Outcome, len(cfgs))
	err := dynamo.ForEach(ctx, len(cfgs), workers, func(ctx context.Context, i int) error {
		e := New(cfgs[i], reg)
		if err := e.Setup(reg.DefaultMetrics()); err != nil {
			return fmt.Errorf("config %d (%s): %w", i, cfgs[i].Field, err)
		}
		o, err := e.Run(ctx)
		if err != nil {
			return fmt.Errorf("config %d (%s): %w", i, cfgs[i].Field, err)
		}
		out[i] = o
		return nil
	})
	return out, err
}

// Refine returns copies of base with the grid resolution multiplied by each
// factor and the stencil radius scaled by its square root, the refinement
// path used for convergence studies.
func Refine(base *config.Config, factors ...float64) []*config.Config {
	cfgs := make([]*config.Config, 0, len(factors))
	for _, f := range factors {
		c := base.Clone()
		c.Grid.NX = int(float64(base.Grid.NX-1)*f) + 1
		c.Grid.NY = int(float64(base.Grid.NY-1)*f) + 1
		c.Stencil.K = max(1, int(float64(base.Stencil.K)*math.Sqrt(f)+0.5))
		cfgs = append(cfgs, c)
	}
	return cfgs
}
