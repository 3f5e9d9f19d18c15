package seed

import (
	"fmt"

	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/integrators"
)

// TraceOptions control limit cycle tracing.
type TraceOptions struct {
	// Transient is the time integrated before recording starts.
	Transient float64
	// Dt is the integration step.
	Dt float64
	// Spacing is the minimum distance between recorded curve points.
	Spacing float64
	// MaxTime bounds the recorded revolution.
	MaxTime float64
}

func DefaultTraceOptions() TraceOptions {
	return TraceOptions{Transient: 50, Dt: 1e-3, Spacing: 5e-3, MaxTime: 100}
}

// TraceCycle follows the flow of f from x0 until it settles, then records one
// revolution as a closed curve. The revolution ends when the trajectory
// crosses the line through its first point normal to the flow, in the flow
// direction, close to that point.
func TraceCycle(f dynamo.Field, x0 geom.Vec, opts TraceOptions) (Curve, error) {
	if opts.Dt <= 0 || opts.Spacing <= 0 || opts.MaxTime <= 0 || opts.Transient < 0 {
		return nil, fmt.Errorf("%w: %+v", ErrBadTraceOptions, opts)
	}
	rk := integrators.NewRK4()

	p0 := integrators.Advance(rk, f, x0, opts.Transient, opts.Dt)
	if !p0.IsValid() {
		return nil, fmt.Errorf("%w: trajectory from %v diverged", ErrNoCycle, x0)
	}
	n := f.Drift(p0)
	if n.Norm() < 1e-9 {
		return nil, fmt.Errorf("%w: trajectory from %v settled at %v", ErrNoCycle, x0, p0)
	}

	curve := Curve{p0}
	last := p0
	x := p0
	prev := 0.0
	far := 0.0
	steps := int(opts.MaxTime / opts.Dt)
	for k := 0; k < steps; k++ {
		x = rk.Step(f, x, opts.Dt)
		if !x.IsValid() {
			return nil, fmt.Errorf("%w: trajectory from %v diverged", ErrNoCycle, x0)
		}
		d := geom.Dist(x, p0)
		far = max(far, d)

		s := x.Sub(p0).Dot(n)
		if prev < 0 && s >= 0 && d < 0.1*far {
			if len(curve) < 3 {
				return nil, fmt.Errorf("%w: revolution shorter than spacing %g", ErrNoCycle, opts.Spacing)
			}
			return curve, nil
		}
		prev = s

		if geom.Dist(x, last) >= opts.Spacing {
			curve = append(curve, x)
			last = x
		}
	}
	return nil, fmt.Errorf("%w: no return to %v within t=%g", ErrNoCycle, p0, opts.MaxTime)
}
