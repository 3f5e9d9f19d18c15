// Package integrators advances points along the deterministic flow x' = b(x)
// of a planar drift field.
package integrators

import (
	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
)

type Integrator interface {
	Step(f dynamo.Field, x geom.Vec, dt float64) geom.Vec
}

// Trajectory integrates steps steps from x0 and returns all visited points,
// x0 included. It stops early if the state becomes non-finite.
func Trajectory(integ Integrator, f dynamo.Field, x0 geom.Vec, dt float64, steps int) []geom.Vec {
	out := make([]geom.Vec, 0, steps+1)
	out = append(out, x0)
	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(f, x, dt)
		if !x.IsValid() {
			break
		}
		out = append(out, x)
	}
	return out
}

// Advance integrates for time t and returns the final point.
func Advance(integ Integrator, f dynamo.Field, x geom.Vec, t, dt float64) geom.Vec {
	n := int(t / dt)
	for i := 0; i < n && x.IsValid(); i++ {
		x = integ.Step(f, x, dt)
	}
	return x
}
