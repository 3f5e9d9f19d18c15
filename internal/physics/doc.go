// Package physics provides the planar drift fields qpot solves on.
//
// Each field implements [dynamo.Field] and [dynamo.Configurable]:
//
//   - [Linear]: stable focus with a known quadratic quasi-potential
//   - [MaierStein]: the Maier-Stein system around its left equilibrium
//   - [FitzHughNagumo]: excitable FitzHugh-Nagumo model
//   - [Brusselator]: chemical oscillator with a stable limit cycle
//   - [Cycle]: radially attracting unit circle with a known quasi-potential
//
// Fields with a stable equilibrium implement [dynamo.PointAttractor]; fields
// whose quasi-potential is known in closed form implement [dynamo.Exact]:
//
//	f := physics.NewLinear()
//	if ex, ok := f.(dynamo.Exact); ok {
//	    u := ex.Potential(geom.Vec{X: 0.5, Y: 0.5})
//	}
package physics

import (
	"fmt"

	"github.com/san-kum/qpot/internal/dynamo"
)

func unknownParam(field, name string) error {
	return fmt.Errorf("%w: %s has no parameter %q", dynamo.ErrUnknownParam, field, name)
}
