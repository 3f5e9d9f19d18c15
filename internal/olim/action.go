package olim

import (
	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
)

// Action is the geometric action of the straight segment x0 -> x1 with the
// drift evaluated once at the midpoint.
func Action(f dynamo.Field, x0, x1 geom.Vec) float64 {
	l := x1.Sub(x0)
	b := f.Drift(geom.Midpoint(x0, x1))
	return b.Norm()*l.Norm() - b.Dot(l)
}
