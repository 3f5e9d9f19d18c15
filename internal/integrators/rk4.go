package integrators

import (
	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
)

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f dynamo.Field, x geom.Vec, dt float64) geom.Vec {
	k1 := f.Drift(x)
	k2 := f.Drift(x.Add(k1.Scale(dt * 0.5)))
	k3 := f.Drift(x.Add(k2.Scale(dt * 0.5)))
	k4 := f.Drift(x.Add(k3.Scale(dt)))

	dt6 := dt / 6.0
	return geom.Vec{
		X: x.X + dt6*(k1.X+2*k2.X+2*k3.X+k4.X),
		Y: x.Y + dt6*(k1.Y+2*k2.Y+2*k3.Y+k4.Y),
	}
}
