package integrators

import (
	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
)

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.Field, x geom.Vec, dt float64) geom.Vec {
	return x.Add(f.Drift(x).Scale(dt))
}
