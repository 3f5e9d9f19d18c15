package physics

import (
	"fmt"

	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
)

// Brusselator has a stable limit cycle around (a, b/a) when b > 1 + a².
// Equations:
//
//	dx/dt = a + x² y - (b + 1) x
//	dy/dt = b x - x² y
type Brusselator struct {
	A, B float64
}

func NewBrusselator() *Brusselator {
	return &Brusselator{A: 1.0, B: 3.0}
}

func (b *Brusselator) Name() string { return "brusselator" }

func (b *Brusselator) Drift(x geom.Vec) geom.Vec {
	x2y := x.X * x.X * x.Y
	return geom.Vec{X: b.A + x2y - (b.B+1)*x.X, Y: b.B*x.X - x2y}
}

func (b *Brusselator) Jacobian(x geom.Vec) geom.Mat2 {
	return geom.Mat2{
		A11: 2*x.X*x.Y - (b.B + 1), A12: x.X * x.X,
		A21: b.B - 2*x.X*x.Y, A22: -x.X * x.X,
	}
}

func (b *Brusselator) GetParams() map[string]float64 {
	return map[string]float64{"a": b.A, "b": b.B}
}

func (b *Brusselator) SetParam(name string, value float64) error {
	switch name {
	case "a":
		if value <= 0 {
			return fmt.Errorf("%w: a=%g must be positive", dynamo.ErrParameterBounds, value)
		}
		b.A = value
	case "b":
		b.B = value
	default:
		return unknownParam(b.Name(), name)
	}
	return nil
}
