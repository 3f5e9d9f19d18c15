package dynamo

import "github.com/san-kum/qpot/internal/geom"

type Field interface {
	Drift(x geom.Vec) geom.Vec
}

// FieldFunc adapts an ordinary function to the Field interface.
type FieldFunc func(x geom.Vec) geom.Vec

func (f FieldFunc) Drift(x geom.Vec) geom.Vec { return f(x) }

// Exact is implemented by fields whose quasi-potential is known analytically.
type Exact interface {
	Field
	Potential(x geom.Vec) float64
}

type PointAttractor interface {
	Field
	Attractor() geom.Vec
}

// Differentiable fields provide their Jacobian db/dx.
type Differentiable interface {
	Field
	Jacobian(x geom.Vec) geom.Mat2
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Acceptance describes one grid point leaving the considered set.
type Acceptance struct {
	Step     int
	Index    int
	Value    float64
	TwoPoint bool
}

type Metric interface {
	Name() string
	Observe(a Acceptance)
	Value() float64
	Reset()
}

type Observer interface {
	OnAccept(a Acceptance)
}

// NumericJacobian approximates db/dx at x with central differences of step h.
func NumericJacobian(f Field, x geom.Vec, h float64) geom.Mat2 {
	dx := f.Drift(geom.Vec{X: x.X + h, Y: x.Y}).Sub(f.Drift(geom.Vec{X: x.X - h, Y: x.Y})).Scale(0.5 / h)
	dy := f.Drift(geom.Vec{X: x.X, Y: x.Y + h}).Sub(f.Drift(geom.Vec{X: x.X, Y: x.Y - h})).Scale(0.5 / h)
	return geom.Mat2{
		A11: dx.X, A12: dy.X,
		A21: dx.Y, A22: dy.Y,
	}
}

// JacobianAt returns the analytic Jacobian when f provides one and a
// central-difference estimate otherwise.
func JacobianAt(f Field, x geom.Vec) geom.Mat2 {
	if d, ok := f.(Differentiable); ok {
		return d.Jacobian(x)
	}
	return NumericJacobian(f, x, 1e-6)
}
