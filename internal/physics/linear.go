package physics

import "github.com/san-kum/qpot/internal/geom"

// Linear is a stable focus at the origin.
// Equations:
//
//	dx/dt = -2x - a y
//	dy/dt = 2a x - y
//
// b = -grad(U)/2 + l with U = 2x² + y² and l orthogonal to grad(U) for every a.
type Linear struct {
	A float64 // rotation strength
}

func NewLinear() *Linear {
	return &Linear{A: 10.0}
}

func (l *Linear) Name() string { return "linear" }

func (l *Linear) Drift(x geom.Vec) geom.Vec {
	return geom.Vec{X: -2*x.X - l.A*x.Y, Y: 2*l.A*x.X - x.Y}
}

func (l *Linear) Jacobian(geom.Vec) geom.Mat2 {
	return geom.Mat2{A11: -2, A12: -l.A, A21: 2 * l.A, A22: -1}
}

func (l *Linear) Attractor() geom.Vec { return geom.Vec{} }

func (l *Linear) Potential(x geom.Vec) float64 {
	return 2*x.X*x.X + x.Y*x.Y
}

func (l *Linear) GetParams() map[string]float64 {
	return map[string]float64{"a": l.A}
}

func (l *Linear) SetParam(name string, value float64) error {
	switch name {
	case "a":
		l.A = value
	default:
		return unknownParam(l.Name(), name)
	}
	return nil
}
