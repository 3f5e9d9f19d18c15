package physics

import (
	"fmt"

	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
)

// FitzHughNagumo in the excitable regime |a| > 1.
// Equations:
//
//	dx/dt = x - x³/3 - y
//	dy/dt = x + a
type FitzHughNagumo struct {
	A float64
}

func NewFitzHughNagumo() *FitzHughNagumo {
	return &FitzHughNagumo{A: 1.2}
}

func (f *FitzHughNagumo) Name() string { return "fitzhugh" }

func (f *FitzHughNagumo) Drift(x geom.Vec) geom.Vec {
	return geom.Vec{X: x.X - x.X*x.X*x.X/3 - x.Y, Y: x.X + f.A}
}

func (f *FitzHughNagumo) Jacobian(x geom.Vec) geom.Mat2 {
	return geom.Mat2{A11: 1 - x.X*x.X, A12: -1, A21: 1, A22: 0}
}

// Attractor is the unique equilibrium (-a, -a(1 - a²/3)), stable for |a| > 1.
func (f *FitzHughNagumo) Attractor() geom.Vec {
	return geom.Vec{X: -f.A, Y: -f.A * (1 - f.A*f.A/3)}
}

func (f *FitzHughNagumo) GetParams() map[string]float64 {
	return map[string]float64{"a": f.A}
}

func (f *FitzHughNagumo) SetParam(name string, value float64) error {
	switch name {
	case "a":
		if value <= 1 && value >= -1 {
			return fmt.Errorf("%w: a=%g gives an unstable equilibrium", dynamo.ErrParameterBounds, value)
		}
		f.A = value
	default:
		return unknownParam(f.Name(), name)
	}
	return nil
}
