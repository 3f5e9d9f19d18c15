package physics

import "github.com/san-kum/qpot/internal/geom"

// Cycle attracts radially to the unit circle while rotating clockwise.
// Equations:
//
//	dx/dt = y + x(1 - r²)
//	dy/dt = -x + y(1 - r²)
//
// The quasi-potential is U = (r² - 1)² / 2.
type Cycle struct{}

func NewCycle() *Cycle { return &Cycle{} }

func (c *Cycle) Name() string { return "cycle" }

func (c *Cycle) Drift(x geom.Vec) geom.Vec {
	aux := 1 - x.X*x.X - x.Y*x.Y
	return geom.Vec{X: x.Y + x.X*aux, Y: -x.X + x.Y*aux}
}

func (c *Cycle) Jacobian(x geom.Vec) geom.Mat2 {
	aux := 1 - x.X*x.X - x.Y*x.Y
	return geom.Mat2{
		A11: aux - 2*x.X*x.X, A12: 1 - 2*x.X*x.Y,
		A21: -1 - 2*x.X*x.Y, A22: aux - 2*x.Y*x.Y,
	}
}

func (c *Cycle) Potential(x geom.Vec) float64 {
	r2 := x.X*x.X + x.Y*x.Y
	return 0.5 * (r2 - 1) * (r2 - 1)
}

func (c *Cycle) GetParams() map[string]float64 { return map[string]float64{} }

func (c *Cycle) SetParam(name string, _ float64) error {
	return unknownParam(c.Name(), name)
}
