package physics

import "github.com/san-kum/qpot/internal/geom"

// MaierStein is the Maier-Stein system. It is a gradient field only for
// beta = mu = 1; the default beta = 10 is strongly non-gradient.
// Equations:
//
//	dx/dt = x - x³ - beta x y²
//	dy/dt = -mu (1 + x²) y
type MaierStein struct {
	Beta, Mu float64
}

func NewMaierStein() *MaierStein {
	return &MaierStein{Beta: 10.0, Mu: 1.0}
}

func (m *MaierStein) Name() string { return "maierstein" }

func (m *MaierStein) Drift(x geom.Vec) geom.Vec {
	return geom.Vec{
		X: x.X - x.X*x.X*x.X - m.Beta*x.X*x.Y*x.Y,
		Y: -m.Mu * (1 + x.X*x.X) * x.Y,
	}
}

func (m *MaierStein) Jacobian(x geom.Vec) geom.Mat2 {
	return geom.Mat2{
		A11: 1 - 3*x.X*x.X - m.Beta*x.Y*x.Y, A12: -2 * m.Beta * x.X * x.Y,
		A21: -2 * m.Mu * x.X * x.Y, A22: -m.Mu * (1 + x.X*x.X),
	}
}

// Attractor returns the left of the two stable equilibria (+-1, 0).
func (m *MaierStein) Attractor() geom.Vec { return geom.Vec{X: -1} }

func (m *MaierStein) GetParams() map[string]float64 {
	return map[string]float64{"beta": m.Beta, "mu": m.Mu}
}

func (m *MaierStein) SetParam(name string, value float64) error {
	switch name {
	case "beta":
		m.Beta = value
	case "mu":
		m.Mu = value
	default:
		return unknownParam(m.Name(), name)
	}
	return nil
}
