package seed

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
)

// Initializer gives the starting value of a seeded grid point.
type Initializer func(x geom.Vec) float64

func Zero(geom.Vec) float64 { return 0 }

func Exact(f dynamo.Exact) Initializer {
	return f.Potential
}

// Linearized returns U(x) = (x-a)^T Q (x-a) for the linearisation
// b(x) ~ A(x-a) at the attractor a, where Q = Sigma^-1 / 2 and Sigma solves
// the Lyapunov equation A Sigma + Sigma A^T = -I. The result is exact for
// linear fields.
func Linearized(f dynamo.Field, a geom.Vec) (Initializer, error) {
	q, err := QuadraticForm(dynamo.JacobianAt(f, a))
	if err != nil {
		return nil, err
	}
	return func(x geom.Vec) float64 {
		return q.QuadForm(x.Sub(a))
	}, nil
}

// QuadraticForm returns Q = Sigma^-1 / 2 for the Jacobian j.
func QuadraticForm(j geom.Mat2) (geom.Mat2, error) {
	A := mat.NewDense(2, 2, []float64{j.A11, j.A12, j.A21, j.A22})
	I := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	// (I (x) A + A (x) I) vec(Sigma) = -vec(I)
	var k1, k2, L mat.Dense
	k1.Kronecker(I, A)
	k2.Kronecker(A, I)
	L.Add(&k1, &k2)

	rhs := mat.NewVecDense(4, []float64{-1, 0, 0, -1})
	var vs mat.VecDense
	if err := vs.SolveVec(&L, rhs); err != nil {
		return geom.Mat2{}, fmt.Errorf("%w: %v", ErrNotStable, err)
	}

	sigma := mat.NewSymDense(2, []float64{
		vs.AtVec(0), 0.5 * (vs.AtVec(1) + vs.AtVec(2)),
		0.5 * (vs.AtVec(1) + vs.AtVec(2)), vs.AtVec(3),
	})
	var chol mat.Cholesky
	if ok := chol.Factorize(sigma); !ok {
		return geom.Mat2{}, fmt.Errorf("%w: covariance is not positive definite", ErrNotStable)
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return geom.Mat2{}, fmt.Errorf("%w: %v", ErrNotStable, err)
	}
	return geom.Mat2{
		A11: 0.5 * inv.At(0, 0), A12: 0.5 * inv.At(0, 1),
		A21: 0.5 * inv.At(1, 0), A22: 0.5 * inv.At(1, 1),
	}, nil
}

// CurveDistance estimates U near an attracting closed curve by integrating
// twice the drift component normal to the curve along the shortest segment
// from the curve to x, with Simpson's rule. The normal component at the foot
// point is taken as zero.
func CurveDistance(f dynamo.Field, c Curve) Initializer {
	return func(x geom.Vec) float64 {
		foot, d := c.Foot(x)
		if d == 0 {
			return 0
		}
		b0 := f.Drift(foot)
		bm := f.Drift(geom.Midpoint(foot, x))
		bx := f.Drift(x)

		n0 := b0.Dot(b0)
		normal := func(b geom.Vec) float64 {
			if n0 == 0 {
				return b.Norm()
			}
			return b.Sub(b0.Scale(b.Dot(b0) / n0)).Norm()
		}
		return d * (4*normal(bm) + normal(bx)) / 3
	}
}
