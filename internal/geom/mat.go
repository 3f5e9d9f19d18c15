package geom

import "errors"

// ErrSingular is returned when inverting a matrix with zero determinant.
var ErrSingular = errors.New("geom: singular matrix")

// Mat2 is a 2x2 matrix in row-major order.
type Mat2 struct {
	A11, A12 float64
	A21, A22 float64
}

func (m Mat2) Det() float64 { return m.A11*m.A22 - m.A12*m.A21 }

// Inverse returns m^-1. Only an exactly zero determinant is rejected; nearly
// singular matrices produce large entries.
func (m Mat2) Inverse() (Mat2, error) {
	det := m.Det()
	if det == 0 {
		return Mat2{}, ErrSingular
	}
	r := 1.0 / det
	return Mat2{
		A11: m.A22 * r, A12: -m.A12 * r,
		A21: -m.A21 * r, A22: m.A11 * r,
	}, nil
}

// Mul returns the product m*n.
func (m Mat2) Mul(n Mat2) Mat2 {
	return Mat2{
		A11: m.A11*n.A11 + m.A12*n.A21,
		A12: m.A11*n.A12 + m.A12*n.A22,
		A21: m.A21*n.A11 + m.A22*n.A21,
		A22: m.A21*n.A12 + m.A22*n.A22,
	}
}

func (m Mat2) Transpose() Mat2 {
	return Mat2{A11: m.A11, A12: m.A21, A21: m.A12, A22: m.A22}
}

func (m Mat2) MulVec(v Vec) Vec {
	return Vec{m.A11*v.X + m.A12*v.Y, m.A21*v.X + m.A22*v.Y}
}

// QuadForm returns v^T m v.
func (m Mat2) QuadForm(v Vec) float64 {
	return v.Dot(m.MulVec(v))
}
