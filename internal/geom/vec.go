// Package geom provides the planar vector and 2x2 matrix arithmetic used by
// the update formulas. All operations are pure and allocation free.
package geom

import "math"

// Vec is a point or direction in the plane.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y} }

func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y} }

func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }

func (v Vec) Dot(w Vec) float64 { return v.X*w.X + v.Y*w.Y }

// Cross returns the z component of v x w.
func (v Vec) Cross(w Vec) float64 { return v.X*w.Y - v.Y*w.X }

func (v Vec) Norm() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// LinComb returns s*a + t*b.
func LinComb(a, b Vec, s, t float64) Vec {
	return Vec{s*a.X + t*b.X, s*a.Y + t*b.Y}
}

// Midpoint returns (a+b)/2.
func Midpoint(a, b Vec) Vec {
	return LinComb(a, b, 0.5, 0.5)
}

// Dist returns |a-b|.
func Dist(a, b Vec) float64 {
	return b.Sub(a).Norm()
}
