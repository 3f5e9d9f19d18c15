// Package rootfind finds roots of scalar functions on a bracketing interval
// with a hybrid of secant steps and bisection.
//
// # Algorithm
//
// Hybrid keeps a bracket [b, c] with f(b) and f(c) of opposite sign and b the
// best estimate so far. Each iteration takes a secant step from the previous
// iterate a, falling back to bisection when the secant step leaves the
// bracket or overshoots half its width. Steps smaller than the tolerance are
// lengthened to half the tolerance toward c so the bracket keeps shrinking.
//
// The iteration stops when the bracket is narrower than Tol, when |f| drops
// below Tol at a new iterate, or after MaxIter iterations. In the last case the
// current estimate is still returned and Root.Capped is set.
package rootfind

import (
	"errors"
	"math"
)

// ErrNotBracketed is returned when f(a) and f(b) are both strictly positive or
// both strictly negative.
var ErrNotBracketed = errors.New("rootfind: root is not bracketed")

const (
	DefaultTol     = 1.0e-6
	DefaultMaxIter = 100
)

type Options struct {
	// Tol bounds both the final bracket width and the residual accepted
	// as a root.
	Tol float64
	// MaxIter caps the number of secant/bisection iterations.
	MaxIter int
}

func DefaultOptions() Options {
	return Options{Tol: DefaultTol, MaxIter: DefaultMaxIter}
}

type Root struct {
	S          float64
	Residual   float64
	Iterations int
	Capped     bool
}

// Hybrid returns a root of f in [a, b]. f(a) and f(b) must not share a strict
// sign; a zero at either end counts as bracketed.
func Hybrid(f func(float64) float64, a, b float64, opts Options) (Root, error) {
	if opts.Tol <= 0 {
		opts.Tol = DefaultTol
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = DefaultMaxIter
	}
	tol := opts.Tol

	c := a
	fa := f(a)
	fb := f(b)
	fc := fa
	if (fa > 0 && fb > 0) || (fa < 0 && fb < 0) {
		return Root{}, ErrNotBracketed
	}

	iter := 0
	for iter < opts.MaxIter {
		if math.Abs(fc) < math.Abs(fb) {
			b, c = c, b
			fb, fc = fc, fb
			a, fa = c, fc
		}
		if math.Abs(b-c) < tol {
			break
		}
		dm := 0.5 * (c - b)
		df := fa - fb

		var ds float64
		if math.Abs(df) < tol {
			ds = dm
		} else {
			ds = -fb * (a - b) / df
		}

		dd := ds
		if (ds > 0 && dm < 0) || (ds < 0 && dm > 0) || math.Abs(ds) > math.Abs(dm) {
			dd = dm
		}
		if math.Abs(dd) < tol {
			dd = 0.5 * sign(dm) * tol
		}

		d := b + dd
		fd := f(d)
		if math.Abs(fd) < tol {
			return Root{S: d, Residual: fd, Iterations: iter + 1}, nil
		}
		a, b = b, d
		fa, fb = fb, fd
		if (fb > 0 && fc > 0) || (fb < 0 && fc < 0) {
			c, fc = a, fa
		}
		iter++
	}

	return Root{S: b, Residual: fb, Iterations: iter, Capped: iter >= opts.MaxIter}, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
