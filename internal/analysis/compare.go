package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/olim"
)

// Report summarises the pointwise error |U - U_exact| over the points that
// were accepted. Points holding the olim.Infinity sentinel are skipped.
type Report struct {
	ErrMax float64 `json:"errmax"`
	ERMS   float64 `json:"erms"`
	Count  int     `json:"count"`
	// ArgMax is the grid index of the largest error, -1 when Count is 0.
	ArgMax int `json:"argmax"`
}

func Compare(grid *mesh.Grid, values []float64, exact func(geom.Vec) float64) Report {
	errs := make([]float64, 0, len(values))
	idx := make([]int, 0, len(values))
	for i, v := range values {
		if v >= olim.Infinity-1 {
			continue
		}
		errs = append(errs, math.Abs(v-exact(grid.Point(i))))
		idx = append(idx, i)
	}
	if len(errs) == 0 {
		return Report{ArgMax: -1}
	}

	k := floats.MaxIdx(errs)
	return Report{
		ErrMax: errs[k],
		ERMS:   floats.Norm(errs, 2) / math.Sqrt(float64(len(errs))),
		Count:  len(errs),
		ArgMax: idx[k],
	}
}

// ConvergenceOrder returns log(e1/e2) / log(h1/h2), the observed order of
// an error that went from e1 at spacing h1 to e2 at spacing h2.
func ConvergenceOrder(e1, h1, e2, h2 float64) float64 {
	return math.Log(e1/e2) / math.Log(h1/h2)
}

// Sample evaluates f at every grid point, row-major.
func Sample(grid *mesh.Grid, f func(geom.Vec) float64) []float64 {
	out := make([]float64, grid.Size())
	for i := range out {
		out[i] = f(grid.Point(i))
	}
	return out
}

// Errors returns |values - exact| per point, NaN where values is unreached.
func Errors(grid *mesh.Grid, values []float64, exact func(geom.Vec) float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v >= olim.Infinity-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Abs(v - exact(grid.Point(i)))
	}
	return out
}
