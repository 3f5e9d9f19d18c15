package render

import (
	"math"

	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/olim"
)

// Options control both renderers.
type Options struct {
	Title string
	// Levels is the number of contour levels; 0 draws none.
	Levels int
	// Max clips values above it. Zero means the largest reached value.
	Max float64
	// MaxPoints bounds the points per axis of the HTML chart.
	MaxPoints int
}

func DefaultOptions() Options {
	return Options{Levels: 12, MaxPoints: 160}
}

// field adapts a row-major value array to plotter.GridXYZ. Unreached points
// read as NaN, or as the clip value when fill is set.
type field struct {
	grid   *mesh.Grid
	values []float64
	clip   float64
	fill   bool
}

func newField(grid *mesh.Grid, values []float64, clip float64) *field {
	if clip <= 0 {
		clip = Reached(values)
	}
	return &field{grid: grid, values: values, clip: clip}
}

func (f *field) Dims() (c, r int) { return f.grid.NX, f.grid.NY }

func (f *field) X(c int) float64 { return f.grid.XMin + float64(c)*f.grid.Hx() }

func (f *field) Y(r int) float64 { return f.grid.YMin + float64(r)*f.grid.Hy() }

func (f *field) Z(c, r int) float64 {
	v := f.values[f.grid.Index(c, r)]
	if v >= olim.Infinity-1 {
		if f.fill {
			return f.clip
		}
		return math.NaN()
	}
	return math.Min(v, f.clip)
}

// Reached returns the largest value below the unreached sentinel, 0 if there
// is none.
func Reached(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if v < olim.Infinity-1 && v > m {
			m = v
		}
	}
	return m
}

// levels returns n evenly spaced values strictly inside (0, top).
func levels(n int, top float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = top * float64(i+1) / float64(n+1)
	}
	return out
}
