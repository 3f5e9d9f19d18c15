package viz

import (
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/olim"
)

type Axis int

const (
	// Row plots U(x, y_j) against x.
	Row Axis = iota
	// Column plots U(x_i, y) against y.
	Column
)

var (
	ErrSliceIndex = errors.New("viz: slice index out of range")
	ErrEmptySlice = errors.New("viz: no reached points on slice")
)

// SlicePlot draws U along grid row or column index. Unreached points are
// gaps. When exact is non-nil it is drawn as a second series.
func SlicePlot(grid *mesh.Grid, values []float64, exact func(geom.Vec) float64, axis Axis, index, width, height int) (string, error) {
	var n int
	var at func(k int) (int, int)
	var caption string
	switch axis {
	case Row:
		if index < 0 || index >= grid.NY {
			return "", fmt.Errorf("%w: row %d of %d", ErrSliceIndex, index, grid.NY)
		}
		n, at = grid.NX, func(k int) (int, int) { return k, index }
		caption = fmt.Sprintf("U(x, %.4g)", grid.PointAt(0, index).Y)
	case Column:
		if index < 0 || index >= grid.NX {
			return "", fmt.Errorf("%w: column %d of %d", ErrSliceIndex, index, grid.NX)
		}
		n, at = grid.NY, func(k int) (int, int) { return index, k }
		caption = fmt.Sprintf("U(%.4g, y)", grid.PointAt(index, 0).X)
	default:
		return "", fmt.Errorf("viz: unknown axis %d", axis)
	}

	got := make([]float64, n)
	reached := 0
	for k := range got {
		v := values[grid.Index(at(k))]
		if v >= olim.Infinity-1 {
			got[k] = math.NaN()
			continue
		}
		got[k] = v
		reached++
	}
	if reached == 0 {
		return "", ErrEmptySlice
	}

	data := [][]float64{got}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Goldenrod),
	}
	if exact != nil {
		ref := make([]float64, n)
		for k := range ref {
			ref[k] = exact(grid.PointAt(at(k)))
		}
		data = append(data, ref)
		opts = append(opts, asciigraph.SeriesLegends("computed", "exact"))
	}
	return asciigraph.PlotMany(data, opts...), nil
}
