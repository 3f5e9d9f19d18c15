package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
)

var viridis = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// stride returns the sampling step that keeps at most limit points out of n.
func stride(n, limit int) int {
	if limit <= 0 || n <= limit {
		return 1
	}
	return (n + limit - 1) / limit
}

// HTML writes a scatter chart of the reached points of values, colored by
// value and subsampled to o.MaxPoints per axis.
func HTML(w io.Writer, grid *mesh.Grid, values []float64, curve []geom.Vec, o Options) error {
	if len(values) != grid.Size() {
		return fmt.Errorf("render: %d values for a %s", len(values), grid)
	}
	f := newField(grid, values, o.Max)
	sx, sy := stride(grid.NX, o.MaxPoints), stride(grid.NY, o.MaxPoints)

	points := make([]opts.ScatterData, 0, (grid.NX/sx+1)*(grid.NY/sy+1))
	for j := 0; j < grid.NY; j += sy {
		for i := 0; i < grid.NX; i += sx {
			v := f.Z(i, j)
			if math.IsNaN(v) {
				continue
			}
			points = append(points, opts.ScatterData{Value: []interface{}{f.X(i), f.Y(j), v}})
		}
	}

	top := f.clip
	if top <= 0 {
		top = 1
	}
	title := o.Title
	if title == "" {
		title = "Quasi-potential"
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%s, %d points shown", grid, len(points))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: grid.XMin, Max: grid.XMax, Name: "x", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: grid.YMin, Max: grid.YMax, Name: "y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(top),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	symbol := max(2, 600/max(grid.NX/sx, grid.NY/sy))
	scatter.AddSeries("U", points, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: symbol}))

	if len(curve) > 0 {
		cp := make([]opts.ScatterData, len(curve))
		for i, v := range curve {
			cp[i] = opts.ScatterData{Value: []interface{}{v.X, v.Y}}
		}
		scatter.AddSeries("seed curve", cp, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 2}))
	}

	return scatter.Render(w)
}
