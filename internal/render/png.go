package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
)

// Plot builds a heat map of values with optional contours and curve overlay.
func Plot(grid *mesh.Grid, values []float64, curve []geom.Vec, o Options) (*plot.Plot, error) {
	if len(values) != grid.Size() {
		return nil, fmt.Errorf("render: %d values for a %s", len(values), grid)
	}
	f := newField(grid, values, o.Max)

	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = grid.XMin, grid.XMax
	p.Y.Min, p.Y.Max = grid.YMin, grid.YMax

	pal := moreland.SmoothBlueRed().Palette(255)
	heat := plotter.NewHeatMap(f, pal)
	heat.Min, heat.Max = 0, f.clip
	if heat.Max <= heat.Min {
		heat.Max = heat.Min + 1
	}
	heat.NaN = color.Transparent
	p.Add(heat)

	if o.Levels > 0 && f.clip > 0 {
		filled := *f
		filled.fill = true
		c := plotter.NewContour(&filled, levels(o.Levels, f.clip), nil)
		c.LineStyles[0].Width = vg.Points(0.6)
		c.LineStyles[0].Color = color.Black
		p.Add(c)
	}

	if len(curve) > 1 {
		pts := make(plotter.XYs, len(curve)+1)
		for i, v := range curve {
			pts[i] = plotter.XY{X: v.X, Y: v.Y}
		}
		pts[len(curve)] = pts[0]
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Width = vg.Points(1)
		line.Color = color.White
		p.Add(line)
	}

	return p, nil
}

// PNG renders values to path. The extension picks the image format.
func PNG(path string, grid *mesh.Grid, values []float64, curve []geom.Vec, o Options) error {
	p, err := Plot(grid, values, curve, o)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
