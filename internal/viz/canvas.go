package viz

import (
	"strings"

	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/olim"
)

// Braille patterns hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// at Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel canvas over a rectangle of the plane. It has
// Width*2 by Height*4 dots; y grows upward.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	xmin, xmax float64
	ymin, ymax float64
}

func NewCanvas(w, h int, xmin, xmax, ymin, ymax float64) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		xmin:   xmin,
		xmax:   xmax,
		ymin:   ymin,
		ymax:   ymax,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set sets the dot at (x, y) in dot coordinates, (0, 0) being top left.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// dot maps a point of the plane to dot coordinates.
func (c *Canvas) dot(p geom.Vec) (int, int) {
	w, h := c.Width*2, c.Height*4
	x := int((p.X-c.xmin)/(c.xmax-c.xmin)*float64(w-1) + 0.5)
	y := int((c.ymax-p.Y)/(c.ymax-c.ymin)*float64(h-1) + 0.5)
	return x, y
}

// Line draws the segment from a to b using Bresenham's algorithm.
func (c *Canvas) Line(a, b geom.Vec) {
	x0, y0 := c.dot(a)
	x1, y1 := c.dot(b)
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Polygon draws the closed polygon through pts.
func (c *Canvas) Polygon(pts []geom.Vec) {
	for i := range pts {
		c.Line(pts[i], pts[(i+1)%len(pts)])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// LevelSets draws the level sets {U = level} of values on a w x h character
// canvas. A dot is set at every dot center whose nearest grid cell has
// corners on both sides of a level. Unreached points never cross a level.
func LevelSets(grid *mesh.Grid, values []float64, levels []float64, w, h int) *Canvas {
	c := NewCanvas(w, h, grid.XMin, grid.XMax, grid.YMin, grid.YMax)
	dw, dh := w*2, h*4

	for y := 0; y < dh; y++ {
		py := grid.YMax - (grid.YMax-grid.YMin)*float64(y)/float64(max(dh-1, 1))
		for x := 0; x < dw; x++ {
			px := grid.XMin + (grid.XMax-grid.XMin)*float64(x)/float64(max(dw-1, 1))
			i, j := grid.Locate(geom.Vec{X: px, Y: py})
			i = min(max(i, 0), grid.NX-2)
			j = min(max(j, 0), grid.NY-2)

			lo, hi, ok := cellRange(grid, values, i, j)
			if !ok {
				continue
			}
			for _, l := range levels {
				if lo <= l && l < hi {
					c.Set(x, y)
					break
				}
			}
		}
	}
	return c
}

// cellRange returns the smallest and largest corner values of cell (i, j),
// false if a corner is unreached.
func cellRange(grid *mesh.Grid, values []float64, i, j int) (float64, float64, bool) {
	lo, hi := olim.Infinity, -olim.Infinity
	for _, d := range [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		v := values[grid.Index(i+d[0], j+d[1])]
		if v >= olim.Infinity-1 {
			return 0, 0, false
		}
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi, true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
