// Package mesh maps the rectangular lattice used by the solver between linear
// indices, (i, j) cell coordinates and points in the plane.
//
// Points are numbered idx = i + NX*j where i is the x column and j the y row.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/qpot/internal/geom"
)

var (
	ErrGridTooSmall  = errors.New("mesh: grid needs at least 2 points per axis")
	ErrInvalidDomain = errors.New("mesh: domain bounds must satisfy min < max")
)

// Offsets of the eight lattice neighbours, counter-clockwise from +x.
var neighborOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

type Grid struct {
	NX, NY     int
	XMin, XMax float64
	YMin, YMax float64

	hx, hy float64
}

func New(nx, ny int, xmin, xmax, ymin, ymax float64) (*Grid, error) {
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, nx, ny)
	}
	if !(xmin < xmax) || !(ymin < ymax) {
		return nil, fmt.Errorf("%w: x [%g, %g], y [%g, %g]", ErrInvalidDomain, xmin, xmax, ymin, ymax)
	}
	return &Grid{
		NX: nx, NY: ny,
		XMin: xmin, XMax: xmax,
		YMin: ymin, YMax: ymax,
		hx: (xmax - xmin) / float64(nx-1),
		hy: (ymax - ymin) / float64(ny-1),
	}, nil
}

func (g *Grid) Size() int { return g.NX * g.NY }

func (g *Grid) Hx() float64 { return g.hx }

func (g *Grid) Hy() float64 { return g.hy }

func (g *Grid) Index(i, j int) int { return i + g.NX*j }

// Cell returns the column and row of idx.
func (g *Grid) Cell(idx int) (i, j int) {
	return idx % g.NX, idx / g.NX
}

func (g *Grid) InBounds(i, j int) bool {
	return i >= 0 && i < g.NX && j >= 0 && j < g.NY
}

func (g *Grid) Valid(idx int) bool {
	return idx >= 0 && idx < g.Size()
}

func (g *Grid) PointAt(i, j int) geom.Vec {
	return geom.Vec{X: g.XMin + float64(i)*g.hx, Y: g.YMin + float64(j)*g.hy}
}

func (g *Grid) Point(idx int) geom.Vec {
	i, j := g.Cell(idx)
	return g.PointAt(i, j)
}

// Locate returns the lower-left corner of the cell containing p. The result
// may lie outside the grid; callers check InBounds.
func (g *Grid) Locate(p geom.Vec) (i, j int) {
	return int(math.Floor((p.X - g.XMin) / g.hx)), int(math.Floor((p.Y - g.YMin) / g.hy))
}

// LocateCeil is Locate rounded up instead of down.
func (g *Grid) LocateCeil(p geom.Vec) (i, j int) {
	return int(math.Ceil((p.X - g.XMin) / g.hx)), int(math.Ceil((p.Y - g.YMin) / g.hy))
}

// Neighbors appends the in-bounds 8-neighbours of idx to buf and returns it.
// Neighbours that would wrap across a row edge are skipped.
func (g *Grid) Neighbors(idx int, buf []int) []int {
	i, j := g.Cell(idx)
	for _, off := range neighborOffsets {
		ni, nj := i+off[0], j+off[1]
		if g.InBounds(ni, nj) {
			buf = append(buf, g.Index(ni, nj))
		}
	}
	return buf
}

// NearBoundary reports whether (i, j) lies within margin cells of the edge.
func (g *Grid) NearBoundary(i, j, margin int) bool {
	return i <= margin || i >= g.NX-1-margin || j <= margin || j >= g.NY-1-margin
}

// Row returns the values of row j from a row-major field.
func (g *Grid) Row(values []float64, j int) []float64 {
	return values[j*g.NX : (j+1)*g.NX]
}

// Column copies column i out of a row-major field.
func (g *Grid) Column(values []float64, i int) []float64 {
	col := make([]float64, g.NY)
	for j := range col {
		col[j] = values[g.Index(i, j)]
	}
	return col
}

func (g *Grid) String() string {
	return fmt.Sprintf("%dx%d [%g,%g]x[%g,%g]", g.NX, g.NY, g.XMin, g.XMax, g.YMin, g.YMax)
}
