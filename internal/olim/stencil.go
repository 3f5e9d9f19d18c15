package olim

import (
	"math"

	"github.com/san-kum/qpot/internal/mesh"
)

// Stencil enumerates the grid points inside the rasterised disk of radius K
// around a centre point.
type Stencil struct {
	grid *mesh.Grid
	k    int
	// half[d] is the row half-width at column offset d.
	half []int
}

func NewStencil(grid *mesh.Grid, k int) *Stencil {
	half := make([]int, k+1)
	for d := 0; d <= k; d++ {
		half[d] = int(math.Ceil(math.Sqrt(math.Abs(float64(k*k - d*d)))))
	}
	return &Stencil{grid: grid, k: k, half: half}
}

func (s *Stencil) Radius() int { return s.k }

// Each calls fn for every in-grid point of the disk around (i, j), column by
// column from the left, rows bottom to top. The centre is included.
func (s *Stencil) Each(i, j int, fn func(idx int)) {
	nx1, ny1 := s.grid.NX-1, s.grid.NY-1
	for i0 := max(i-s.k, 0); i0 <= min(i+s.k, nx1); i0++ {
		d := i - i0
		if d < 0 {
			d = -d
		}
		jj := s.half[d]
		for j0 := max(j-jj, 0); j0 <= min(j+jj, ny1); j0++ {
			fn(s.grid.Index(i0, j0))
		}
	}
}

// Size returns the number of points in an unclipped disk.
func (s *Stencil) Size() int {
	n := 0
	for d := -s.k; d <= s.k; d++ {
		ad := d
		if ad < 0 {
			ad = -ad
		}
		n += 2*s.half[ad] + 1
	}
	return n
}
