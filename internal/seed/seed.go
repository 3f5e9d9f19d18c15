package seed

import (
	"fmt"

	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
)

// Entry is one grid point of the initial Considered set.
type Entry struct {
	Index int
	Value float64
}

type Set []Entry

// Indices returns the grid indices of the set in order.
func (s Set) Indices() []int {
	out := make([]int, len(s))
	for i, e := range s {
		out[i] = e.Index
	}
	return out
}

// FromPoint seeds the four corners of the grid cell containing p.
func FromPoint(grid *mesh.Grid, p geom.Vec, init Initializer) (Set, error) {
	i, j := grid.Locate(p)
	if i < 0 || j < 0 || i >= grid.NX-1 || j >= grid.NY-1 {
		return nil, fmt.Errorf("%w: (%g, %g) -> cell (%d, %d) of %s", ErrOutsideGrid, p.X, p.Y, i, j, grid)
	}

	corners := [4][2]int{{i, j}, {i + 1, j}, {i + 1, j + 1}, {i, j + 1}}
	set := make(Set, 0, 4)
	for _, c := range corners {
		idx := grid.Index(c[0], c[1])
		set = append(set, Entry{Index: idx, Value: init(grid.Point(idx))})
	}
	return set, nil
}

// FromCurve seeds every grid point in the index bounding box of each segment
// of the closed curve c. Points are listed once, in the order first reached.
// Boxes are clipped to the grid.
func FromCurve(grid *mesh.Grid, c Curve, init Initializer) (Set, error) {
	if len(c) < 2 {
		return nil, ErrEmptyCurve
	}

	seen := make(map[int]struct{})
	var set Set
	for n := range c {
		p0, p1 := c[n], c[c.Next(n)]
		a0, b0 := grid.Locate(p0)
		a1, b1 := grid.Locate(p1)
		c0, d0 := grid.LocateCeil(p0)
		c1, d1 := grid.LocateCeil(p1)

		i0, j0 := max(min(a0, a1), 0), max(min(b0, b1), 0)
		i1, j1 := min(max(c0, c1), grid.NX-1), min(max(d0, d1), grid.NY-1)
		for i := i0; i <= i1; i++ {
			for j := j0; j <= j1; j++ {
				idx := grid.Index(i, j)
				if _, ok := seen[idx]; ok {
					continue
				}
				seen[idx] = struct{}{}
				set = append(set, Entry{Index: idx, Value: init(grid.Point(idx))})
			}
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: curve does not meet %s", ErrOutsideGrid, grid)
	}
	return set, nil
}
