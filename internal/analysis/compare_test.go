package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/olim"
)

func TestCompare(t *testing.T) {
	grid, _ := mesh.New(3, 2, 0, 2, 0, 1)
	exact := func(p geom.Vec) float64 { return p.X }

	// points: x = 0, 1, 2 on both rows
	values := []float64{0, 1.5, olim.Infinity, 0.1, 1, 2}
	rep := Compare(grid, values, exact)

	if rep.Count != 5 {
		t.Errorf("count = %d, want 5", rep.Count)
	}
	if math.Abs(rep.ErrMax-0.5) > 1e-12 || rep.ArgMax != 1 {
		t.Errorf("errmax = %v at %d, want 0.5 at 1", rep.ErrMax, rep.ArgMax)
	}
	want := math.Sqrt((0.25 + 0.01) / 5)
	if math.Abs(rep.ERMS-want) > 1e-12 {
		t.Errorf("erms = %v, want %v", rep.ERMS, want)
	}
}

func TestCompare_Empty(t *testing.T) {
	grid, _ := mesh.New(2, 2, 0, 1, 0, 1)
	rep := Compare(grid, []float64{olim.Infinity, olim.Infinity, olim.Infinity, olim.Infinity}, func(geom.Vec) float64 { return 0 })
	if rep.Count != 0 || rep.ArgMax != -1 || rep.ErrMax != 0 {
		t.Errorf("unexpected report %+v", rep)
	}
}

func TestConvergenceOrder(t *testing.T) {
	if p := ConvergenceOrder(0.04, 0.1, 0.01, 0.05); math.Abs(p-2) > 1e-12 {
		t.Errorf("order = %v, want 2", p)
	}
}

func TestSampleAndErrors(t *testing.T) {
	grid, _ := mesh.New(2, 2, 0, 1, 0, 1)
	f := func(p geom.Vec) float64 { return p.X + 10*p.Y }

	s := Sample(grid, f)
	want := []float64{0, 1, 10, 11}
	for i := range want {
		if s[i] != want[i] {
			t.Fatalf("Sample = %v, want %v", s, want)
		}
	}

	e := Errors(grid, []float64{0, 2, olim.Infinity, 11}, f)
	if e[0] != 0 || e[1] != 1 || !math.IsNaN(e[2]) || e[3] != 0 {
		t.Errorf("Errors = %v", e)
	}
}
