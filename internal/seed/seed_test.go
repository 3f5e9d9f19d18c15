package seed

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/physics"
)

func TestFromPoint(t *testing.T) {
	grid, _ := mesh.New(65, 65, -1, 1, -1, 1)

	set, err := FromPoint(grid, geom.Vec{X: 0.01, Y: 0.01}, Zero)
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 4 {
		t.Fatalf("got %d seeds, want 4", len(set))
	}

	want := []int{grid.Index(32, 32), grid.Index(33, 32), grid.Index(33, 33), grid.Index(32, 33)}
	for k, e := range set {
		if e.Index != want[k] {
			t.Errorf("seed %d = %d, want %d", k, e.Index, want[k])
		}
		if e.Value != 0 {
			t.Errorf("seed %d value = %v, want 0", k, e.Value)
		}
	}
}

func TestFromPoint_Outside(t *testing.T) {
	grid, _ := mesh.New(17, 17, -1, 1, -1, 1)

	tests := []geom.Vec{{X: -2, Y: 0}, {X: 0, Y: 1}, {X: 1.5, Y: 1.5}}
	for _, p := range tests {
		if _, err := FromPoint(grid, p, Zero); !errors.Is(err, ErrOutsideGrid) {
			t.Errorf("FromPoint(%v) error = %v, want ErrOutsideGrid", p, err)
		}
	}
}

func TestFromCurve(t *testing.T) {
	grid, _ := mesh.New(81, 81, -2, 2, -2, 2)
	c := Circle(200, 1)
	f := physics.NewCycle()

	set, err := FromCurve(grid, c, Exact(f))
	if err != nil {
		t.Fatal(err)
	}

	seen := map[int]bool{}
	for _, e := range set {
		if seen[e.Index] {
			t.Fatalf("index %d seeded twice", e.Index)
		}
		seen[e.Index] = true

		r := grid.Point(e.Index).Norm()
		if math.Abs(r-1) > 2*math.Hypot(grid.Hx(), grid.Hy()) {
			t.Errorf("seed at r=%v is far from the curve", r)
		}
	}
	if len(set) < 100 {
		t.Errorf("only %d seeds for a circle through a 81x81 grid", len(set))
	}
}

func TestFromCurve_Empty(t *testing.T) {
	grid, _ := mesh.New(9, 9, 0, 1, 0, 1)
	if _, err := FromCurve(grid, Curve{{X: 0.5, Y: 0.5}}, Zero); !errors.Is(err, ErrEmptyCurve) {
		t.Errorf("expected ErrEmptyCurve, got %v", err)
	}
}

func TestCurve_Ring(t *testing.T) {
	c := Circle(5, 1)
	if c.Next(4) != 0 || c.Prev(0) != 4 || c.Next(1) != 2 || c.Prev(3) != 2 {
		t.Error("ring neighbours do not wrap")
	}
}

func TestCurve_Nearest(t *testing.T) {
	c := Circle(360, 1)

	for _, deg := range []int{0, 7, 91, 359} {
		th := float64(deg) * math.Pi / 180
		x := geom.Vec{X: 1.3 * math.Cos(th), Y: 1.3 * math.Sin(th)}
		if got := c.Nearest(x); got != deg {
			t.Errorf("Nearest at %d deg = %d", deg, got)
		}
	}
}

func TestCurve_Foot(t *testing.T) {
	c := Circle(1000, 1)
	x := geom.Vec{X: 0, Y: 1.5}

	foot, d := c.Foot(x)
	if math.Abs(d-0.5) > 1e-4 {
		t.Errorf("distance = %v, want 0.5", d)
	}
	if geom.Dist(foot, geom.Vec{X: 0, Y: 1}) > 1e-4 {
		t.Errorf("foot = %v, want (0,1)", foot)
	}
}

func TestReadWriteCurve(t *testing.T) {
	c := Circle(16, 2)

	var buf bytes.Buffer
	if err := WriteCurve(&buf, c); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCurve(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(c) {
		t.Fatalf("read %d points, want %d", len(got), len(c))
	}
	for k := range c {
		if geom.Dist(got[k], c[k]) > 1e-10 {
			t.Errorf("point %d = %v, want %v", k, got[k], c[k])
		}
	}

	path := filepath.Join(t.TempDir(), "circle.txt")
	if err := SaveCurve(path, c); err != nil {
		t.Fatal(err)
	}
	if loaded, err := LoadCurve(path); err != nil || len(loaded) != 16 {
		t.Errorf("LoadCurve = %d points, %v", len(loaded), err)
	}
}

func TestReadCurve_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"one column", "1.0\n2.0\n", ErrBadCurveLine},
		{"not a number", "1.0 abc\n", ErrBadCurveLine},
		{"single point", "# header\n1.0 2.0\n\n", ErrEmptyCurve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCurve(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLinearized_ExactForLinearField(t *testing.T) {
	f := physics.NewLinear()
	init, err := Linearized(f, f.Attractor())
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []geom.Vec{{X: 0.1, Y: 0}, {X: -0.3, Y: 0.7}, {X: 0.9, Y: -0.9}} {
		if got, want := init(p), f.Potential(p); math.Abs(got-want) > 1e-9 {
			t.Errorf("init(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestQuadraticForm(t *testing.T) {
	// b = -x: Sigma = I/2, Q = I
	q, err := QuadraticForm(geom.Mat2{A11: -1, A22: -1})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(q.A11-1) > 1e-12 || math.Abs(q.A22-1) > 1e-12 || math.Abs(q.A12) > 1e-12 {
		t.Errorf("Q = %+v, want identity", q)
	}

	if _, err := QuadraticForm(geom.Mat2{A11: 1, A22: -1}); !errors.Is(err, ErrNotStable) {
		t.Errorf("saddle: expected ErrNotStable, got %v", err)
	}
}

func TestCurveDistance_Cycle(t *testing.T) {
	f := physics.NewCycle()
	init := CurveDistance(f, Circle(2000, 1))

	for _, r := range []float64{0.95, 1.02, 1.1} {
		x := geom.Vec{X: r * math.Cos(0.3), Y: r * math.Sin(0.3)}
		want := f.Potential(x)
		if got := init(x); math.Abs(got-want) > 1e-4 {
			t.Errorf("r=%v: init = %v, want %v", r, got, want)
		}
	}
}

func TestCurveDistance_UnitCircleClosedForm(t *testing.T) {
	init := CurveDistance(physics.NewCycle(), Circle(4000, 1))

	if got := init(geom.Vec{X: 1, Y: 0}); got != 0 {
		t.Errorf("on a curve vertex: init = %v, want 0", got)
	}
	for _, th := range []float64{0, 0.7, 2.1, 4.4} {
		for _, r := range []float64{0.9, 0.97, 0.999, 1.001, 1.05, 1.2} {
			x := geom.Vec{X: r * math.Cos(th), Y: r * math.Sin(th)}
			want := 0.5 * (r*r - 1) * (r*r - 1)
			if got := init(x); math.Abs(got-want) > 1e-3*want+1e-9 {
				t.Errorf("r=%v th=%v: init = %v, want %v", r, th, got, want)
			}
		}
	}
}
