package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
)

// rotation is x' = y, y' = -x.
var rotation = dynamo.FieldFunc(func(x geom.Vec) geom.Vec {
	return geom.Vec{X: x.Y, Y: -x.X}
})

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := geom.Vec{X: 1, Y: 0}
	dt := 0.01
	steps := 100
	for i := 0; i < steps; i++ {
		x = integ.Step(rotation, x, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedY := -math.Sin(float64(steps) * dt)

	if math.Abs(x.X-expectedX) > 1e-8 {
		t.Errorf("x error too large: got %.10f, expected %.10f", x.X, expectedX)
	}
	if math.Abs(x.Y-expectedY) > 1e-8 {
		t.Errorf("y error too large: got %.10f, expected %.10f", x.Y, expectedY)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	decay := dynamo.FieldFunc(func(x geom.Vec) geom.Vec { return x.Scale(-1) })

	errAt := func(dt float64) float64 {
		x := Advance(NewEuler(), decay, geom.Vec{X: 1}, 1, dt)
		return math.Abs(x.X - math.Exp(-1))
	}

	e1, e2 := errAt(0.01), errAt(0.005)
	ratio := e1 / e2
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("halving dt should halve the error, ratio %.3f", ratio)
	}
}

func TestTrajectory(t *testing.T) {
	pts := Trajectory(NewRK4(), rotation, geom.Vec{X: 1}, 0.01, 50)
	if len(pts) != 51 {
		t.Fatalf("expected 51 points, got %d", len(pts))
	}
	if pts[0] != (geom.Vec{X: 1}) {
		t.Errorf("trajectory must start at x0, got %v", pts[0])
	}
	for i, p := range pts {
		if math.Abs(p.Norm()-1) > 1e-9 {
			t.Fatalf("point %d left the unit circle: |x| = %v", i, p.Norm())
		}
	}
}

func TestTrajectoryStopsOnBlowUp(t *testing.T) {
	blowUp := dynamo.FieldFunc(func(x geom.Vec) geom.Vec {
		return geom.Vec{X: x.X * x.X * 1e300}
	})
	pts := Trajectory(NewEuler(), blowUp, geom.Vec{X: 1e10}, 1, 10)
	if len(pts) >= 11 {
		t.Errorf("expected early stop, got %d points", len(pts))
	}
	for _, p := range pts {
		if !p.IsValid() {
			t.Errorf("non-finite point %v kept", p)
		}
	}
}
