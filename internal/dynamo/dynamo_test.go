package dynamo

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/san-kum/qpot/internal/geom"
)

func TestFieldError_Unwrap(t *testing.T) {
	bad := FieldFunc(func(x geom.Vec) geom.Vec { return geom.Vec{X: math.NaN()} })

	err := CheckDrift("bad", bad, geom.Vec{X: 1, Y: 2})
	if !errors.Is(err, ErrInvalidDrift) {
		t.Fatalf("expected ErrInvalidDrift, got %v", err)
	}

	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "bad" || fe.Point != (geom.Vec{X: 1, Y: 2}) {
		t.Errorf("unexpected field error %+v", fe)
	}

	ok := FieldFunc(func(x geom.Vec) geom.Vec { return x })
	if err := CheckDrift("ok", ok, geom.Vec{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNumericJacobian(t *testing.T) {
	f := FieldFunc(func(x geom.Vec) geom.Vec {
		return geom.Vec{X: -2*x.X - 10*x.Y, Y: 20*x.X - x.Y}
	})

	j := JacobianAt(f, geom.Vec{X: 0.3, Y: -0.2})
	want := geom.Mat2{A11: -2, A12: -10, A21: 20, A22: -1}
	for _, pair := range [][2]float64{
		{j.A11, want.A11}, {j.A12, want.A12}, {j.A21, want.A21}, {j.A22, want.A22},
	} {
		if math.Abs(pair[0]-pair[1]) > 1e-6 {
			t.Fatalf("Jacobian = %+v, want %+v", j, want)
		}
	}
}

func TestForEach(t *testing.T) {
	var sum atomic.Int64
	err := ForEach(context.Background(), 10, 3, func(ctx context.Context, i int) error {
		sum.Add(int64(i))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum.Load() != 45 {
		t.Errorf("sum = %d, want 45", sum.Load())
	}
}

func TestForEach_Error(t *testing.T) {
	boom := errors.New("boom")
	err := ForEach(context.Background(), 5, 2, func(ctx context.Context, i int) error {
		if i == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestForEach_FirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	for range 20 {
		err := ForEach(context.Background(), 2, 2, func(ctx context.Context, i int) error {
			if i == 1 {
				return boom
			}
			<-ctx.Done()
			return ctx.Err()
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	}
}

func TestForEach_Empty(t *testing.T) {
	called := false
	err := ForEach(context.Background(), 0, 4, func(ctx context.Context, i int) error {
		called = true
		return nil
	})
	if err != nil || called {
		t.Errorf("err = %v, called = %v", err, called)
	}
}
