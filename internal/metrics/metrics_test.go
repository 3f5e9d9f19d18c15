package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/qpot/internal/dynamo"
)

func feed(m dynamo.Metric, values ...float64) {
	for i, v := range values {
		m.Observe(dynamo.Acceptance{Step: i + 1, Index: i, Value: v, TwoPoint: i%2 == 1})
	}
}

func TestOrderViolations(t *testing.T) {
	tests := []struct {
		name      string
		tolerance float64
		values    []float64
		want      float64
	}{
		{"sorted", 0, []float64{0, 0.1, 0.1, 0.5}, 0},
		{"one drop", 0, []float64{0, 0.5, 0.4, 0.6}, 1},
		{"drop below high water", 0, []float64{0, 0.5, 0.4, 0.45}, 2},
		{"within tolerance", 0.2, []float64{0, 0.5, 0.4, 0.45}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewOrderViolations(tt.tolerance)
			feed(m, tt.values...)
			if m.Value() != tt.want {
				t.Errorf("violations = %v, want %v", m.Value(), tt.want)
			}
		})
	}
}

func TestMaxDrop(t *testing.T) {
	m := NewMaxDrop()
	feed(m, 0, 1, 0.7, 2, 1.9)
	if math.Abs(m.Value()-0.3) > 1e-12 {
		t.Errorf("max drop = %v, want 0.3", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestCountersAndShare(t *testing.T) {
	count := NewAcceptCount()
	high := NewMaxAccepted()
	share := NewTwoPointShare()
	for _, m := range []dynamo.Metric{count, high, share} {
		feed(m, 0.1, 0.3, 0.2, 0.4)
	}

	if count.Value() != 4 {
		t.Errorf("count = %v", count.Value())
	}
	if high.Value() != 0.4 {
		t.Errorf("max = %v", high.Value())
	}
	if share.Value() != 0.5 {
		t.Errorf("two-point share = %v", share.Value())
	}

	for _, m := range []dynamo.Metric{count, high, share} {
		m.Reset()
		if m.Value() != 0 {
			t.Errorf("%s not reset", m.Name())
		}
	}
}

func TestDefault_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
