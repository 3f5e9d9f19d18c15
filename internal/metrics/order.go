package metrics

import (
	"math"

	"github.com/san-kum/qpot/internal/dynamo"
)

// OrderViolations counts accepted values that fall more than tolerance below
// the largest value accepted before them.
type OrderViolations struct {
	tolerance  float64
	high       float64
	violations int
	samples    int
}

func NewOrderViolations(tolerance float64) *OrderViolations {
	return &OrderViolations{tolerance: tolerance, high: math.Inf(-1)}
}

func (o *OrderViolations) Name() string { return "order_violations" }

func (o *OrderViolations) Observe(a dynamo.Acceptance) {
	o.samples++
	if a.Value < o.high-o.tolerance {
		o.violations++
	}
	if a.Value > o.high {
		o.high = a.Value
	}
}

func (o *OrderViolations) Value() float64 { return float64(o.violations) }

func (o *OrderViolations) Reset() {
	o.high = math.Inf(-1)
	o.violations = 0
	o.samples = 0
}

// MaxDrop is the largest amount by which an accepted value fell below the
// largest value accepted before it. Zero for a perfectly ordered run.
type MaxDrop struct {
	high float64
	drop float64
}

func NewMaxDrop() *MaxDrop { return &MaxDrop{high: math.Inf(-1)} }

func (m *MaxDrop) Name() string { return "max_drop" }

func (m *MaxDrop) Observe(a dynamo.Acceptance) {
	if d := m.high - a.Value; d > m.drop {
		m.drop = d
	}
	if a.Value > m.high {
		m.high = a.Value
	}
}

func (m *MaxDrop) Value() float64 { return m.drop }

func (m *MaxDrop) Reset() {
	m.high = math.Inf(-1)
	m.drop = 0
}

// Default returns the metrics attached to every solve.
func Default() []dynamo.Metric {
	return []dynamo.Metric{
		NewAcceptCount(),
		NewMaxAccepted(),
		NewOrderViolations(0),
		NewMaxDrop(),
		NewTwoPointShare(),
	}
}
