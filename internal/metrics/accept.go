// Package metrics provides dynamo.Metric observers folded over the sequence of
// points a solve accepts.
package metrics

import (
	"math"

	"github.com/san-kum/qpot/internal/dynamo"
)

// AcceptCount counts accepted points.
type AcceptCount struct {
	n int
}

func NewAcceptCount() *AcceptCount { return &AcceptCount{} }

func (c *AcceptCount) Name() string { return "accepted" }

func (c *AcceptCount) Observe(dynamo.Acceptance) { c.n++ }

func (c *AcceptCount) Value() float64 { return float64(c.n) }

func (c *AcceptCount) Reset() { c.n = 0 }

// MaxAccepted tracks the largest accepted value, the level the front reached.
type MaxAccepted struct {
	max     float64
	samples int
}

func NewMaxAccepted() *MaxAccepted { return &MaxAccepted{max: math.Inf(-1)} }

func (m *MaxAccepted) Name() string { return "max_value" }

func (m *MaxAccepted) Observe(a dynamo.Acceptance) {
	m.samples++
	if a.Value > m.max {
		m.max = a.Value
	}
}

func (m *MaxAccepted) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.max
}

func (m *MaxAccepted) Reset() {
	m.max = math.Inf(-1)
	m.samples = 0
}

// TwoPointShare is the fraction of accepted points whose value came from a
// two-point update.
type TwoPointShare struct {
	twoPoint int
	samples  int
}

func NewTwoPointShare() *TwoPointShare { return &TwoPointShare{} }

func (s *TwoPointShare) Name() string { return "two_point_share" }

func (s *TwoPointShare) Observe(a dynamo.Acceptance) {
	s.samples++
	if a.TwoPoint {
		s.twoPoint++
	}
}

func (s *TwoPointShare) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.twoPoint) / float64(s.samples)
}

func (s *TwoPointShare) Reset() {
	s.twoPoint = 0
	s.samples = 0
}
