package olim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/monitoring"
	"github.com/san-kum/qpot/internal/seed"
)

// Solver holds the state of one OLIM-M propagation.
type Solver struct {
	grid    *mesh.Grid
	field   dynamo.Field
	opts    Options
	stencil *Stencil

	values []float64
	status []Status
	prov   []Provenance
	heap   *indexHeap

	metrics   []dynamo.Metric
	observers []dynamo.Observer

	seeded  bool
	done    bool
	summary Summary

	// scratch for the neighbourhood of the point being accepted
	nbuf, fbuf []int
	front      []int
	fresh      []int
	cur        int
}

func New(grid *mesh.Grid, field dynamo.Field, opts Options) (*Solver, error) {
	if field == nil {
		return nil, ErrNilField
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.CheckEvery <= 0 {
		opts.CheckEvery = 1024
	}

	n := grid.Size()
	s := &Solver{
		grid:    grid,
		field:   field,
		opts:    opts,
		stencil: NewStencil(grid, opts.K),
		values:  make([]float64, n),
		status:  make([]Status, n),
		prov:    make([]Provenance, n),
		nbuf:    make([]int, 0, 8),
		fbuf:    make([]int, 0, 8),
		front:   make([]int, 0, 8),
		fresh:   make([]int, 0, 8),
	}
	s.heap = newIndexHeap(n, s.values)
	for i := range s.values {
		s.values[i] = Infinity
		s.prov[i] = Provenance{Kind: Unreached, Ind0: -1, Ind1: -1}
	}
	return s, nil
}

func (s *Solver) AddMetric(m dynamo.Metric) {
	s.metrics = append(s.metrics, m)
}

func (s *Solver) AddObserver(o dynamo.Observer) {
	s.observers = append(s.observers, o)
}

// Seed makes every entry Considered with its given value. The whole set is
// validated before any state changes.
func (s *Solver) Seed(set seed.Set) error {
	if s.seeded {
		return ErrAlreadySeeded
	}
	if len(set) == 0 {
		return ErrEmptySeedSet
	}

	seen := make(map[int]struct{}, len(set))
	for _, e := range set {
		if !s.grid.Valid(e.Index) {
			return fmt.Errorf("%w: %d not in [0, %d)", ErrSeedOutOfRange, e.Index, s.grid.Size())
		}
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) || e.Value < 0 || e.Value >= Infinity {
			return fmt.Errorf("%w: %g at %d", ErrInvalidSeedValue, e.Value, e.Index)
		}
		if _, dup := seen[e.Index]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateSeed, e.Index)
		}
		seen[e.Index] = struct{}{}
	}

	for _, e := range set {
		s.values[e.Index] = e.Value
		s.status[e.Index] = Considered
		s.prov[e.Index] = Provenance{Kind: Seed, Ind0: -1, Ind1: -1}
		s.heap.Push(e.Index)
	}
	s.seeded = true
	return nil
}

// Run propagates the front until the heap empties, the boundary margin is
// reached or the smallest tentative value is unreachable. A canceled context
// stops the run and returns the partial result with the context error.
func (s *Solver) Run(ctx context.Context) (*Result, error) {
	if !s.seeded {
		return nil, ErrNotSeeded
	}
	if s.done {
		return s.result(), nil
	}

	start := time.Now()
	s.summary.Termination = HeapExhausted
	s.summary.Last = -1

	var runErr error
	for s.heap.Len() > 0 {
		if s.summary.Accepted%s.opts.CheckEvery == 0 {
			select {
			case <-ctx.Done():
				runErr = fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
			default:
			}
			if runErr != nil {
				s.summary.Termination = Canceled
				break
			}
		}

		ind := s.heap.Pop()
		s.status[ind] = AcceptedFront
		s.summary.Accepted++
		s.summary.Last = ind
		s.summary.LastValue = s.values[ind]
		s.notify(ind)

		i, j := s.grid.Cell(ind)
		if s.values[ind] >= Infinity-1 {
			s.summary.Termination = UnreachableReached
			break
		}
		if s.grid.NearBoundary(i, j, s.opts.Margin) {
			s.summary.Termination = BoundaryReached
			break
		}

		s.accept(ind)
	}
	s.summary.Elapsed = time.Since(start)
	if runErr == nil {
		s.done = true
	}

	li, lj := -1, -1
	if s.summary.Last >= 0 {
		li, lj = s.grid.Cell(s.summary.Last)
	}
	monitoring.Logf("olim: %d accepted, %s at (%d,%d), g=%.4e, %d one-point, %d two-point, %d unbracketed, %s",
		s.summary.Accepted, s.summary.Termination, li, lj, s.summary.LastValue,
		s.summary.OnePointUpdates, s.summary.TwoPointUpdates, s.summary.NotBracketed, s.summary.Elapsed)

	return s.result(), runErr
}

// accept spreads the newly accepted point ind to the rest of the grid.
func (s *Solver) accept(ind int) {
	s.front = s.front[:0]
	s.fresh = s.fresh[:0]
	for _, n1 := range s.grid.Neighbors(ind, s.nbuf[:0]) {
		switch s.status[n1] {
		case AcceptedFront:
			if s.enclosed(n1) {
				s.status[n1] = AcceptedInterior
			} else {
				s.front = append(s.front, n1)
			}
		case Unknown:
			s.fresh = append(s.fresh, n1)
		}
	}

	s.cur = ind
	i, j := s.grid.Cell(ind)
	s.stencil.Each(i, j, s.relax)

	for _, t := range s.fresh {
		s.admit(t)
	}
}

// enclosed reports whether every neighbour of idx has been accepted.
func (s *Solver) enclosed(idx int) bool {
	for _, n := range s.grid.Neighbors(idx, s.fbuf[:0]) {
		if s.status[n] < AcceptedFront {
			return false
		}
	}
	return true
}

// relax re-estimates a Considered point t from the point just accepted.
func (s *Solver) relax(t int) {
	if s.status[t] != Considered {
		return
	}
	old := s.values[t]
	s.tryOnePoint(t, s.cur)
	for _, a := range s.front {
		s.tryTwoPoint(t, s.cur, a)
	}
	if s.values[t] < old {
		s.heap.Fix(t)
	}
}

// admit makes an Unknown neighbour of the accepted point Considered. Its first
// value is the best one-point update from the accepted front within the
// stencil, refined by two-point updates around that best predecessor.
func (s *Solver) admit(t int) {
	x := s.grid.Point(t)
	gmin, imin := Infinity, s.cur
	i, j := s.grid.Cell(t)
	s.stencil.Each(i, j, func(p int) {
		if s.status[p] != AcceptedFront {
			return
		}
		if g := s.values[p] + Action(s.field, s.grid.Point(p), x); g < gmin {
			gmin, imin = g, p
		}
	})
	s.values[t] = gmin
	s.prov[t] = Provenance{Kind: OnePoint, Ind0: imin, Ind1: -1}
	s.summary.OnePointUpdates++

	for _, n1 := range s.grid.Neighbors(imin, s.nbuf[:0]) {
		if s.status[n1] == AcceptedFront {
			s.tryTwoPoint(t, imin, n1)
		}
	}

	s.status[t] = Considered
	s.heap.Push(t)
}

func (s *Solver) notify(ind int) {
	if len(s.metrics) == 0 && len(s.observers) == 0 {
		return
	}
	a := dynamo.Acceptance{
		Step:     s.summary.Accepted,
		Index:    ind,
		Value:    s.values[ind],
		TwoPoint: s.prov[ind].Kind == TwoPoint,
	}
	for _, m := range s.metrics {
		m.Observe(a)
	}
	for _, o := range s.observers {
		o.OnAccept(a)
	}
}

func (s *Solver) result() *Result {
	r := &Result{
		Grid:    s.grid,
		Summary: s.summary,
		values:  s.values,
		status:  s.status,
		prov:    s.prov,
	}
	if len(s.metrics) > 0 {
		r.Metrics = make(map[string]float64, len(s.metrics))
		for _, m := range s.metrics {
			r.Metrics[m.Name()] = m.Value()
		}
	}
	return r
}

// Grid returns the lattice the solver runs on.
func (s *Solver) Grid() *mesh.Grid { return s.grid }

// Status returns the current status of idx.
func (s *Solver) Status(idx int) Status { return s.status[idx] }

// Value returns the current value of idx, tentative for Considered points.
func (s *Solver) Value(idx int) float64 { return s.values[idx] }

// heapValid exposes the heap invariant to tests.
func (s *Solver) heapValid() bool {
	if !s.heap.valid() {
		return false
	}
	for idx, st := range s.status {
		if (st == Considered) != s.heap.Contains(idx) {
			return false
		}
	}
	return true
}
