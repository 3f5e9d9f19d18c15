package olim

import (
	"fmt"
	"time"

	"github.com/san-kum/qpot/internal/mesh"
	"github.com/san-kum/qpot/internal/rootfind"
)

// Infinity is the value of points the front has not reached.
const Infinity = 1.0e6

const (
	DefaultK      = 22
	DefaultMargin = 2
)

// Status of a grid point. The order is meaningful: a point only ever moves to
// a larger status.
type Status uint8

const (
	Unknown Status = iota
	Considered
	AcceptedFront
	AcceptedInterior
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Considered:
		return "considered"
	case AcceptedFront:
		return "accepted-front"
	case AcceptedInterior:
		return "accepted"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

func (s Status) Accepted() bool { return s >= AcceptedFront }

// Kind tells which update produced a point's value. The numeric values are
// the tags written to stype files.
type Kind int8

const (
	Unreached Kind = -1
	Seed      Kind = 0
	OnePoint  Kind = 1
	TwoPoint  Kind = 2
)

func (k Kind) String() string {
	switch k {
	case Unreached:
		return "unreached"
	case Seed:
		return "seed"
	case OnePoint:
		return "one-point"
	case TwoPoint:
		return "two-point"
	}
	return fmt.Sprintf("kind(%d)", int8(k))
}

// Provenance records the update that produced a value. For OnePoint only
// Ind0 is meaningful. For TwoPoint the minimiser on the segment is
// S*x(Ind0) + (1-S)*x(Ind1).
type Provenance struct {
	Kind Kind
	Ind0 int
	Ind1 int
	S    float64
}

type Termination int

const (
	HeapExhausted Termination = iota
	BoundaryReached
	UnreachableReached
	Canceled
)

func (t Termination) String() string {
	switch t {
	case HeapExhausted:
		return "heap-exhausted"
	case BoundaryReached:
		return "boundary-reached"
	case UnreachableReached:
		return "unreachable-reached"
	case Canceled:
		return "canceled"
	}
	return fmt.Sprintf("termination(%d)", int(t))
}

type Options struct {
	// K is the stencil radius in grid cells.
	K int
	// Margin stops the run once a point within Margin cells of the
	// boundary is accepted.
	Margin int
	// Root configures the two-point stationarity solver.
	Root rootfind.Options
	// CheckEvery is the number of acceptances between context checks.
	CheckEvery int
}

func DefaultOptions() Options {
	return Options{
		K:          DefaultK,
		Margin:     DefaultMargin,
		Root:       rootfind.DefaultOptions(),
		CheckEvery: 1024,
	}
}

func (o Options) validate() error {
	if o.K < 1 {
		return fmt.Errorf("%w: stencil radius %d", ErrInvalidOptions, o.K)
	}
	if o.Margin < 0 {
		return fmt.Errorf("%w: margin %d", ErrInvalidOptions, o.Margin)
	}
	return nil
}

type Summary struct {
	Accepted    int
	Termination Termination
	// Last is the grid index accepted last and LastValue its value.
	Last      int
	LastValue float64

	OnePointUpdates int
	TwoPointUpdates int
	// NotBracketed counts two-point updates skipped because the
	// stationarity residual had the same sign at both ends.
	NotBracketed int
	Elapsed      time.Duration
}

type Result struct {
	Grid    *mesh.Grid
	Summary Summary
	Metrics map[string]float64

	values []float64
	status []Status
	prov   []Provenance
}

// Values returns a row-major copy of the solution with Infinity at every
// point that was not accepted.
func (r *Result) Values() []float64 {
	out := make([]float64, len(r.values))
	for i, v := range r.values {
		if r.status[i].Accepted() {
			out[i] = v
		} else {
			out[i] = Infinity
		}
	}
	return out
}

// Tentative returns a copy of the raw value array, including the tentative
// values of points still Considered.
func (r *Result) Tentative() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

func (r *Result) Status() []Status {
	out := make([]Status, len(r.status))
	copy(out, r.status)
	return out
}

func (r *Result) Provenance() []Provenance {
	out := make([]Provenance, len(r.prov))
	copy(out, r.prov)
	return out
}

// Kinds returns the provenance tag of every point, Unreached for points never
// assigned a value.
func (r *Result) Kinds() []Kind {
	out := make([]Kind, len(r.prov))
	for i, p := range r.prov {
		out[i] = p.Kind
	}
	return out
}

func (r *Result) At(i, j int) (float64, Status) {
	idx := r.Grid.Index(i, j)
	return r.values[idx], r.status[idx]
}
