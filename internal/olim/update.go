package olim

import (
	"github.com/san-kum/qpot/internal/dynamo"
	"github.com/san-kum/qpot/internal/geom"
	"github.com/san-kum/qpot/internal/rootfind"
)

// nearZeroDrift is the drift magnitude below which the interpolated drift is
// treated as vanishing in the stationarity residual.
const nearZeroDrift = 1e-12

// Segment is a two-point update candidate: the target X is reached from the
// point S*X0 + (1-S)*X1 on the segment between two accepted points with
// values U0 and U1.
type Segment struct {
	X0, X1 geom.Vec
	U0, U1 float64
	X      geom.Vec

	// drift at the midpoints of X0-X and X1-X
	b0, b1 geom.Vec
}

func NewSegment(f dynamo.Field, x0, x1 geom.Vec, u0, u1 float64, x geom.Vec) Segment {
	return Segment{
		X0: x0, X1: x1,
		U0: u0, U1: u1,
		X:  x,
		b0: f.Drift(geom.Midpoint(x0, x)),
		b1: f.Drift(geom.Midpoint(x1, x)),
	}
}

// Cost is the tentative value at X through the segment point with weight s.
// Cost(f, 1) is the one-point update from X0 and Cost(f, 0) from X1.
func (sg Segment) Cost(f dynamo.Field, s float64) float64 {
	xs := geom.LinComb(sg.X0, sg.X1, s, 1-s)
	return s*sg.U0 + (1-s)*sg.U1 + Action(f, xs, sg.X)
}

// Residual is the derivative of the cost in s with the drift interpolated
// linearly between the two endpoint midpoints. The distance from X to the
// segment is assumed non-zero.
func (sg Segment) Residual(s float64) float64 {
	xs := geom.LinComb(sg.X0, sg.X1, s, 1-s)
	d := sg.X.Sub(xs)
	bs := geom.LinComb(sg.b0, sg.b1, s, 1-s)
	ls := d.Norm()
	lbs := bs.Norm()
	dx := sg.X1.Sub(sg.X0)
	db := sg.b0.Sub(sg.b1)

	r := sg.U0 - sg.U1 + d.Dot(dx)*lbs/ls - dx.Dot(bs) - db.Dot(d)
	if lbs > nearZeroDrift {
		r += bs.Dot(db) * ls / lbs
	}
	return r
}

// Minimize solves Residual(s) = 0 on [0, 1] and returns the cost there.
// rootfind.ErrNotBracketed is returned when the residual does not change sign.
func (sg Segment) Minimize(f dynamo.Field, opts rootfind.Options) (value, s float64, err error) {
	root, err := rootfind.Hybrid(sg.Residual, 0, 1, opts)
	if err != nil {
		return Infinity, 0, err
	}
	return sg.Cost(f, root.S), root.S, nil
}

func (s *Solver) onePoint(target, pred int) float64 {
	return s.values[pred] + Action(s.field, s.grid.Point(pred), s.grid.Point(target))
}

// tryOnePoint lowers the value of target through pred if that improves it.
func (s *Solver) tryOnePoint(target, pred int) {
	if v := s.onePoint(target, pred); v < s.values[target] {
		s.values[target] = v
		s.prov[target] = Provenance{Kind: OnePoint, Ind0: pred, Ind1: -1}
		s.summary.OnePointUpdates++
	}
}

// tryTwoPoint lowers the value of target through the segment p0-p1 if that
// improves it. Unbracketed residuals skip the update.
func (s *Solver) tryTwoPoint(target, p0, p1 int) {
	sg := NewSegment(s.field, s.grid.Point(p0), s.grid.Point(p1), s.values[p0], s.values[p1], s.grid.Point(target))
	v, w, err := sg.Minimize(s.field, s.opts.Root)
	if err != nil {
		s.summary.NotBracketed++
		return
	}
	if v < s.values[target] {
		s.values[target] = v
		s.prov[target] = Provenance{Kind: TwoPoint, Ind0: p0, Ind1: p1, S: w}
		s.summary.TwoPointUpdates++
	}
}
