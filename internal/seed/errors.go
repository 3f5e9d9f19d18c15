package seed

import "errors"

var (
	ErrOutsideGrid     = errors.New("seed: attractor cell outside the grid")
	ErrEmptyCurve      = errors.New("seed: curve needs at least 2 points")
	ErrNotStable       = errors.New("seed: linearisation is not asymptotically stable")
	ErrBadCurveLine    = errors.New("seed: malformed curve line")
	ErrNoCycle         = errors.New("seed: no limit cycle found")
	ErrBadTraceOptions = errors.New("seed: invalid trace options")
)
