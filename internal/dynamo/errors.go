package dynamo

import (
	"errors"
	"fmt"

	"github.com/san-kum/qpot/internal/geom"
)

// Domain errors for field evaluation and parameter handling.
var (
	// ErrInvalidDrift indicates the drift evaluated to NaN or Inf.
	ErrInvalidDrift = errors.New("dynamo: invalid drift (NaN or Inf detected)")

	// ErrUnknownParam indicates SetParam was called with a name the field
	// does not define.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrContextCanceled indicates a solve was interrupted.
	ErrContextCanceled = errors.New("dynamo: solve canceled by context")

	// ErrNoAttractor indicates a seed needs a point attractor the field
	// does not provide.
	ErrNoAttractor = errors.New("dynamo: field has no point attractor")
)

// FieldError wraps an error with the field and point it occurred at.
type FieldError struct {
	Field   string
	Point   geom.Vec
	Wrapped error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s at (%g, %g): %v", e.Field, e.Point.X, e.Point.Y, e.Wrapped)
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}

// CheckDrift evaluates f at p and reports a FieldError if the result is not
// finite.
func CheckDrift(name string, f Field, p geom.Vec) error {
	if b := f.Drift(p); !b.IsValid() {
		return &FieldError{Field: name, Point: p, Wrapped: ErrInvalidDrift}
	}
	return nil
}
