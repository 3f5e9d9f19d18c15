package experiment

import "errors"

var (
	ErrUnknownField = errors.New("experiment: unknown field")
	ErrNotSetup     = errors.New("experiment: not set up")
	ErrNoExact      = errors.New("experiment: field has no exact quasi-potential")
)
