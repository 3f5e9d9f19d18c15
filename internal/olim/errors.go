package olim

import "errors"

var (
	ErrEmptySeedSet     = errors.New("olim: seed set is empty")
	ErrSeedOutOfRange   = errors.New("olim: seed index outside the grid")
	ErrInvalidSeedValue = errors.New("olim: seed value must be finite, non-negative and below Infinity")
	ErrDuplicateSeed    = errors.New("olim: seed index given twice")
	ErrAlreadySeeded    = errors.New("olim: solver already seeded")
	ErrNotSeeded        = errors.New("olim: Run called before Seed")
	ErrInvalidOptions   = errors.New("olim: invalid options")
	ErrNilField         = errors.New("olim: drift field is nil")
)
