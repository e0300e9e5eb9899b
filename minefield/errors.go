package minefield

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is returned when a board cannot be built from
	// the requested dimensions and mine count.
	ErrInvalidConfiguration = errors.New("invalid minefield configuration")

	// ErrOutOfBounds is returned for coordinates outside the grid. Callers are
	// expected to validate clicks first, so this indicates a bug upstream.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
)
