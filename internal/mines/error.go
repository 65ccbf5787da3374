package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidDensity    = errors.New("mine density must be within [0, 1]")
	ErrOutOfBounds       = errors.New("cell out of bounds")
)

func outOfBounds(x, y, w, h int) error {
	return fmt.Errorf("%w: (%d, %d) not in %dx%d board", ErrOutOfBounds, x, y, w, h)
}
