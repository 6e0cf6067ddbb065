package seamcarver

import "github.com/pkg/errors"

var (
	// ErrOutOfBounds is returned when a pixel is addressed outside of the grid.
	ErrOutOfBounds = errors.New("pixel out of bounds")

	// ErrInvalidSeam is returned when a seam does not fit the grid it is applied to.
	ErrInvalidSeam = errors.New("invalid seam")

	// ErrInvalidDimensions is returned when a grid is too small for the requested operation.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)
