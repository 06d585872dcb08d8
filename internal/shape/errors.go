package shape

import "errors"

var (
	// ErrInvalidDimension indicates a width or height that is not positive.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrDimensionOutOfRange indicates a width or height above MaxDimension.
	ErrDimensionOutOfRange = errors.New("dimension out of range")

	// ErrInvalidColor indicates a color outside the palette.
	ErrInvalidColor = errors.New("invalid color")
)
