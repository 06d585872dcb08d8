package screen

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/rectscreen/internal/shape"
)

var (
	// ErrBoundsViolation indicates a shape that does not fit inside the screen.
	ErrBoundsViolation = errors.New("shape is out of screen bounds")

	// ErrOverlapViolation indicates an exclusive shape that intersects a shape
	// already on the screen.
	ErrOverlapViolation = errors.New("exclusive shape overlaps an existing shape")

	// ErrMalformedRecord indicates a batch record that could not be parsed or
	// that describes an invalid shape.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrSourceUnavailable indicates a batch source that could not be opened
	// or read.
	ErrSourceUnavailable = errors.New("source unavailable")
)

// UnknownLine is reported as RecordError.Line when a batch fails after
// parsing, in the bounds pass over all loaded shapes.
const UnknownLine = -1

// PlacementError is returned by Insert when a shape cannot be placed.
// Shape is a copy of the rejected shape; it does not alias screen state.
type PlacementError struct {
	Err   error
	Shape shape.Shape
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%v: %v", e.Err, e.Shape)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}

// RecordError reports a batch record failure with its source and 1-based
// line number. errors.Is matches both ErrMalformedRecord and the underlying
// cause.
type RecordError struct {
	Source string
	Line   int
	Err    error
}

func (e *RecordError) Error() string {
	if e.Line == UnknownLine {
		return fmt.Sprintf("%v in %s: %v", ErrMalformedRecord, e.Source, e.Err)
	}
	return fmt.Sprintf("%v in %s at line %d: %v", ErrMalformedRecord, e.Source, e.Line, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}
