// Package screen manages a bounded surface holding an ordered list of shapes.
//
// A Screen only ever grows. Shapes enter through one of three paths:
//   - Insert: validates placement and returns a *PlacementError on failure.
//   - TryInsert: same validation, but reports failure as false plus a
//     message available from LastError.
//   - LoadBatch / LoadFrom: parses a text source and appends every record,
//     or none of them if any record fails.
//
// Every path validates before it mutates, so a failed call leaves the
// screen exactly as it was.
//
// A Screen is not safe for concurrent use.
package screen

import (
	"log/slog"
	"slices"

	"github.com/danieljhkim/rectscreen/internal/shape"
)

// DefaultSize replaces a non-positive width or height passed to New.
const DefaultSize = 100.0

// Screen is a width x height surface with its origin at the top-left corner.
type Screen struct {
	width   float64
	height  float64
	shapes  []shape.Shape
	lastErr string
}

// New creates an empty screen. A width or height that is not positive is
// replaced by DefaultSize.
func New(width, height float64) *Screen {
	if !(width > 0) {
		width = DefaultSize
	}
	if !(height > 0) {
		height = DefaultSize
	}
	return &Screen{width: width, height: height}
}

// Width returns the screen width.
func (s *Screen) Width() float64 { return s.width }

// Height returns the screen height.
func (s *Screen) Height() float64 { return s.height }

// Len returns the number of shapes on the screen.
func (s *Screen) Len() int { return len(s.shapes) }

// Shapes returns a copy of the shapes in insertion order.
func (s *Screen) Shapes() []shape.Shape {
	return slices.Clone(s.shapes)
}

// LastError returns the message recorded by the most recent failed
// placement, or "" if the most recent placement succeeded or none has
// happened yet.
func (s *Screen) LastError() string {
	return s.lastErr
}

// Insert appends r if it fits inside the screen and, for an exclusive
// shape, does not overlap any shape already present. On failure it returns
// a *PlacementError wrapping ErrBoundsViolation or ErrOverlapViolation and
// leaves the shape list untouched.
func (s *Screen) Insert(r shape.Shape) error {
	if err := s.checkPlacement(r); err != nil {
		return err
	}
	s.shapes = append(s.shapes, r)
	Logger().Debug("shape inserted", slog.String("shape", r.String()), slog.Int("count", len(s.shapes)))
	return nil
}

// TryInsert is Insert without an error return. It reports whether r was
// added; on false, LastError describes why.
func (s *Screen) TryInsert(r shape.Shape) bool {
	if err := s.checkPlacement(r); err != nil {
		return false
	}
	s.shapes = append(s.shapes, r)
	Logger().Debug("shape inserted", slog.String("shape", r.String()), slog.Int("count", len(s.shapes)))
	return true
}

// checkPlacement runs the bounds and overlap checks shared by Insert and
// TryInsert. It records the outcome in lastErr.
func (s *Screen) checkPlacement(r shape.Shape) error {
	var cause error
	switch {
	case !s.contains(r):
		cause = ErrBoundsViolation
	case r.Exclusive() && s.overlapsAny(r):
		cause = ErrOverlapViolation
	}

	if cause != nil {
		s.lastErr = cause.Error()
		Logger().Debug("shape rejected", slog.String("shape", r.String()), slog.String("reason", s.lastErr))
		return &PlacementError{Err: cause, Shape: r}
	}

	s.lastErr = ""
	return nil
}

// contains reports whether r lies within [0,width] x [0,height]. Every
// comparison involving NaN is false, so NaN coordinates never fit.
func (s *Screen) contains(r shape.Shape) bool {
	return r.X() >= 0 && r.Y() >= 0 && r.MaxX() <= s.width && r.MaxY() <= s.height
}

// overlapsAny scans every shape on the screen. Only the incoming shape's
// exclusivity matters; an exclusive shape already on the screen does not
// stop a later non-exclusive shape from covering it.
func (s *Screen) overlapsAny(r shape.Shape) bool {
	for _, existing := range s.shapes {
		if r.Overlaps(existing) {
			return true
		}
	}
	return false
}
