// Package shape defines the axis-aligned rectangles placed on a screen.
//
// A Shape is validated once at construction: its width and height are
// positive and at most MaxDimension, and its color is either empty or one of
// the palette names. Only the color can change afterwards, through SetColor,
// which applies the same validation. Shapes are plain values and can be
// copied freely.
package shape

import (
	"fmt"
	"slices"
)

// MaxDimension is the largest accepted width or height.
const MaxDimension = 1000.0

// palette lists the accepted color names in display order.
var palette = []string{
	"red", "green", "blue", "yellow", "black", "white", "purple", "orange",
}

// Palette returns a copy of the accepted color names.
func Palette() []string {
	return slices.Clone(palette)
}

// ValidColor reports whether color may be assigned to a shape.
// The empty string means "no color" and is always valid.
func ValidColor(color string) bool {
	return color == "" || slices.Contains(palette, color)
}

// Shape is an axis-aligned rectangle anchored at its top-left corner.
type Shape struct {
	x, y          float64
	width, height float64
	color         string
	exclusive     bool
}

// Option configures optional Shape attributes.
type Option func(*Shape)

// WithColor sets the fill color.
func WithColor(color string) Option {
	return func(s *Shape) {
		s.color = color
	}
}

// WithExclusive marks the shape as one that must not overlap any shape
// already on the screen when it is inserted.
func WithExclusive() Option {
	return func(s *Shape) {
		s.exclusive = true
	}
}

// New validates and returns a Shape. Dimensions are checked before color,
// so a shape with both a bad size and a bad color reports the size error.
func New(x, y, width, height float64, opts ...Option) (Shape, error) {
	s := Shape{x: x, y: y}
	for _, opt := range opts {
		opt(&s)
	}

	if err := validateDimensions(width, height); err != nil {
		return Shape{}, err
	}
	if err := validateColor(s.color); err != nil {
		return Shape{}, err
	}

	s.width = width
	s.height = height
	return s, nil
}

func validateDimensions(width, height float64) error {
	// Negated comparisons so NaN is rejected too.
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("%w: width and height must be positive, got %gx%g", ErrInvalidDimension, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: width and height must not exceed %g, got %gx%g", ErrDimensionOutOfRange, MaxDimension, width, height)
	}
	return nil
}

func validateColor(color string) error {
	if !ValidColor(color) {
		return fmt.Errorf("%w: %q is not one of %v", ErrInvalidColor, color, palette)
	}
	return nil
}

// SetColor replaces the color. On error the current color is kept.
func (s *Shape) SetColor(color string) error {
	if err := validateColor(color); err != nil {
		return err
	}
	s.color = color
	return nil
}

func (s Shape) X() float64      { return s.x }
func (s Shape) Y() float64      { return s.y }
func (s Shape) Width() float64  { return s.width }
func (s Shape) Height() float64 { return s.height }
func (s Shape) Color() string   { return s.color }

// Exclusive reports whether the shape was created with WithExclusive.
func (s Shape) Exclusive() bool { return s.exclusive }

// MaxX returns the right edge.
func (s Shape) MaxX() float64 { return s.x + s.width }

// MaxY returns the bottom edge.
func (s Shape) MaxY() float64 { return s.y + s.height }

// Overlaps reports whether the two rectangles share a region of positive
// area. Rectangles that only touch along an edge or at a corner do not
// overlap.
func (s Shape) Overlaps(other Shape) bool {
	if s.MaxX() <= other.x || other.MaxX() <= s.x {
		return false
	}
	if s.MaxY() <= other.y || other.MaxY() <= s.y {
		return false
	}
	return true
}

// String formats the shape for diagnostics.
func (s Shape) String() string {
	color := s.color
	if color == "" {
		color = "none"
	}
	return fmt.Sprintf("rect(x=%g y=%g w=%g h=%g color=%s exclusive=%t)", s.x, s.y, s.width, s.height, color, s.exclusive)
}
