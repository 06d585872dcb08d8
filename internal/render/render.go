// Package render draws a screen as SVG or PNG.
//
// Both formats paint the same scene: a light grey background covering the
// whole screen, then every shape in insertion order. A shape with a color is
// filled with it; a shape without one is drawn as a black outline.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo/float"
	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/danieljhkim/rectscreen/internal/shape"
)

// Background is the color painted behind all shapes.
const Background = "lightgrey"

// Decimals is the number of fractional digits written for SVG coordinates.
const Decimals = 6

// MaxPixels bounds the area of a PNG export.
const MaxPixels = 1 << 26

// ErrRasterSize indicates a scene that cannot be rasterized at its size.
var ErrRasterSize = errors.New("scene size cannot be rasterized")

// Scene is what gets rendered. *screen.Screen implements it.
type Scene interface {
	Width() float64
	Height() float64
	Shapes() []shape.Shape
}

type options struct {
	description string
}

// Option configures a render call.
type Option func(*options)

// WithDescription adds a <desc> element to SVG output. PNG output ignores it.
func WithDescription(text string) Option {
	return func(o *options) {
		o.description = text
	}
}

// SVG writes sc as a standalone SVG document and returns the first write
// error, if any.
func SVG(w io.Writer, sc Scene, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ew := &errWriter{w: w}
	doc := svg.New(ew)
	doc.Decimals = Decimals
	doc.Start(sc.Width(), sc.Height())
	if o.description != "" {
		doc.Desc(o.description)
	}
	doc.Rect(0, 0, sc.Width(), sc.Height(), `fill="`+Background+`"`)
	for _, s := range sc.Shapes() {
		DrawShape(doc, s)
	}
	doc.End()
	return ew.err
}

// DrawShape writes the <rect> element for one shape.
func DrawShape(doc *svg.SVG, s shape.Shape) {
	if s.Color() != "" {
		doc.Rect(s.X(), s.Y(), s.Width(), s.Height(), `fill="`+s.Color()+`"`)
		return
	}
	doc.Rect(s.X(), s.Y(), s.Width(), s.Height(), `fill="none"`, `stroke="black"`)
}

// PNG rasterizes sc at one pixel per unit, rounding the image size up.
// Scenes larger than MaxPixels, or with a size that is not finite and
// positive, fail with ErrRasterSize.
func PNG(w io.Writer, sc Scene) error {
	width, height, err := rasterSize(sc.Width(), sc.Height())
	if err != nil {
		return err
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(colornames.Lightgrey)
	dc.Clear()

	for _, s := range sc.Shapes() {
		dc.DrawRectangle(s.X(), s.Y(), s.Width(), s.Height())
		if c, ok := colornames.Map[s.Color()]; ok {
			dc.SetColor(c)
			dc.Fill()
			continue
		}
		dc.SetColor(color.Black)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	return dc.EncodePNG(w)
}

func rasterSize(w, h float64) (int, int, error) {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return 0, 0, fmt.Errorf("%w: %gx%g", ErrRasterSize, w, h)
	}
	cw, ch := math.Ceil(w), math.Ceil(h)
	if cw*ch > MaxPixels {
		return 0, 0, fmt.Errorf("%w: %gx%g exceeds %d pixels", ErrRasterSize, w, h, MaxPixels)
	}
	return int(cw), int(ch), nil
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
