package screen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/danieljhkim/rectscreen/internal/fsops"
	"github.com/danieljhkim/rectscreen/internal/shape"
)

// maxLineSize bounds a single batch record line.
const maxLineSize = 1 << 20

type loadOptions struct {
	fs        fsops.FS
	skipBlank bool
}

// LoadOption configures LoadBatch and LoadFrom.
type LoadOption func(*loadOptions)

// WithFS sets the filesystem LoadBatch opens its source from.
func WithFS(fs fsops.FS) LoadOption {
	return func(o *loadOptions) {
		o.fs = fs
	}
}

// WithSkipBlankLines makes whitespace-only lines count toward line numbers
// without being parsed as records. Without it such a line is malformed.
func WithSkipBlankLines() LoadOption {
	return func(o *loadOptions) {
		o.skipBlank = true
	}
}

func newLoadOptions(opts []LoadOption) *loadOptions {
	o := &loadOptions{fs: fsops.NewRealFS()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// LoadBatch opens path and loads it with LoadFrom. A source that cannot be
// opened fails with ErrSourceUnavailable.
func (s *Screen) LoadBatch(path string, opts ...LoadOption) (int, error) {
	o := newLoadOptions(opts)

	rc, err := o.fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %w", ErrSourceUnavailable, path, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	return s.load(path, rc, o)
}

// LoadFrom reads records of the form
//
//	centerX centerY width height [color]
//
// one per line, and appends the described shapes in order. A record without
// a color reuses the last color given earlier in the same source. Records
// are loaded all-or-nothing: on any error the screen is unchanged and the
// returned count is zero.
//
// Loaded shapes are checked against the screen bounds but not for overlap,
// neither among themselves nor against shapes already present.
//
// name identifies the source in errors.
func (s *Screen) LoadFrom(name string, r io.Reader, opts ...LoadOption) (int, error) {
	return s.load(name, r, newLoadOptions(opts))
}

func (s *Screen) load(name string, r io.Reader, o *loadOptions) (int, error) {
	var (
		loaded    []shape.Shape
		lastColor string
		lineNo    int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if o.skipBlank && strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := parseRecord(line, lastColor)
		if err != nil {
			return 0, &RecordError{Source: name, Line: lineNo, Err: err}
		}
		lastColor = rec.color

		sh, err := rec.toShape()
		if err != nil {
			return 0, &RecordError{Source: name, Line: lineNo, Err: err}
		}
		loaded = append(loaded, sh)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("%w: read %s: %w", ErrSourceUnavailable, name, err)
	}

	for _, sh := range loaded {
		if !s.contains(sh) {
			return 0, &RecordError{
				Source: name,
				Line:   UnknownLine,
				Err:    &PlacementError{Err: ErrBoundsViolation, Shape: sh},
			}
		}
	}

	s.shapes = append(s.shapes, loaded...)
	Logger().Info("batch loaded",
		slog.String("source", name),
		slog.Int("records", len(loaded)),
		slog.Int("count", len(s.shapes)))
	return len(loaded), nil
}

var (
	errRecordFormat = errors.New("invalid format, expected 'centerX centerY width height [color]'")
	errExtraFields  = errors.New("extra data after color")
)

// record is one parsed batch line, still in center coordinates.
type record struct {
	cx, cy        float64
	width, height float64
	color         string
}

// parseRecord tokenizes one line. lastColor is used when the line has no
// color field.
func parseRecord(line, lastColor string) (record, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return record{}, fmt.Errorf("%w: got %d fields", errRecordFormat, len(fields))
	}
	if len(fields) > 5 {
		return record{}, fmt.Errorf("%w: %q", errExtraFields, strings.Join(fields[5:], " "))
	}

	var nums [4]float64
	for i := range nums {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return record{}, fmt.Errorf("%w: field %d is not a finite number: %q", errRecordFormat, i+1, fields[i])
		}
		nums[i] = v
	}

	rec := record{cx: nums[0], cy: nums[1], width: nums[2], height: nums[3], color: lastColor}
	if len(fields) == 5 {
		rec.color = fields[4]
	}
	return rec, nil
}

// toShape converts the record's center point to a top-left corner and
// validates it like any other shape.
func (rec record) toShape() (shape.Shape, error) {
	x := rec.cx - rec.width/2
	y := rec.cy - rec.height/2
	return shape.New(x, y, rec.width, rec.height, shape.WithColor(rec.color))
}
