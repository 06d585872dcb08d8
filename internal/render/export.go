package render

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/danieljhkim/rectscreen/internal/clock"
	"github.com/danieljhkim/rectscreen/internal/fsops"
)

// ErrExportFailure indicates an export that could not be written.
var ErrExportFailure = errors.New("export failed")

// Exporter renders scenes into files. Output is rendered in memory and then
// written with FS.AtomicWrite, so a failed export leaves any existing file
// at the target path untouched.
type Exporter struct {
	fs    fsops.FS
	clock clock.Clock
}

// NewExporter creates an Exporter.
func NewExporter(fs fsops.FS, clk clock.Clock) *Exporter {
	return &Exporter{fs: fs, clock: clk}
}

// ExportSVG writes sc to path as SVG.
func (e *Exporter) ExportSVG(path string, sc Scene) error {
	var buf bytes.Buffer
	desc := "rectscreen export generated " + e.clock.Now().UTC().Format(time.RFC3339)
	if err := SVG(&buf, sc, WithDescription(desc)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExportFailure, path, err)
	}
	return e.write(path, buf.Bytes())
}

// ExportPNG writes sc to path as PNG.
func (e *Exporter) ExportPNG(path string, sc Scene) error {
	var buf bytes.Buffer
	if err := PNG(&buf, sc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExportFailure, path, err)
	}
	return e.write(path, buf.Bytes())
}

func (e *Exporter) write(path string, data []byte) error {
	if err := e.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExportFailure, path, err)
	}
	return nil
}
