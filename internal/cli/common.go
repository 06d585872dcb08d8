package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/rectscreen/internal/clock"
	"github.com/danieljhkim/rectscreen/internal/config"
	"github.com/danieljhkim/rectscreen/internal/fsops"
	"github.com/danieljhkim/rectscreen/internal/render"
	"github.com/danieljhkim/rectscreen/internal/screen"
)

// screenFlags holds the size and parsing flags shared by batch commands.
type screenFlags struct {
	width     float64
	height    float64
	outDir    string
	skipBlank bool
}

func (f *screenFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", config.DefaultWidth, "Screen width (env "+config.EnvWidth+")")
	cmd.Flags().Float64Var(&f.height, "height", config.DefaultHeight, "Screen height (env "+config.EnvHeight+")")
	cmd.Flags().StringVar(&f.outDir, "out-dir", config.DefaultOutDir, "Directory for exports without an explicit path (env "+config.EnvOutDir+")")
	cmd.Flags().BoolVar(&f.skipBlank, "skip-blank", false, "Ignore blank lines in batch files (env "+config.EnvSkipBlank+")")
}

// settings loads environment settings and applies flags the user set.
func (f *screenFlags) settings(cmd *cobra.Command) (*config.Settings, error) {
	s, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		s.Width = f.width
	}
	if flags.Changed("height") {
		s.Height = f.height
	}
	if flags.Changed("out-dir") {
		s.OutDir = f.outDir
	}
	if flags.Changed("skip-blank") {
		s.SkipBlank = f.skipBlank
	}
	return s, nil
}

// loadScreen creates a screen from settings and loads the batch at path into it.
func loadScreen(s *config.Settings, path string) (*screen.Screen, int, error) {
	sc := screen.New(s.Width, s.Height)

	var opts []screen.LoadOption
	if s.SkipBlank {
		opts = append(opts, screen.WithSkipBlankLines())
	}

	n, err := sc.LoadBatch(path, opts...)
	return sc, n, err
}

// newExporter creates an exporter backed by the real filesystem and clock.
func newExporter() *render.Exporter {
	return render.NewExporter(fsops.NewRealFS(), clock.RealClock{})
}

// defaultOutput derives an export path from the batch file name.
func defaultOutput(s *config.Settings, batchPath, ext string) string {
	base := strings.TrimSuffix(filepath.Base(batchPath), filepath.Ext(batchPath))
	return filepath.Join(s.OutDir, base+ext)
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describeLoadError prints where a failed batch load went wrong.
func describeLoadError(err error) {
	var re *screen.RecordError
	if errors.As(err, &re) {
		PrintLabelValue("Source", re.Source)
		if re.Line == screen.UnknownLine {
			PrintLabelValue("Line", "unknown (bounds check after parsing)")
		} else {
			PrintLabelValue("Line", fmt.Sprint(re.Line))
		}
	}

	var pe *screen.PlacementError
	if errors.As(err, &pe) {
		PrintLabelValue("Shape", pe.Shape.String())
	}
}

// errorLine returns the failing line of a batch load error, or 0.
func errorLine(err error) int {
	var re *screen.RecordError
	if errors.As(err, &re) {
		return re.Line
	}
	return 0
}
