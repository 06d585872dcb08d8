package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/rectscreen/internal/fsops"
	"github.com/danieljhkim/rectscreen/internal/screen"
	"github.com/danieljhkim/rectscreen/internal/shape"
)

// Demo batch files. input.txt fails the bounds check on its last record.
var demoFiles = map[string]string{
	"input.txt": `100 100 50 50 red
200 250 80 60 blue
300 300 70 70
350 350 90 90 orange
50 400 40 40
900 500 30 30 white
`,
	"input_invalid_format.txt": `100 100 50 50 red
200 250 80 oops blue
`,
	"input_invalid_rect.txt": `100 100 50 50 red
200 200 -30 30 black
`,
	"input_correct.txt": `400 400 50 50 green
500 500 60 60
600 200 40 80 yellow
`,
}

var demoFlags screenFlags

// demoResult is the JSON form of a demo run.
type demoResult struct {
	Checks  int      `json:"checks"`
	Shapes  int      `json:"shapes"`
	Outputs []string `json:"outputs"`
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through every placement rule on an 800x600 screen",
	Long: `Run a scripted walkthrough of shape validation, strict and best-effort
insertion, SVG export and all-or-nothing batch loading.

The demo writes its batch files and SVG exports into --out-dir and fails if any
step does not behave as expected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := demoFlags.settings(cmd)
		if err != nil {
			return err
		}

		d := &demo{
			sc:     screen.New(800, 600),
			fs:     fsops.NewRealFS(),
			outDir: settings.OutDir,
			quiet:  jsonOutput,
		}
		if err := d.run(); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), demoResult{
				Checks:  d.checks,
				Shapes:  d.sc.Len(),
				Outputs: d.outputs,
			})
		}
		PrintSuccess(fmt.Sprintf("Demo finished: %s passed, %s on screen",
			PrintCount(d.checks, "check", "checks"), PrintCount(d.sc.Len(), "shape", "shapes")))
		return nil
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoFlags.outDir, "out-dir", ".", "Directory for demo batch files and exports")
}

type demo struct {
	sc      *screen.Screen
	fs      fsops.FS
	outDir  string
	quiet   bool
	checks  int
	outputs []string
}

func (d *demo) section(title string) {
	if !d.quiet {
		PrintSection(title)
	}
}

func (d *demo) ok(msg string) {
	d.checks++
	if !d.quiet {
		PrintSuccess(msg)
	}
}

func (d *demo) detail(label, value string) {
	if !d.quiet {
		PrintLabelValue(label, value)
	}
}

// expectErr records a check that err matches target.
func (d *demo) expectErr(what string, err, target error) error {
	if err == nil {
		return fmt.Errorf("demo: %s: expected %v, got success", what, target)
	}
	if !errors.Is(err, target) {
		return fmt.Errorf("demo: %s: expected %v, got: %w", what, target, err)
	}
	d.ok(fmt.Sprintf("%s rejected: %v", what, err))
	return nil
}

func (d *demo) path(name string) string {
	return filepath.Join(d.outDir, name)
}

func (d *demo) run() error {
	steps := []func() error{
		d.constructors,
		d.insertions,
		d.setColor,
		d.strictFailures,
		d.tryInsert,
		d.export("output.svg"),
		d.writeBatches,
		d.failedLoads,
		d.correctLoad,
		d.export("output_after_load.svg"),
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (d *demo) constructors() error {
	d.section("Shape validation")

	_, err := shape.New(10, 10, -50, 50)
	if err := d.expectErr("width -50", err, shape.ErrInvalidDimension); err != nil {
		return err
	}
	_, err = shape.New(10, 10, 50, 1200)
	if err := d.expectErr("height 1200", err, shape.ErrDimensionOutOfRange); err != nil {
		return err
	}
	_, err = shape.New(10, 10, 50, 50, shape.WithColor("unknown_color"))
	return d.expectErr("color unknown_color", err, shape.ErrInvalidColor)
}

func (d *demo) insertions() error {
	d.section("Strict insertion")

	red, err := shape.New(50, 50, 100, 80, shape.WithColor("red"))
	if err != nil {
		return err
	}
	if err := d.sc.Insert(red); err != nil {
		return fmt.Errorf("demo: insert red: %w", err)
	}
	d.ok("Inserted " + red.String())

	blue, err := shape.New(200, 100, 150, 100, shape.WithColor("blue"), shape.WithExclusive())
	if err != nil {
		return err
	}
	if err := d.sc.Insert(blue); err != nil {
		return fmt.Errorf("demo: insert blue: %w", err)
	}
	d.ok("Inserted " + blue.String())
	return nil
}

func (d *demo) setColor() error {
	d.section("Recoloring")

	s, err := shape.New(1, 1, 1, 1)
	if err != nil {
		return err
	}
	if err := d.expectErr("color magenta", s.SetColor("magenta"), shape.ErrInvalidColor); err != nil {
		return err
	}
	if s.Color() != "" {
		return fmt.Errorf("demo: failed SetColor changed color to %q", s.Color())
	}
	d.ok("Color unchanged after failed recolor")
	return nil
}

func (d *demo) strictFailures() error {
	d.section("Placement violations")

	outside, err := shape.New(750, 550, 100, 100)
	if err != nil {
		return err
	}
	err = d.sc.Insert(outside)
	if err := d.expectErr("out of bounds shape", err, screen.ErrBoundsViolation); err != nil {
		return err
	}
	var pe *screen.PlacementError
	if errors.As(err, &pe) {
		d.detail("Shape", fmt.Sprintf("w=%g h=%g", pe.Shape.Width(), pe.Shape.Height()))
	}

	overlap, err := shape.New(220, 120, 50, 50, shape.WithColor("yellow"), shape.WithExclusive())
	if err != nil {
		return err
	}
	err = d.sc.Insert(overlap)
	if err := d.expectErr("overlapping exclusive shape", err, screen.ErrOverlapViolation); err != nil {
		return err
	}
	if errors.As(err, &pe) {
		d.detail("Shape", fmt.Sprintf("x=%g y=%g", pe.Shape.X(), pe.Shape.Y()))
	}

	green, err := shape.New(400, 100, 50, 50, shape.WithColor("green"), shape.WithExclusive())
	if err != nil {
		return err
	}
	if err := d.sc.Insert(green); err != nil {
		return fmt.Errorf("demo: insert green: %w", err)
	}
	d.ok("Inserted " + green.String())
	return nil
}

func (d *demo) tryInsert() error {
	d.section("Best-effort insertion")

	cases := []struct {
		x, y, w, h float64
		opts       []shape.Option
		want       bool
	}{
		{10, 1000, 20, 20, nil, false},
		{230, 130, 40, 40, []shape.Option{shape.WithColor("purple"), shape.WithExclusive()}, false},
		{500, 300, 60, 60, []shape.Option{shape.WithColor("orange")}, true},
	}

	for _, tc := range cases {
		s, err := shape.New(tc.x, tc.y, tc.w, tc.h, tc.opts...)
		if err != nil {
			return err
		}
		got := d.sc.TryInsert(s)
		if got != tc.want {
			return fmt.Errorf("demo: TryInsert(%s) = %v, want %v (last error %q)", s, got, tc.want, d.sc.LastError())
		}
		if got {
			d.ok("TryInsert accepted " + s.String())
		} else {
			d.ok(fmt.Sprintf("TryInsert refused %s: %s", s, d.sc.LastError()))
		}
	}
	return nil
}

func (d *demo) export(name string) func() error {
	return func() error {
		d.section("Export " + name)

		p := d.path(name)
		if err := newExporter().ExportSVG(p, d.sc); err != nil {
			return err
		}
		d.outputs = append(d.outputs, p)
		d.ok(fmt.Sprintf("Wrote %s with %s", p, PrintCount(d.sc.Len(), "shape", "shapes")))
		return nil
	}
}

func (d *demo) writeBatches() error {
	for _, name := range []string{"input.txt", "input_invalid_format.txt", "input_invalid_rect.txt", "input_correct.txt"} {
		if err := d.fs.AtomicWrite(d.path(name), []byte(demoFiles[name]), 0644); err != nil {
			return fmt.Errorf("demo: failed to write %s: %w", name, err)
		}
	}
	return nil
}

func (d *demo) failedLoads() error {
	d.section("All-or-nothing loading")

	cases := []struct {
		file  string
		line  int
		cause error
	}{
		{"input.txt", screen.UnknownLine, screen.ErrBoundsViolation},
		{"input_invalid_format.txt", 2, screen.ErrMalformedRecord},
		{"input_invalid_rect.txt", 2, shape.ErrInvalidDimension},
	}

	for _, tc := range cases {
		before := d.sc.Len()
		_, err := d.sc.LoadBatch(d.path(tc.file))
		if err := d.expectErr(tc.file, err, tc.cause); err != nil {
			return err
		}

		var re *screen.RecordError
		if !errors.As(err, &re) || re.Line != tc.line {
			return fmt.Errorf("demo: %s: expected failure on line %d, got %v", tc.file, tc.line, err)
		}
		d.detail("Line", fmt.Sprint(re.Line))

		if d.sc.Len() != before {
			return fmt.Errorf("demo: %s: screen changed from %d to %d shapes after a failed load", tc.file, before, d.sc.Len())
		}
		d.ok("Screen unchanged")
	}
	return nil
}

func (d *demo) correctLoad() error {
	before := d.sc.Len()
	n, err := d.sc.LoadBatch(d.path("input_correct.txt"))
	if err != nil {
		return fmt.Errorf("demo: load input_correct.txt: %w", err)
	}
	if d.sc.Len() != before+n {
		return fmt.Errorf("demo: loaded %d records but screen grew by %d", n, d.sc.Len()-before)
	}

	names := make([]string, 0, n)
	for _, s := range d.sc.Shapes()[before:] {
		names = append(names, s.String())
	}
	d.ok(fmt.Sprintf("Loaded %s from input_correct.txt", PrintCount(n, "record", "records")))
	if !d.quiet {
		PrintList(names, 1)
	}
	return nil
}
