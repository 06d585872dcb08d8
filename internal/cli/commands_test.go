package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/rectscreen/internal/config"
	"github.com/danieljhkim/rectscreen/internal/screen"
	"github.com/danieljhkim/rectscreen/internal/shape"
)

// writeBatch writes content to name inside a new temp dir and returns its path.
func writeBatch(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write batch: %v", err)
	}
	return path
}

func decode(t *testing.T, out string, v interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
}

func TestPaletteCommand_JSON(t *testing.T) {
	out, err := execute(t, "palette", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var colors []string
	decode(t, out, &colors)
	if len(colors) != len(shape.Palette()) {
		t.Errorf("got %d colors, want %d", len(colors), len(shape.Palette()))
	}
}

func TestRenderCommand(t *testing.T) {
	batch := writeBatch(t, "scene.txt", "100 100 50 50 red\n300 300 70 70\n")
	outDir := t.TempDir()
	pngPath := filepath.Join(outDir, "scene.png")

	out, err := execute(t, "render", batch, "--out-dir", outDir, "--png", pngPath, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var res renderResult
	decode(t, out, &res)
	if res.Loaded != 2 {
		t.Errorf("Loaded = %d, want 2", res.Loaded)
	}
	if res.Width != config.DefaultWidth || res.Height != config.DefaultHeight {
		t.Errorf("screen = %gx%g, want defaults", res.Width, res.Height)
	}
	if want := filepath.Join(outDir, "scene.svg"); res.SVG != want {
		t.Errorf("SVG = %q, want %q", res.SVG, want)
	}
	if res.Replaced {
		t.Error("first render reported a replaced SVG")
	}

	for _, p := range []string{res.SVG, pngPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}
}

func TestRenderCommand_ExplicitOutput(t *testing.T) {
	batch := writeBatch(t, "scene.txt", "10 10 4 4 blue\n")
	svgPath := filepath.Join(t.TempDir(), "custom.svg")

	if _, err := execute(t, "render", batch, "-o", svgPath, "--json"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Errorf("expected SVG document, got %q", data)
	}

	out, err := execute(t, "render", batch, "-o", svgPath, "--json")
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	var res renderResult
	decode(t, out, &res)
	if !res.Replaced {
		t.Error("second render should report the SVG as replaced")
	}
}

func TestRenderCommand_FailedLoadWritesNothing(t *testing.T) {
	batch := writeBatch(t, "scene.txt", "100 100 50 50 red\n900 500 30 30 white\n")
	outDir := t.TempDir()

	_, err := execute(t, "render", batch, "--out-dir", outDir, "--json")
	if !errors.Is(err, screen.ErrBoundsViolation) {
		t.Fatalf("Execute() error = %v, want ErrBoundsViolation", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no exports, found %d entries", len(entries))
	}
}

func TestRenderCommand_SizeFromEnvAndFlags(t *testing.T) {
	batch := writeBatch(t, "scene.txt", "100 100 50 50\n")
	t.Setenv(config.EnvWidth, "50")

	if _, err := execute(t, "render", batch, "--out-dir", t.TempDir(), "--json"); !errors.Is(err, screen.ErrBoundsViolation) {
		t.Errorf("with %s=50: error = %v, want ErrBoundsViolation", config.EnvWidth, err)
	}

	out, err := execute(t, "render", batch, "--out-dir", t.TempDir(), "--width", "500", "--json")
	if err != nil {
		t.Fatalf("with --width 500: error = %v", err)
	}
	var res renderResult
	decode(t, out, &res)
	if res.Width != 500 {
		t.Errorf("Width = %g, want 500", res.Width)
	}
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		args      []string
		wantValid bool
		wantN     int
		wantLine  int
		wantErr   error
	}{
		{
			name:      "valid",
			content:   "400 400 50 50 green\n500 500 60 60\n600 200 40 80 yellow\n",
			wantValid: true,
			wantN:     3,
		},
		{
			name:     "malformed line",
			content:  "100 100 50 50 red\n200 250 80 oops blue\n",
			wantLine: 2,
			wantErr:  screen.ErrMalformedRecord,
		},
		{
			name:     "bounds failure has unknown line",
			content:  "900 500 30 30 white\n",
			wantLine: screen.UnknownLine,
			wantErr:  screen.ErrBoundsViolation,
		},
		{
			name:     "blank line rejected by default",
			content:  "1 1 1 1\n\n2 2 1 1\n",
			wantLine: 2,
			wantErr:  screen.ErrMalformedRecord,
		},
		{
			name:      "blank line skipped on request",
			content:   "1 1 1 1\n\n2 2 1 1\n",
			args:      []string{"--skip-blank"},
			wantValid: true,
			wantN:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := writeBatch(t, "batch.txt", tt.content)
			args := append([]string{"check", batch, "--json"}, tt.args...)

			out, err := execute(t, args...)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Execute() error = %v, want %v", err, tt.wantErr)
			}

			var res checkResult
			decode(t, out, &res)
			if res.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", res.Valid, tt.wantValid)
			}
			if res.Loaded != tt.wantN {
				t.Errorf("Loaded = %d, want %d", res.Loaded, tt.wantN)
			}
			if res.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", res.Line, tt.wantLine)
			}
		})
	}
}

func TestCheckCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "missing.txt"), "--json")
	if !errors.Is(err, screen.ErrSourceUnavailable) {
		t.Errorf("Execute() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestDemoCommand(t *testing.T) {
	outDir := t.TempDir()

	out, err := execute(t, "demo", "--out-dir", outDir, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var res demoResult
	decode(t, out, &res)
	// red, blue, green, orange, then three loaded records.
	if res.Shapes != 7 {
		t.Errorf("Shapes = %d, want 7", res.Shapes)
	}
	if res.Checks == 0 {
		t.Error("expected demo checks to be counted")
	}

	for _, name := range []string{"output.svg", "output_after_load.svg", "input.txt", "input_correct.txt"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestWatchCommand_RendersUntilCancelled(t *testing.T) {
	batch := writeBatch(t, "scene.txt", "100 100 50 50 red\n")
	svgPath := filepath.Join(t.TempDir(), "scene.svg")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		deadline := time.After(5 * time.Second)
		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-deadline:
				cancel()
				return
			case <-tick.C:
				if _, err := os.Stat(svgPath); err == nil {
					cancel()
					return
				}
			}
		}
	}()

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"watch", batch, "-o", svgPath, "--debounce", "10ms"})
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("ExecuteContext() error = %v", err)
	}

	if _, err := os.Stat(svgPath); err != nil {
		t.Errorf("expected watch to render %s: %v", svgPath, err)
	}
}
