// Package config resolves rectscreen settings from the environment.
//
// Every setting has a default and can be overridden by an environment
// variable; command-line flags in turn override the resolved settings.
//   - RECTSCREEN_WIDTH, RECTSCREEN_HEIGHT: screen size (default 800x600)
//   - RECTSCREEN_OUT_DIR: directory exports are written to (default ".")
//   - RECTSCREEN_SKIP_BLANK: skip blank lines in batch files (default false)
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvWidth     = "RECTSCREEN_WIDTH"
	EnvHeight    = "RECTSCREEN_HEIGHT"
	EnvOutDir    = "RECTSCREEN_OUT_DIR"
	EnvSkipBlank = "RECTSCREEN_SKIP_BLANK"
)

// Defaults.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultOutDir = "."
)

// Settings holds resolved configuration.
type Settings struct {
	// Width and Height size new screens.
	Width  float64
	Height float64

	// OutDir is where exports go when no explicit output path is given.
	OutDir string

	// SkipBlank makes batch loads ignore whitespace-only lines.
	SkipBlank bool
}

// Load resolves settings from the environment.
func Load() (*Settings, error) {
	s := &Settings{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		OutDir: DefaultOutDir,
	}

	var err error
	if s.Width, err = floatEnv(EnvWidth, s.Width); err != nil {
		return nil, err
	}
	if s.Height, err = floatEnv(EnvHeight, s.Height); err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvOutDir); v != "" {
		s.OutDir = v
	}
	if v := os.Getenv(EnvSkipBlank); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvSkipBlank, v, err)
		}
		s.SkipBlank = b
	}

	return s, nil
}

func floatEnv(name string, def float64) (float64, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s %q: not a finite number", name, v)
	}
	return f, nil
}
