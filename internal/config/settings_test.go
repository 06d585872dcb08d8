package config

import "testing"

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(EnvWidth, "")
		t.Setenv(EnvHeight, "")
		t.Setenv(EnvOutDir, "")
		t.Setenv(EnvSkipBlank, "")

		s, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.Width != DefaultWidth || s.Height != DefaultHeight {
			t.Errorf("size = %gx%g, want %gx%g", s.Width, s.Height, DefaultWidth, DefaultHeight)
		}
		if s.OutDir != DefaultOutDir {
			t.Errorf("OutDir = %q, want %q", s.OutDir, DefaultOutDir)
		}
		if s.SkipBlank {
			t.Error("SkipBlank should default to false")
		}
	})

	t.Run("respects environment", func(t *testing.T) {
		t.Setenv(EnvWidth, "1024")
		t.Setenv(EnvHeight, "768.5")
		t.Setenv(EnvOutDir, "/tmp/exports")
		t.Setenv(EnvSkipBlank, "true")

		s, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.Width != 1024 || s.Height != 768.5 {
			t.Errorf("size = %gx%g, want 1024x768.5", s.Width, s.Height)
		}
		if s.OutDir != "/tmp/exports" {
			t.Errorf("OutDir = %q", s.OutDir)
		}
		if !s.SkipBlank {
			t.Error("SkipBlank should be true")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name  string
			env   string
			value string
		}{
			{name: "width not a number", env: EnvWidth, value: "wide"},
			{name: "height not a number", env: EnvHeight, value: "12px"},
			{name: "skip blank not a bool", env: EnvSkipBlank, value: "sometimes"},
			{name: "width infinite", env: EnvWidth, value: "Inf"},
			{name: "height infinite", env: EnvHeight, value: "-inf"},
			{name: "width NaN", env: EnvWidth, value: "NaN"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Setenv(EnvWidth, "")
				t.Setenv(EnvHeight, "")
				t.Setenv(EnvSkipBlank, "")
				t.Setenv(tt.env, tt.value)

				if _, err := Load(); err == nil {
					t.Errorf("Load() with %s=%q succeeded, want error", tt.env, tt.value)
				}
			})
		}
	})
}
