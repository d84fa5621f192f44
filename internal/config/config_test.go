package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

func TestConfigMergePrecedence(t *testing.T) {
	nonEmptyString := rapid.StringMatching(`[a-zA-Z0-9/_.-]{1,20}`)

	// Each field is independently either unset or a value.
	configGen := rapid.Custom(func(t *rapid.T) *Config {
		cfg := &Config{}
		if rapid.Bool().Draw(t, "hasDefaultFormat") {
			cfg.DefaultFormat = nonEmptyString.Draw(t, "defaultFormat")
		}
		if rapid.Bool().Draw(t, "hasHighlightColor") {
			cfg.HighlightColor = nonEmptyString.Draw(t, "highlightColor")
		}
		if rapid.Bool().Draw(t, "hasLogLevel") {
			cfg.LogLevel = nonEmptyString.Draw(t, "logLevel")
		}
		if rapid.Bool().Draw(t, "hasLogFile") {
			cfg.LogFile = nonEmptyString.Draw(t, "logFile")
		}
		if rapid.Bool().Draw(t, "hasCanvasWidth") {
			cfg.CanvasWidth = rapid.IntRange(1, 500).Draw(t, "canvasWidth")
		}
		return cfg
	})

	rapid.Check(t, func(t *rapid.T) {
		var global, project *Config
		if rapid.Bool().Draw(t, "hasGlobal") {
			global = configGen.Draw(t, "global")
		} else {
			global = &Config{}
		}
		if rapid.Bool().Draw(t, "hasProject") {
			project = configGen.Draw(t, "project")
		}

		merged := Merge(global, project)
		defaults := Defaults()
		p := project
		if p == nil {
			p = &Config{}
		}

		checkStringField(t, "DefaultFormat", global.DefaultFormat, p.DefaultFormat, defaults.DefaultFormat, merged.DefaultFormat)
		checkStringField(t, "HighlightColor", global.HighlightColor, p.HighlightColor, defaults.HighlightColor, merged.HighlightColor)
		checkStringField(t, "LogLevel", global.LogLevel, p.LogLevel, defaults.LogLevel, merged.LogLevel)
		checkStringField(t, "LogFile", global.LogFile, p.LogFile, defaults.LogFile, merged.LogFile)

		want := defaults.CanvasWidth
		switch {
		case p.CanvasWidth > 0:
			want = p.CanvasWidth
		case global.CanvasWidth > 0:
			want = global.CanvasWidth
		}
		if merged.CanvasWidth != want {
			t.Fatalf("CanvasWidth: expected %d, got %d", want, merged.CanvasWidth)
		}
	})
}

// checkStringField asserts the merge precedence rule for a single string field:
//   - project non-empty  → merged == project
//   - project empty, global non-empty → merged == global
//   - both empty → merged == defaultVal
func checkStringField(t *rapid.T, name, globalVal, projectVal, defaultVal, mergedVal string) {
	t.Helper()
	switch {
	case projectVal != "":
		if mergedVal != projectVal {
			t.Fatalf("%s: expected project value %q, got %q", name, projectVal, mergedVal)
		}
	case globalVal != "":
		if mergedVal != globalVal {
			t.Fatalf("%s: only global set, expected %q, got %q", name, globalVal, mergedVal)
		}
	default:
		if mergedVal != defaultVal {
			t.Fatalf("%s: neither set, expected default %q, got %q", name, defaultVal, mergedVal)
		}
	}
}

func TestDefaultsValues(t *testing.T) {
	d := Defaults()
	if d.DefaultFormat != "markdown" {
		t.Errorf("DefaultFormat: want %q, got %q", "markdown", d.DefaultFormat)
	}
	if d.LogLevel != "info" {
		t.Errorf("LogLevel: want %q, got %q", "info", d.LogLevel)
	}
	if d.CanvasWidth <= 0 || d.CanvasHeight <= 0 {
		t.Errorf("canvas size must be positive, got %dx%d", d.CanvasWidth, d.CanvasHeight)
	}
}

func TestLoadGlobalMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config, got nil")
	}
	if *cfg != Defaults() {
		t.Errorf("want defaults, got %+v", *cfg)
	}
}

func TestLoadGlobalReadsFile(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	dir := filepath.Join(tmp, ".config", "tracklet")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := `{"default_format":"json","canvas_width":120}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	merged := Merge(cfg, nil)
	if merged.DefaultFormat != "json" || merged.CanvasWidth != 120 {
		t.Errorf("unexpected merged config %+v", merged)
	}
	if merged.CanvasHeight != Defaults().CanvasHeight {
		t.Errorf("CanvasHeight should fall back to default, got %d", merged.CanvasHeight)
	}
}

func TestLoadProjectMissingFileReturnsNil(t *testing.T) {
	tmp := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	cfg, err := LoadProject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestLoadGlobalParseError(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	cfgDir := filepath.Join(tmp, ".config", "tracklet")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), []byte("{invalid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadGlobal()
	if err == nil {
		t.Fatal("expected an error for invalid JSON, got nil")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected *ParseError, got %T: %v", err, err)
	}
}
