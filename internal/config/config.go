package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds all configurable tracklet settings.
type Config struct {
	DefaultFormat  string `json:"default_format"`  // "markdown" | "json"
	HighlightColor string `json:"highlight_color"` // lipgloss color of staged shapes
	LogLevel       string `json:"log_level"`
	LogFile        string `json:"log_file"` // TUI log destination
	CanvasWidth    int    `json:"canvas_width"`
	CanvasHeight   int    `json:"canvas_height"`
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		DefaultFormat:  "markdown",
		HighlightColor: "205",
		LogLevel:       "info",
		CanvasWidth:    80,
		CanvasHeight:   24,
	}
}

// GlobalPath returns ~/.config/tracklet/config.json.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tracklet", "config.json"), nil
}

// LoadGlobal reads ~/.config/tracklet/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads .trackletconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".trackletconfig", false)
}

func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	for _, layer := range []*Config{global, project} {
		if layer != nil {
			result.apply(layer)
		}
	}
	return result
}

// apply copies every set field of c over the receiver.
func (r *Config) apply(c *Config) {
	if c.DefaultFormat != "" {
		r.DefaultFormat = c.DefaultFormat
	}
	if c.HighlightColor != "" {
		r.HighlightColor = c.HighlightColor
	}
	if c.LogLevel != "" {
		r.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		r.LogFile = c.LogFile
	}
	if c.CanvasWidth > 0 {
		r.CanvasWidth = c.CanvasWidth
	}
	if c.CanvasHeight > 0 {
		r.CanvasHeight = c.CanvasHeight
	}
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
