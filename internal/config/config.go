// Package config loads session configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the session configuration.
type Config struct {
	History   HistoryConfig   `toml:"history"`
	Export    ExportConfig    `toml:"export"`
	Materials MaterialsConfig `toml:"materials"`
	Log       LogConfig       `toml:"log"`
}

// HistoryConfig bounds undo/redo.
type HistoryConfig struct {
	// MaxEntries is the snapshot log capacity.
	MaxEntries int `toml:"max_entries"`
}

// ExportConfig controls interchange output.
type ExportConfig struct {
	// Dir is the directory interchange files are written into.
	Dir string `toml:"dir"`
	// Version overrides the schema version stamped on exports.
	Version string `toml:"version"`
}

// MaterialsConfig locates the material catalog.
type MaterialsConfig struct {
	// Dir holds *.json catalog files. Empty disables the catalog.
	Dir string `toml:"dir"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxEntries: 100},
		Export:  ExportConfig{Dir: "."},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads configuration from path, applying defaults for absent
// fields. A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	if cfg.History.MaxEntries <= 0 {
		cfg.History.MaxEntries = Default().History.MaxEntries
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = Default().Export.Dir
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = Default().Log.Level
	}
	return cfg, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
