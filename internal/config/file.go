package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/flashingpumpkin/splitter/internal/panel"
	"gopkg.in/yaml.v3"
)

// FileConfig represents a layout file, by default .splitter/layout.toml.
type FileConfig struct {
	// Direction is "horizontal" or "vertical".
	Direction string `toml:"direction" yaml:"direction"`

	// Container is the container length for non-interactive commands.
	Container float64 `toml:"container" yaml:"container"`

	KeyStep      float64 `toml:"key_step" yaml:"key_step"`
	KeyLargeStep float64 `toml:"key_large_step" yaml:"key_large_step"`
	ThrottleMS   int     `toml:"throttle_ms" yaml:"throttle_ms"`
	Theme        string  `toml:"theme" yaml:"theme"`

	// Panels are the panel declarations, written as [[panels]] tables.
	Panels []panel.Decl `toml:"panels" yaml:"panels"`
}

// DefaultLayoutPath returns the layout file path for a working directory.
func DefaultLayoutPath(workingDir string) string {
	return filepath.Join(workingDir, ".splitter", "layout.toml")
}

// LoadFileConfig reads configuration from .splitter/layout.toml in the working directory.
// Returns nil if the file doesn't exist (not an error).
func LoadFileConfig(workingDir string) (*FileConfig, error) {
	return LoadFileConfigFrom(DefaultLayoutPath(workingDir))
}

// LoadFileConfigFrom reads configuration from a specific file path.
// Files ending in .yaml or .yml are read as YAML, everything else as TOML.
// Returns nil if the file doesn't exist (not an error).
func LoadFileConfigFrom(configPath string) (*FileConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	return &cfg, nil
}

// Load builds a validated Config. An explicit path must exist; without one
// the default layout file is used when present.
func Load(workingDir, path string) (*Config, error) {
	cfg := NewConfig()

	var fc *FileConfig
	var err error
	if path != "" {
		fc, err = LoadFileConfigFrom(path)
		if err == nil && fc == nil {
			err = fmt.Errorf("layout file %s: %w", path, os.ErrNotExist)
		}
		cfg.LayoutPath = path
	} else {
		fc, err = LoadFileConfig(workingDir)
		if fc != nil {
			cfg.LayoutPath = DefaultLayoutPath(workingDir)
		}
	}
	if err != nil {
		return nil, err
	}

	cfg.Apply(fc)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
