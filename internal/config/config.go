// Package config provides configuration management for splitter.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/flashingpumpkin/splitter/internal/drag"
	"github.com/flashingpumpkin/splitter/internal/panel"
	"github.com/flashingpumpkin/splitter/internal/throttle"
)

// Layout directions.
const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
)

// Config holds the configuration for one splitter run.
type Config struct {
	// LayoutPath is the layout file the panels were loaded from, if any.
	LayoutPath string

	// Direction is the panel axis: "horizontal" (side by side) or
	// "vertical" (stacked). Default: "horizontal".
	Direction string

	// Container is the container length used by the non-interactive
	// commands. 0 means the terminal extent along Direction.
	Container float64

	// KeyStep and KeyLargeStep are the keyboard resize steps (default: 10 and 50).
	KeyStep      float64
	KeyLargeStep float64

	// ThrottleInterval bounds how often a pointer drag re-solves the layout (default: 16ms).
	ThrottleInterval time.Duration

	// Theme is the colour theme for the TUI: "auto", "dark", or "light".
	// "auto" detects the terminal background colour automatically.
	Theme string

	// Watch reloads the layout file when it changes.
	Watch bool

	// Panels are the panel declarations in order.
	Panels []panel.Decl
}

// DefaultPanels is the layout used when no layout file exists.
var DefaultPanels = []panel.Decl{
	{ID: "files", Title: "Files", DefaultSize: "25%", MinSize: "12%", MaxSize: "50%", CollapsedSize: "3px"},
	{ID: "editor", Title: "Editor", MinSize: "20%"},
	{ID: "outline", Title: "Outline", DefaultSize: "20%", MinSize: "10%", CollapsedSize: "3px"},
}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Direction:        Horizontal,
		KeyStep:          drag.DefaultKeyStep,
		KeyLargeStep:     drag.DefaultKeyLargeStep,
		ThrottleInterval: throttle.DefaultInterval,
		Theme:            "auto",
		Panels:           append([]panel.Decl(nil), DefaultPanels...),
	}
}

// Apply copies the values set in the file config over c.
func (c *Config) Apply(fc *FileConfig) {
	if fc == nil {
		return
	}
	if fc.Direction != "" {
		c.Direction = fc.Direction
	}
	if fc.Container > 0 {
		c.Container = fc.Container
	}
	if fc.KeyStep > 0 {
		c.KeyStep = fc.KeyStep
	}
	if fc.KeyLargeStep > 0 {
		c.KeyLargeStep = fc.KeyLargeStep
	}
	if fc.ThrottleMS > 0 {
		c.ThrottleInterval = time.Duration(fc.ThrottleMS) * time.Millisecond
	}
	if fc.Theme != "" {
		c.Theme = fc.Theme
	}
	if len(fc.Panels) > 0 {
		c.Panels = append([]panel.Decl(nil), fc.Panels...)
	}
}

// Validate checks that the configuration is valid.
// Returns an error if validation fails. Size strings are parsed here so a
// malformed layout fails before anything is drawn.
func (c *Config) Validate() error {
	if c.Direction != Horizontal && c.Direction != Vertical {
		return fmt.Errorf("direction must be %q or %q, got %q", Horizontal, Vertical, c.Direction)
	}
	if c.Container < 0 {
		return errors.New("container size cannot be negative")
	}
	if c.KeyStep <= 0 || c.KeyLargeStep <= 0 {
		return errors.New("key steps must be positive")
	}
	if c.ThrottleInterval <= 0 {
		return errors.New("throttle interval must be positive")
	}
	switch c.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("theme must be auto, dark or light, got %q", c.Theme)
	}
	if len(c.Panels) == 0 {
		return errors.New("at least one panel is required")
	}
	if _, err := panel.NewGroup(c.Panels); err != nil {
		return err
	}
	return nil
}

// GroupOptions returns the panel.Group options implied by c.
func (c *Config) GroupOptions() []panel.Option {
	return []panel.Option{panel.WithKeySteps(c.KeyStep, c.KeyLargeStep)}
}
