// Package state remembers panel sizes between splitter runs.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/flashingpumpkin/splitter/internal/panel"
	"github.com/flashingpumpkin/splitter/internal/size"
)

// Panel is the remembered state of one panel.
type Panel struct {
	ID        string `json:"id"`
	Size      string `json:"size"`
	Collapsed bool   `json:"collapsed,omitempty"`
}

// State is the remembered layout of a working directory.
type State struct {
	WorkingDir string    `json:"working_dir"`
	LayoutPath string    `json:"layout_path,omitempty"`
	SavedAt    time.Time `json:"saved_at"`
	Panels     []Panel   `json:"panels"`
}

// StateDir returns the path to the state directory for the given working directory.
func StateDir(workingDir string) string {
	workingDir = strings.TrimSuffix(workingDir, "/")
	return filepath.Join(workingDir, ".splitter", "state")
}

func statePath(workingDir string) string {
	return filepath.Join(StateDir(workingDir), "layout.json")
}

// FromGroup captures the current sizes of g. Each panel keeps its declared
// unit, so a percent panel is remembered in percent.
func FromGroup(workingDir, layoutPath string, g *panel.Group) *State {
	s := &State{
		WorkingDir: workingDir,
		LayoutPath: layoutPath,
		SavedAt:    time.Now(),
		Panels:     make([]Panel, g.Len()),
	}
	for i := range s.Panels {
		s.Panels[i] = Panel{
			ID:        g.Decl(i).ID,
			Size:      g.Declared(i).String(),
			Collapsed: g.Collapsed(i),
		}
	}
	return s
}

// Save persists the state to layout.json in the state directory.
func (s *State) Save() error {
	stateDir := StateDir(s.WorkingDir)

	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write to temp file and rename for atomicity
	path := statePath(s.WorkingDir)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}

// Load reads the state from layout.json in the state directory.
func Load(workingDir string) (*State, error) {
	data, err := os.ReadFile(statePath(workingDir))
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	return &s, nil
}

// Exists returns true if a state file exists in the working directory.
func Exists(workingDir string) bool {
	_, err := os.Stat(statePath(workingDir))
	return err == nil
}

// Matches reports whether the state was saved for panels with the same ids
// in the same order.
func (s *State) Matches(decls []panel.Decl) bool {
	if len(s.Panels) != len(decls) {
		return false
	}
	for i, p := range s.Panels {
		if p.ID != decls[i].ID {
			return false
		}
	}
	return true
}

// Apply returns a copy of decls with the remembered sizes as their default
// sizes. Nothing is applied when the state does not match decls.
func (s *State) Apply(decls []panel.Decl) []panel.Decl {
	out := append([]panel.Decl(nil), decls...)
	if !s.Matches(decls) {
		return out
	}
	for i, p := range s.Panels {
		out[i].DefaultSize = p.Size
		out[i].DefaultCollapsed = p.Collapsed && collapsible(out[i])
	}
	return out
}

func collapsible(d panel.Decl) bool {
	cs, err := size.Parse(d.CollapsedSize)
	return err == nil && !cs.IsAuto()
}

// Clear removes the state directory of a working directory.
func Clear(workingDir string) error {
	if err := os.RemoveAll(StateDir(workingDir)); err != nil {
		return fmt.Errorf("failed to remove state directory: %w", err)
	}
	return nil
}
