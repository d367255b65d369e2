package panel

import (
	"fmt"

	"github.com/flashingpumpkin/splitter/internal/diag"
	perrors "github.com/flashingpumpkin/splitter/internal/errors"
	"github.com/flashingpumpkin/splitter/internal/layout"
	"github.com/flashingpumpkin/splitter/internal/size"
)

// Decl declares one panel. Size fields are size strings; an empty string
// means the value is absent.
type Decl struct {
	ID               string `toml:"id" yaml:"id"`
	Title            string `toml:"title" yaml:"title"`
	DefaultSize      string `toml:"default_size" yaml:"default_size"`
	MinSize          string `toml:"min_size" yaml:"min_size"`
	MaxSize          string `toml:"max_size" yaml:"max_size"`
	CollapsedSize    string `toml:"collapsed_size" yaml:"collapsed_size"`
	DefaultCollapsed bool   `toml:"default_collapsed" yaml:"default_collapsed"`
}

// Name returns the title, falling back to the ID.
func (d Decl) Name() string {
	if d.Title != "" {
		return d.Title
	}
	return d.ID
}

// parsed is a declaration with its size strings parsed once.
type parsed struct {
	decl        Decl
	size        size.Spec
	bounds      layout.ConstraintSpec
	collapsed   size.Spec
	collapsible bool
}

// parseDecl parses every size string of d. Bare numbers are reported to r.
func parseDecl(r diag.Reporter, i int, d Decl) (parsed, error) {
	p := parsed{decl: d}
	fields := []struct {
		name  string
		input string
		dst   *size.Spec
	}{
		{"default_size", d.DefaultSize, &p.size},
		{"min_size", d.MinSize, &p.bounds.Min},
		{"max_size", d.MaxSize, &p.bounds.Max},
		{"collapsed_size", d.CollapsedSize, &p.collapsed},
	}
	for _, f := range fields {
		spec, err := size.ParseWith(r, i, f.input)
		if err != nil {
			return parsed{}, fmt.Errorf("panel %d (%s) %s: %w", i, d.Name(), f.name, err)
		}
		*f.dst = spec
	}

	// "auto" has no meaning as a collapsed size, so only a real length
	// makes the panel collapsible.
	p.collapsible = !p.collapsed.IsAuto()
	if d.DefaultCollapsed && !p.collapsible {
		return parsed{}, fmt.Errorf("panel %d (%s) default_collapsed: %w", i, d.Name(), perrors.ErrNotCollapsible)
	}
	return p, nil
}
