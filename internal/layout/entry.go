package layout

import "github.com/flashingpumpkin/splitter/internal/size"

// Entry is the per-panel state of a layout.
// Entries are kept in declaration order; that order defines which panels
// are adjacent and never changes.
type Entry struct {
	Declared   size.Spec
	Constraint PixelConstraint
	CurrentPx  float64

	// Collapsible is set when the panel declares a collapsed size.
	Collapsible bool
	Collapsed   bool
	CollapsedPx float64
}

// Effective returns the size and constraint the solver should use.
// A collapsed panel is pinned to its collapsed size.
func (e Entry) Effective() (size.Spec, PixelConstraint) {
	if e.Collapsed {
		return size.Px(e.CollapsedPx), Bounds(e.CollapsedPx, e.CollapsedPx)
	}
	return e.Declared, e.Constraint
}

// CollapseThreshold is the length at or below which a collapsible panel
// snaps to its collapsed size: half of its minimum.
func (e Entry) CollapseThreshold() float64 {
	return e.Constraint.Floor() / 2
}

// SolveEntries solves the layout described by entries.
func SolveEntries(entries []Entry, containerPx float64) Result {
	declared := make([]size.Spec, len(entries))
	constraints := make([]PixelConstraint, len(entries))
	for i, e := range entries {
		declared[i], constraints[i] = e.Effective()
	}
	return SolveWithPixelConstraints(declared, containerPx, constraints)
}

// Commit stores the result's sizes as the entries' current lengths.
func Commit(entries []Entry, r Result) {
	for i := range entries {
		if i < len(r.Sizes) {
			entries[i].CurrentPx = r.Sizes[i]
		}
	}
}
