// Package panel ties the sizing engine together for a host.
//
// A Group owns the ordered panel entries of one layout. The host feeds it
// the container size and interaction events, and reads back the solved
// lengths.
package panel

import (
	"fmt"
	"math"

	"github.com/flashingpumpkin/splitter/internal/diag"
	"github.com/flashingpumpkin/splitter/internal/drag"
	perrors "github.com/flashingpumpkin/splitter/internal/errors"
	"github.com/flashingpumpkin/splitter/internal/layout"
	"github.com/flashingpumpkin/splitter/internal/size"
)

// CollapseFunc is called when a panel collapses or expands.
type CollapseFunc func(index int, collapsed bool)

// Group is a set of panels along one axis.
// It is not safe for concurrent use.
type Group struct {
	panels  []parsed
	bounds  []layout.ConstraintSpec
	entries []layout.Entry

	// expandTo is the length a collapsed panel returns to on Expand.
	expandTo []float64

	containerPx float64
	result      layout.Result

	controller *drag.Controller
	reporter   diag.Reporter
	onCollapse CollapseFunc

	guard     drag.Guard
	step      float64
	largeStep float64
}

// Option configures a Group.
type Option func(*Group)

// WithReporter sets the diagnostics reporter.
func WithReporter(r diag.Reporter) Option {
	return func(g *Group) {
		if r != nil {
			g.reporter = r
		}
	}
}

// WithCollapseHandler sets the collapse notification callback.
func WithCollapseHandler(fn CollapseFunc) Option {
	return func(g *Group) {
		g.onCollapse = fn
	}
}

// WithGuard sets the presentation guard held while a drag is active.
func WithGuard(guard drag.Guard) Option {
	return func(g *Group) {
		g.guard = guard
	}
}

// WithKeySteps sets the keyboard step sizes.
func WithKeySteps(step, large float64) Option {
	return func(g *Group) {
		g.step = step
		g.largeStep = large
	}
}

// NewGroup parses the declarations and returns a Group with no container
// size yet. An invalid size string fails immediately.
func NewGroup(decls []Decl, opts ...Option) (*Group, error) {
	g := &Group{reporter: diag.Nop}
	for _, opt := range opts {
		opt(g)
	}

	g.panels = make([]parsed, len(decls))
	g.bounds = make([]layout.ConstraintSpec, len(decls))
	g.entries = make([]layout.Entry, len(decls))
	g.expandTo = make([]float64, len(decls))
	for i, d := range decls {
		p, err := parseDecl(g.reporter, i, d)
		if err != nil {
			return nil, err
		}
		g.panels[i] = p
		g.bounds[i] = p.bounds
		g.entries[i] = layout.Entry{
			Declared:    p.size,
			Collapsible: p.collapsible,
			Collapsed:   d.DefaultCollapsed,
		}
	}

	g.controller = drag.NewController(
		drag.WithGuard(g.guard),
		drag.WithKeySteps(g.step, g.largeStep),
		drag.WithCollapseHandler(g.collapseChanged),
	)
	return g, nil
}

// Len returns the number of panels.
func (g *Group) Len() int {
	return len(g.panels)
}

// Decl returns the declaration of panel i.
func (g *Group) Decl(i int) Decl {
	return g.panels[i].decl
}

// Container returns the last container size.
func (g *Group) Container() float64 {
	return g.containerPx
}

// Layout returns the last solved layout.
func (g *Group) Layout() layout.Result {
	return g.result
}

// Sizes returns a copy of the solved lengths.
func (g *Group) Sizes() []float64 {
	return append([]float64(nil), g.result.Sizes...)
}

// Entries returns a copy of the panel entries.
func (g *Group) Entries() []layout.Entry {
	return append([]layout.Entry(nil), g.entries...)
}

// Collapsed reports whether panel i is collapsed.
func (g *Group) Collapsed(i int) bool {
	return i >= 0 && i < len(g.entries) && g.entries[i].Collapsed
}

// Collapsible reports whether panel i declares a collapsed size.
func (g *Group) Collapsible(i int) bool {
	return i >= 0 && i < len(g.entries) && g.entries[i].Collapsible
}

// Declared returns the current declared size of panel i. Drags and
// collapse changes rewrite it.
func (g *Group) Declared(i int) size.Spec {
	return g.entries[i].Declared
}

// Dragging reports whether a drag session is active.
func (g *Group) Dragging() bool {
	return g.controller.State() == drag.Active
}

// SetContainerSize resolves the constraints for a new container size and
// solves the layout. An active drag is ended first, keeping its sizes.
func (g *Group) SetContainerSize(px float64) layout.Result {
	if g.Dragging() {
		g.DragEnd()
	}
	if math.IsNaN(px) || px < 0 {
		px = 0
	}
	g.containerPx = px

	pcs, diags := layout.ResolveAll(g.bounds, px)
	diag.Emit(g.reporter, diags...)
	for i := range g.entries {
		g.entries[i].Constraint = pcs[i]
		if g.panels[i].collapsible {
			g.entries[i].CollapsedPx = math.Max(0, g.panels[i].collapsed.Resolve(px, 0))
		}
	}
	return g.relayout()
}

// DragStart begins a drag on the handle between panels handle and
// handle+1. Deltas passed to Drag are measured from this point.
func (g *Group) DragStart(handle int) error {
	return g.Press(handle, 0)
}

// Drag applies a delta, cumulative from DragStart. Positive values grow
// the panel before the handle.
func (g *Group) Drag(delta float64) (layout.Result, error) {
	return g.Move(delta)
}

// DragEnd finishes the drag and keeps the new sizes.
func (g *Group) DragEnd() error {
	return g.Release()
}

// Press begins a drag anchored at the pointer position pos.
func (g *Group) Press(handle int, pos float64) error {
	return g.controller.Start(g.entries, handle, pos)
}

// Move applies the pointer position pos to the active drag.
func (g *Group) Move(pos float64) (layout.Result, error) {
	if _, err := g.controller.Move(g.entries, pos); err != nil {
		return g.result, err
	}
	return g.relayout(), nil
}

// Release finishes the drag at the last applied position.
func (g *Group) Release() error {
	s, ok := g.controller.Session()
	if err := g.controller.End(); err != nil {
		return err
	}
	if ok {
		g.persist(s.Before, s.After)
		g.relayout()
	}
	return nil
}

// Cancel finishes the drag and restores the state it started from.
func (g *Group) Cancel() error {
	if err := g.controller.Cancel(g.entries); err != nil {
		return err
	}
	g.relayout()
	return nil
}

// Step moves a handle by one keyboard step in dir.
func (g *Group) Step(handle int, dir drag.Direction, large bool) (layout.Result, error) {
	pair, err := g.controller.Step(g.entries, handle, dir, large)
	return g.afterKey(pair, err)
}

// Jump moves a handle as far as the two panels allow in dir.
func (g *Group) Jump(handle int, dir drag.Direction) (layout.Result, error) {
	pair, err := g.controller.Jump(g.entries, handle, dir)
	return g.afterKey(pair, err)
}

func (g *Group) afterKey(pair drag.Pair, err error) (layout.Result, error) {
	if err != nil {
		return g.result, err
	}
	g.persist(pair.Before, pair.After)
	return g.relayout(), nil
}

// Collapse collapses panel i. The freed length goes to the neighbouring
// panel, after it when there is one.
func (g *Group) Collapse(i int) (layout.Result, error) {
	if err := g.checkToggle(i); err != nil {
		return g.result, err
	}
	e := &g.entries[i]
	if e.Collapsed {
		return g.result, nil
	}

	g.expandTo[i] = e.CurrentPx
	g.transfer(i, e.CurrentPx-e.CollapsedPx)
	e.Collapsed = true
	e.CurrentPx = e.CollapsedPx
	g.notify(i, true)
	return g.relayout(), nil
}

// Expand expands panel i back to its length before it collapsed, or to its
// minimum when that is unknown. The neighbouring panel gives up the length.
func (g *Group) Expand(i int) (layout.Result, error) {
	if err := g.checkToggle(i); err != nil {
		return g.result, err
	}
	e := &g.entries[i]
	if !e.Collapsed {
		return g.result, nil
	}

	target := e.Constraint.Clamp(math.Max(g.expandTo[i], e.Constraint.Floor()))
	g.transfer(i, e.CollapsedPx-target)
	e.Collapsed = false
	e.CurrentPx = target
	e.Declared = g.settled(i, target)
	g.notify(i, false)
	return g.relayout(), nil
}

// Toggle collapses panel i if it is expanded and expands it otherwise.
func (g *Group) Toggle(i int) (layout.Result, error) {
	if g.Collapsed(i) {
		return g.Expand(i)
	}
	return g.Collapse(i)
}

// Close ends any active drag. It is safe to call more than once.
func (g *Group) Close() {
	g.controller.Close()
}

func (g *Group) checkToggle(i int) error {
	if i < 0 || i >= len(g.entries) {
		return fmt.Errorf("%w: %d with %d panels", perrors.ErrPanelOutOfRange, i, len(g.entries))
	}
	if g.Dragging() {
		return perrors.ErrSessionActive
	}
	if !g.entries[i].Collapsible {
		return fmt.Errorf("panel %d (%s): %w", i, g.panels[i].decl.Name(), perrors.ErrNotCollapsible)
	}
	return nil
}

// transfer gives amount to the neighbour of panel i. Auto neighbours are
// left alone; the solver hands them the freed length.
func (g *Group) transfer(i int, amount float64) {
	n := i + 1
	if n >= len(g.entries) {
		n = i - 1
	}
	if n < 0 {
		return
	}
	e := &g.entries[n]
	if e.Declared.IsAuto() || e.Collapsed {
		return
	}
	px := math.Max(0, e.Constraint.Clamp(e.CurrentPx+amount))
	e.CurrentPx = px
	e.Declared = g.persisted(n, px)
}

// persist rewrites the pixel overrides a drag left on panels i and j in
// the unit each panel was declared in.
func (g *Group) persist(i, j int) {
	for _, k := range [2]int{i, j} {
		if g.entries[k].Collapsed {
			continue
		}
		g.entries[k].Declared = g.settled(k, g.entries[k].CurrentPx)
	}
}

// settled is persisted for a panel the user resized. An auto panel stays
// auto while no other expanded panel is, so later container sizes still
// have a panel to absorb them.
func (g *Group) settled(i int, px float64) size.Spec {
	if g.panels[i].size.IsAuto() && !g.hasFlexible(i) {
		return size.Auto()
	}
	return g.persisted(i, px)
}

// hasFlexible reports whether an expanded panel other than skip is auto.
func (g *Group) hasFlexible(skip int) bool {
	for i, e := range g.entries {
		if i != skip && !e.Collapsed && e.Declared.IsAuto() {
			return true
		}
	}
	return false
}

// persisted returns the declared size for a length px of panel i: percent
// panels stay proportional to the container, all others become pixels.
func (g *Group) persisted(i int, px float64) size.Spec {
	if g.panels[i].size.Unit == size.UnitPercent && g.containerPx > 0 {
		return size.Percent(px * 100 / g.containerPx)
	}
	return size.Px(px)
}

// collapseChanged is the drag controller's collapse callback.
func (g *Group) collapseChanged(i int, collapsed bool) {
	if collapsed {
		if s, ok := g.controller.Session(); ok {
			start := s.StartSizes[0]
			if i == s.After {
				start = s.StartSizes[1]
			}
			if start > g.entries[i].CollapsedPx {
				g.expandTo[i] = start
			}
		}
	}
	g.notify(i, collapsed)
}

func (g *Group) notify(i int, collapsed bool) {
	if g.onCollapse != nil {
		g.onCollapse(i, collapsed)
	}
}

// relayout solves the entries, stores the sizes and reports diagnostics.
func (g *Group) relayout() layout.Result {
	r := layout.SolveEntries(g.entries, g.containerPx)
	layout.Commit(g.entries, r)
	diag.Emit(g.reporter, r.Diagnostics...)
	g.result = r
	return r
}
