// Package drag turns pointer and keyboard input into size changes for the
// two panels flanking a resize handle.
//
// A [Controller] owns at most one [Session]. Every move recomputes the pair
// from the anchor captured at start, never from the previous move, so the
// result of a move depends only on the cumulative delta.
package drag

import (
	"fmt"

	perrors "github.com/flashingpumpkin/splitter/internal/errors"
	"github.com/flashingpumpkin/splitter/internal/layout"
	"github.com/flashingpumpkin/splitter/internal/size"
)

// State is the controller state.
type State int

const (
	Idle State = iota
	Active
)

// String returns the state name.
func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Default keyboard steps.
const (
	DefaultKeyStep      = 10
	DefaultKeyLargeStep = 50
)

// Direction is the direction of a keyboard step.
type Direction int

const (
	// Backward shrinks the panel before the handle.
	Backward Direction = -1
	// Forward grows the panel before the handle.
	Forward Direction = 1
)

// Session is the state of one drag interaction.
type Session struct {
	Before int
	After  int

	StartSizes     [2]float64
	StartCollapsed [2]bool
	StartDeclared  [2]size.Spec
	Anchor         float64

	// Delta is the cumulative delta of the last applied move.
	Delta float64
}

// Pair is the outcome of a move for the two panels of the session.
type Pair struct {
	Before    int
	After     int
	Sizes     [2]float64
	Collapsed [2]bool
}

// CollapseFunc is called once per collapse state transition.
type CollapseFunc func(index int, collapsed bool)

// Controller runs drag sessions over a slice of layout entries.
// It is not safe for concurrent use.
type Controller struct {
	guard      Guard
	onCollapse CollapseFunc
	step       float64
	largeStep  float64

	session *Session
}

// Option configures a Controller.
type Option func(*Controller)

// WithGuard sets the presentation guard held for the duration of a session.
func WithGuard(g Guard) Option {
	return func(c *Controller) {
		if g != nil {
			c.guard = g
		}
	}
}

// WithCollapseHandler sets the collapse transition callback.
func WithCollapseHandler(fn CollapseFunc) Option {
	return func(c *Controller) {
		c.onCollapse = fn
	}
}

// WithKeySteps sets the keyboard step sizes. Non-positive values keep the defaults.
func WithKeySteps(step, large float64) Option {
	return func(c *Controller) {
		if step > 0 {
			c.step = step
		}
		if large > 0 {
			c.largeStep = large
		}
	}
}

// NewController creates an idle Controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		guard:     NopGuard{},
		step:      DefaultKeyStep,
		largeStep: DefaultKeyLargeStep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns Active while a session is in progress.
func (c *Controller) State() State {
	if c.session != nil {
		return Active
	}
	return Idle
}

// Session returns a copy of the active session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Start begins a session on the handle between panels handle and handle+1.
// anchor is the pointer position the following moves are measured from.
func (c *Controller) Start(entries []layout.Entry, handle int, anchor float64) error {
	if c.session != nil {
		return perrors.ErrSessionActive
	}
	if handle < 0 || handle+1 >= len(entries) {
		return fmt.Errorf("%w: %d with %d panels", perrors.ErrHandleOutOfRange, handle, len(entries))
	}

	before, after := entries[handle], entries[handle+1]
	s := &Session{
		Before:         handle,
		After:          handle + 1,
		StartSizes:     [2]float64{before.CurrentPx, after.CurrentPx},
		StartCollapsed: [2]bool{before.Collapsed, after.Collapsed},
		StartDeclared:  [2]size.Spec{before.Declared, after.Declared},
		Anchor:         anchor,
	}

	c.guard.Acquire()
	c.session = s
	return nil
}

// Move applies the pointer position pos. The delta is pos minus the
// anchor. Only the two entries of the session are written: their lengths
// become pixel overrides and their collapse state is updated.
func (c *Controller) Move(entries []layout.Entry, pos float64) (pair Pair, err error) {
	s := c.session
	if s == nil {
		return Pair{}, perrors.ErrNoSession
	}

	defer func() {
		if r := recover(); r != nil {
			c.finish()
			panic(r)
		}
	}()

	delta := pos - s.Anchor
	before := side{entry: entries[s.Before], start: s.StartSizes[0], startCollapsed: s.StartCollapsed[0]}
	after := side{entry: entries[s.After], start: s.StartSizes[1], startCollapsed: s.StartCollapsed[1]}
	sizes, collapsed := resolvePair(before, after, delta)

	for k, i := range [2]int{s.Before, s.After} {
		declared := size.Px(sizes[k])
		if sizes[k] == s.StartSizes[k] && collapsed[k] == s.StartCollapsed[k] {
			declared = s.StartDeclared[k]
		}
		c.apply(entries, i, sizes[k], collapsed[k], declared)
	}
	s.Delta = delta

	return Pair{Before: s.Before, After: s.After, Sizes: sizes, Collapsed: collapsed}, nil
}

// End finishes the session, keeping the current sizes.
func (c *Controller) End() error {
	if c.session == nil {
		return perrors.ErrNoSession
	}
	c.finish()
	return nil
}

// Cancel finishes the session and restores the pair to its start state.
func (c *Controller) Cancel(entries []layout.Entry) error {
	s := c.session
	if s == nil {
		return perrors.ErrNoSession
	}
	defer c.finish()

	for k, i := range [2]int{s.Before, s.After} {
		c.apply(entries, i, s.StartSizes[k], s.StartCollapsed[k], s.StartDeclared[k])
	}
	return nil
}

// Close ends any active session. It is the teardown path and is safe to
// call any number of times.
func (c *Controller) Close() {
	if c.session != nil {
		c.finish()
	}
}

// Step runs a complete one-step session for a key press.
func (c *Controller) Step(entries []layout.Entry, handle int, dir Direction, large bool) (Pair, error) {
	amount := c.step
	if large {
		amount = c.largeStep
	}
	return c.StepBy(entries, handle, float64(dir)*amount)
}

// Jump moves the handle as far as the pair allows in dir.
func (c *Controller) Jump(entries []layout.Entry, handle int, dir Direction) (Pair, error) {
	if handle < 0 || handle+1 >= len(entries) {
		return Pair{}, fmt.Errorf("%w: %d with %d panels", perrors.ErrHandleOutOfRange, handle, len(entries))
	}
	delta := entries[handle+1].CurrentPx
	if dir == Backward {
		delta = -entries[handle].CurrentPx
	}
	return c.StepBy(entries, handle, delta)
}

// StepBy runs start, one move by delta and end as a single unit.
// No session remains active afterwards.
func (c *Controller) StepBy(entries []layout.Entry, handle int, delta float64) (Pair, error) {
	if err := c.Start(entries, handle, 0); err != nil {
		return Pair{}, err
	}
	defer c.Close()
	return c.Move(entries, delta)
}

// apply writes one side of the pair and reports a collapse transition.
func (c *Controller) apply(entries []layout.Entry, i int, px float64, collapsed bool, declared size.Spec) {
	changed := entries[i].Collapsed != collapsed
	entries[i].CurrentPx = px
	entries[i].Collapsed = collapsed
	entries[i].Declared = declared
	if changed && c.onCollapse != nil {
		c.onCollapse(i, collapsed)
	}
}

// finish releases the guard and drops the session.
func (c *Controller) finish() {
	c.session = nil
	c.guard.Release()
}
