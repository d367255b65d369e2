package drag

import (
	"errors"
	"testing"

	perrors "github.com/flashingpumpkin/splitter/internal/errors"
	"github.com/flashingpumpkin/splitter/internal/layout"
	"github.com/flashingpumpkin/splitter/internal/size"
)

// threePanels returns 300 | 400 | 300 with no constraints.
func threePanels() []layout.Entry {
	return []layout.Entry{
		{Declared: size.Px(300), CurrentPx: 300},
		{Declared: size.Auto(), CurrentPx: 400},
		{Declared: size.Px(300), CurrentPx: 300},
	}
}

// collapsiblePair returns a 300px panel (min 200, collapsed 40) next to a 700px panel.
func collapsiblePair() []layout.Entry {
	return []layout.Entry{
		{
			Declared:    size.Px(300),
			Constraint:  layout.AtLeast(200),
			CurrentPx:   300,
			Collapsible: true,
			CollapsedPx: 40,
		},
		{Declared: size.Auto(), CurrentPx: 700},
	}
}

type countingGuard struct {
	acquired int
	released int
}

func (g *countingGuard) Acquire() { g.acquired++ }
func (g *countingGuard) Release() { g.released++ }

func TestController_StartMoveEnd(t *testing.T) {
	entries := threePanels()
	c := NewController()

	if err := c.Start(entries, 0, 100); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if c.State() != Active {
		t.Fatalf("State() = %v, want active", c.State())
	}

	pair, err := c.Move(entries, 150)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if pair.Sizes != [2]float64{350, 350} {
		t.Errorf("Sizes = %v, want [350 350]", pair.Sizes)
	}
	if entries[0].CurrentPx != 350 || entries[1].CurrentPx != 350 {
		t.Errorf("entries = %v, %v, want 350, 350", entries[0].CurrentPx, entries[1].CurrentPx)
	}

	if err := c.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if c.State() != Idle {
		t.Errorf("State() = %v after End, want idle", c.State())
	}
}

func TestController_DeltasAreAbsoluteFromAnchor(t *testing.T) {
	stepped := threePanels()
	c := NewController()
	if err := c.Start(stepped, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(stepped, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(stepped, 25); err != nil {
		t.Fatal(err)
	}
	_ = c.End()

	direct := threePanels()
	if err := c.Start(direct, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(direct, 25); err != nil {
		t.Fatal(err)
	}
	_ = c.End()

	for i := range stepped {
		if stepped[i].CurrentPx != direct[i].CurrentPx {
			t.Errorf("panel %d: stepped %v, direct %v", i, stepped[i].CurrentPx, direct[i].CurrentPx)
		}
	}
	if stepped[0].CurrentPx != 325 {
		t.Errorf("panel 0 = %v, want 325 (not 335)", stepped[0].CurrentPx)
	}
}

func TestController_OnlyPairIsWritten(t *testing.T) {
	entries := threePanels()
	c := NewController()
	if err := c.Start(entries, 1, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(entries, -50); err != nil {
		t.Fatal(err)
	}

	if entries[0].CurrentPx != 300 || entries[0].Declared.Unit != size.UnitPixels {
		t.Errorf("panel 0 changed: %+v", entries[0])
	}
	if entries[1].CurrentPx != 350 || entries[2].CurrentPx != 350 {
		t.Errorf("pair = %v, %v, want 350, 350", entries[1].CurrentPx, entries[2].CurrentPx)
	}
}

func TestController_MoveRespectsConstraints(t *testing.T) {
	entries := []layout.Entry{
		{Declared: size.Px(300), Constraint: layout.Bounds(200, 400), CurrentPx: 300},
		{Declared: size.Px(700), Constraint: layout.AtLeast(650), CurrentPx: 700},
	}
	c := NewController()
	if err := c.Start(entries, 0, 0); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		pos  float64
		want [2]float64
	}{
		{pos: 30, want: [2]float64{330, 670}},
		{pos: 90, want: [2]float64{350, 650}}, // after panel stops at its min
		{pos: -500, want: [2]float64{200, 800}},
		{pos: 0, want: [2]float64{300, 700}},
	}
	for _, tt := range tests {
		pair, err := c.Move(entries, tt.pos)
		if err != nil {
			t.Fatal(err)
		}
		if pair.Sizes != tt.want {
			t.Errorf("Move(%v) = %v, want %v", tt.pos, pair.Sizes, tt.want)
		}
		if pair.Sizes[0]+pair.Sizes[1] != 1000 {
			t.Errorf("Move(%v) total = %v, want 1000", tt.pos, pair.Sizes[0]+pair.Sizes[1])
		}
	}
}

func TestController_CollapseHysteresis(t *testing.T) {
	entries := collapsiblePair()
	var transitions []bool
	c := NewController(WithCollapseHandler(func(index int, collapsed bool) {
		if index != 0 {
			t.Errorf("transition for panel %d, want 0", index)
		}
		transitions = append(transitions, collapsed)
	}))

	if err := c.Start(entries, 0, 0); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		name      string
		pos       float64
		size      float64
		collapsed bool
	}{
		{name: "above min", pos: -50, size: 250},
		{name: "clamped at min", pos: -150, size: 200},
		{name: "just above threshold", pos: -199, size: 200},
		{name: "at threshold collapses", pos: -200, size: 40, collapsed: true},
		{name: "repeat at threshold", pos: -200, size: 40, collapsed: true},
		{name: "repeat again", pos: -200, size: 40, collapsed: true},
		{name: "further down", pos: -280, size: 40, collapsed: true},
		{name: "back to threshold", pos: -200, size: 40, collapsed: true},
		{name: "past threshold expands", pos: -199, size: 200},
		{name: "repeat expanded", pos: -199, size: 200},
	}

	for _, st := range steps {
		pair, err := c.Move(entries, st.pos)
		if err != nil {
			t.Fatalf("%s: Move() error = %v", st.name, err)
		}
		if pair.Sizes[0] != st.size || pair.Collapsed[0] != st.collapsed {
			t.Errorf("%s: panel 0 = %v collapsed=%v, want %v collapsed=%v",
				st.name, pair.Sizes[0], pair.Collapsed[0], st.size, st.collapsed)
		}
		if pair.Sizes[0]+pair.Sizes[1] != 1000 {
			t.Errorf("%s: pair total = %v, want 1000", st.name, pair.Sizes[0]+pair.Sizes[1])
		}
	}

	want := []bool{true, false}
	if len(transitions) != len(want) || transitions[0] != want[0] || transitions[1] != want[1] {
		t.Errorf("transitions = %v, want %v", transitions, want)
	}
}

func TestController_ExpandFromCollapsedSession(t *testing.T) {
	entries := collapsiblePair()
	entries[0].Collapsed = true
	entries[0].CurrentPx = 40
	entries[1].CurrentPx = 960

	var notified int
	c := NewController(WithCollapseHandler(func(int, bool) { notified++ }))
	if err := c.Start(entries, 0, 0); err != nil {
		t.Fatal(err)
	}

	// Growing to 100 keeps the panel collapsed.
	pair, _ := c.Move(entries, 60)
	if !pair.Collapsed[0] || pair.Sizes != [2]float64{40, 960} {
		t.Errorf("Move(60) = %+v, want still collapsed", pair)
	}

	// Growing past 100 snaps it to its minimum.
	pair, _ = c.Move(entries, 61)
	if pair.Collapsed[0] || pair.Sizes != [2]float64{200, 800} {
		t.Errorf("Move(61) = %+v, want expanded to 200", pair)
	}

	// Shrinking a collapsed panel is a no-op.
	pair, _ = c.Move(entries, -30)
	if !pair.Collapsed[0] || pair.Sizes != [2]float64{40, 960} {
		t.Errorf("Move(-30) = %+v, want collapsed at 40", pair)
	}

	if notified != 2 {
		t.Errorf("notifications = %d, want 2", notified)
	}
}

func TestController_CollapseNeedsRoomInPartner(t *testing.T) {
	entries := collapsiblePair()
	entries[1].Constraint = layout.AtMost(750)

	c := NewController()
	if err := c.Start(entries, 0, 0); err != nil {
		t.Fatal(err)
	}
	pair, _ := c.Move(entries, -250)
	if pair.Collapsed[0] {
		t.Fatalf("Move(-250) collapsed panel 0, partner cannot take 260px")
	}
	if pair.Sizes != [2]float64{250, 750} {
		t.Errorf("Move(-250) = %v, want [250 750]", pair.Sizes)
	}
}

func TestController_Guard(t *testing.T) {
	tests := []struct {
		name   string
		finish func(c *Controller, entries []layout.Entry)
	}{
		{"end", func(c *Controller, _ []layout.Entry) { _ = c.End() }},
		{"cancel", func(c *Controller, e []layout.Entry) { _ = c.Cancel(e) }},
		{"close", func(c *Controller, _ []layout.Entry) { c.Close() }},
		{"close twice", func(c *Controller, _ []layout.Entry) { c.Close(); c.Close() }},
		{"end then close", func(c *Controller, _ []layout.Entry) { _ = c.End(); c.Close() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &countingGuard{}
			c := NewController(WithGuard(g))
			entries := threePanels()

			if err := c.Start(entries, 0, 0); err != nil {
				t.Fatal(err)
			}
			if g.acquired != 1 || g.released != 0 {
				t.Fatalf("after Start: acquired=%d released=%d", g.acquired, g.released)
			}
			tt.finish(c, entries)
			if g.released != 1 {
				t.Errorf("released = %d, want 1", g.released)
			}
			if c.State() != Idle {
				t.Errorf("State() = %v, want idle", c.State())
			}
		})
	}
}

func TestController_GuardReleasedOnPanic(t *testing.T) {
	g := &countingGuard{}
	c := NewController(WithGuard(g))
	if err := c.Start(threePanels(), 1, 0); err != nil {
		t.Fatal(err)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Move() with a truncated slice did not panic")
			}
		}()
		_, _ = c.Move(threePanels()[:1], 10)
	}()

	if g.released != 1 {
		t.Errorf("released = %d, want 1", g.released)
	}
	if c.State() != Idle {
		t.Errorf("State() = %v, want idle", c.State())
	}
}

func TestController_Cancel(t *testing.T) {
	entries := collapsiblePair()
	var transitions []bool
	c := NewController(WithCollapseHandler(func(_ int, collapsed bool) {
		transitions = append(transitions, collapsed)
	}))

	if err := c.Start(entries, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Move(entries, -260); err != nil {
		t.Fatal(err)
	}
	if !entries[0].Collapsed {
		t.Fatal("panel 0 not collapsed")
	}
	if err := c.Cancel(entries); err != nil {
		t.Fatal(err)
	}

	if entries[0].Collapsed || entries[0].CurrentPx != 300 || entries[1].CurrentPx != 700 {
		t.Errorf("after Cancel = %+v, %+v, want start state", entries[0], entries[1])
	}
	if entries[1].Declared.Unit != size.UnitAuto {
		t.Errorf("panel 1 declared = %v, want auto restored", entries[1].Declared)
	}
	if len(transitions) != 2 || transitions[1] {
		t.Errorf("transitions = %v, want [true false]", transitions)
	}
}

func TestController_Errors(t *testing.T) {
	c := NewController()
	entries := threePanels()

	if _, err := c.Move(entries, 1); !errors.Is(err, perrors.ErrNoSession) {
		t.Errorf("Move() without Start error = %v, want ErrNoSession", err)
	}
	if err := c.End(); !errors.Is(err, perrors.ErrNoSession) {
		t.Errorf("End() without Start error = %v, want ErrNoSession", err)
	}
	if err := c.Cancel(entries); !errors.Is(err, perrors.ErrNoSession) {
		t.Errorf("Cancel() without Start error = %v, want ErrNoSession", err)
	}
	for _, h := range []int{-1, 2, 5} {
		if err := c.Start(entries, h, 0); !errors.Is(err, perrors.ErrHandleOutOfRange) {
			t.Errorf("Start(handle %d) error = %v, want ErrHandleOutOfRange", h, err)
		}
	}
	if err := c.Start(entries, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(entries, 1, 0); !errors.Is(err, perrors.ErrSessionActive) {
		t.Errorf("second Start() error = %v, want ErrSessionActive", err)
	}
}

func TestController_Step(t *testing.T) {
	tests := []struct {
		name  string
		dir   Direction
		large bool
		want  [2]float64
	}{
		{"forward", Forward, false, [2]float64{310, 390}},
		{"backward", Backward, false, [2]float64{290, 410}},
		{"forward large", Forward, true, [2]float64{350, 350}},
		{"backward large", Backward, true, [2]float64{250, 450}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &countingGuard{}
			c := NewController(WithGuard(g))
			entries := threePanels()

			pair, err := c.Step(entries, 0, tt.dir, tt.large)
			if err != nil {
				t.Fatalf("Step() error = %v", err)
			}
			if pair.Sizes != tt.want {
				t.Errorf("Sizes = %v, want %v", pair.Sizes, tt.want)
			}
			if c.State() != Idle {
				t.Errorf("State() = %v after Step, want idle", c.State())
			}
			if g.acquired != 1 || g.released != 1 {
				t.Errorf("guard acquired=%d released=%d, want 1/1", g.acquired, g.released)
			}
		})
	}
}

func TestController_KeyStepsOption(t *testing.T) {
	c := NewController(WithKeySteps(1, 5))
	entries := threePanels()

	pair, _ := c.Step(entries, 0, Forward, false)
	if pair.Sizes[0] != 301 {
		t.Errorf("small step = %v, want 301", pair.Sizes[0])
	}
	pair, _ = c.Step(entries, 0, Forward, true)
	if pair.Sizes[0] != 306 {
		t.Errorf("large step = %v, want 306", pair.Sizes[0])
	}
}

func TestController_StepRejectedWhileDragging(t *testing.T) {
	c := NewController()
	entries := threePanels()
	if err := c.Start(entries, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Step(entries, 1, Forward, false); !errors.Is(err, perrors.ErrSessionActive) {
		t.Errorf("Step() during drag error = %v, want ErrSessionActive", err)
	}
	if c.State() != Active {
		t.Errorf("State() = %v, want the pointer session to survive", c.State())
	}
}

func TestController_Jump(t *testing.T) {
	c := NewController()

	entries := threePanels()
	pair, err := c.Jump(entries, 0, Forward)
	if err != nil {
		t.Fatal(err)
	}
	if pair.Sizes != [2]float64{700, 0} {
		t.Errorf("Jump(Forward) = %v, want [700 0]", pair.Sizes)
	}

	entries = collapsiblePair()
	pair, _ = c.Jump(entries, 0, Backward)
	if !pair.Collapsed[0] || pair.Sizes != [2]float64{40, 960} {
		t.Errorf("Jump(Backward) = %+v, want collapsed panel 0", pair)
	}
}

func TestState_String(t *testing.T) {
	if Idle.String() != "idle" || Active.String() != "active" {
		t.Errorf("String() = %q, %q", Idle.String(), Active.String())
	}
}
