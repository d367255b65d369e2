package tui

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/flashingpumpkin/splitter/internal/panel"
)

func testOptions() Options {
	return Options{
		Title: "test.toml",
		Panels: []panel.Decl{
			{ID: "left", Title: "Left", DefaultSize: "30px", MinSize: "10px", CollapsedSize: "2px"},
			{ID: "main", Title: "Main"},
			{ID: "right", Title: "Right", DefaultSize: "20px"},
		},
		Theme:            ThemeDark,
		KeyStep:          1,
		KeyLargeStep:     5,
		ThrottleInterval: 10 * time.Millisecond,
	}
}

// newReadyModel returns a model sized to a 102x20 terminal: a 100 cell
// container split 30/50/20 with dividers at x=30 and x=81.
func newReadyModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(testOptions())
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return update(t, m, tea.WindowSizeMsg{Width: 102, Height: 20})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func expectPixels(t *testing.T, m Model, want []int) {
	t.Helper()
	if got := m.Pixels(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected pixels %v, got %v", want, got)
	}
}

func lastStatus(m Model) string {
	status := m.Status()
	if len(status) == 0 {
		return ""
	}
	return status[len(status)-1]
}

func TestNewModel(t *testing.T) {
	m, err := NewModel(testOptions())
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	if m.ready {
		t.Error("expected model not to be ready initially")
	}
	if m.Dragging() {
		t.Error("expected no drag initially")
	}
	if len(m.Status()) != 0 {
		t.Errorf("expected empty status, got %v", m.Status())
	}
}

func TestNewModelInvalidPanels(t *testing.T) {
	opts := testOptions()
	opts.Panels = []panel.Decl{{ID: "bad", DefaultSize: "12pt"}}

	if _, err := NewModel(opts); err == nil {
		t.Error("expected an error for an invalid size")
	}
}

func TestModelInit(t *testing.T) {
	m, _ := NewModel(testOptions())
	if m.Init() == nil {
		t.Error("expected Init() to return the frame listener")
	}
}

func TestModelUpdateWindowSize(t *testing.T) {
	m, _ := NewModel(testOptions())

	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 102, Height: 20})
	model := updated.(Model)

	if cmd != nil {
		t.Error("expected no command from window size update")
	}
	if !model.ready {
		t.Error("expected model to be ready after window size message")
	}
	if model.layout.Container() != 100 {
		t.Errorf("expected container 100, got %d", model.layout.Container())
	}
	expectPixels(t, model, []int{30, 50, 20})

	model = update(t, model, tea.WindowSizeMsg{Width: 122, Height: 20})
	expectPixels(t, model, []int{30, 70, 20})
}

func TestModelUpdateWindowSizeTooSmall(t *testing.T) {
	m, _ := NewModel(testOptions())
	m = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 20})

	if m.Pixels() != nil {
		t.Errorf("expected no pixels, got %v", m.Pixels())
	}
	if view := m.View(); !strings.Contains(view, "too narrow") {
		t.Errorf("expected 'too narrow' message, got %q", view)
	}
}

func TestModelUpdateQuit(t *testing.T) {
	m := newReadyModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command from 'q' key")
	}
}

func TestModelKeyboardSteps(t *testing.T) {
	m := newReadyModel(t)

	steps := []struct {
		name string
		msg  tea.KeyMsg
		want []int
	}{
		{"grow", tea.KeyMsg{Type: tea.KeyRight}, []int{31, 49, 20}},
		{"shrink with h", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}}, []int{30, 50, 20}},
		{"grow large", tea.KeyMsg{Type: tea.KeyShiftRight}, []int{35, 45, 20}},
		{"shrink large", tea.KeyMsg{Type: tea.KeyShiftLeft}, []int{30, 50, 20}},
		{"next divider then shrink", tea.KeyMsg{Type: tea.KeyTab}, []int{30, 50, 20}},
		{"shrink second divider", tea.KeyMsg{Type: tea.KeyLeft}, []int{30, 49, 21}},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, []int{30, 70, 0}},
	}

	for _, step := range steps {
		m = update(t, m, step.msg)
		if got := m.Pixels(); !reflect.DeepEqual(got, step.want) {
			t.Fatalf("%s: expected pixels %v, got %v", step.name, step.want, got)
		}
	}

	if m.Selected() != 1 {
		t.Errorf("expected divider 1 selected, got %d", m.Selected())
	}
}

func TestModelDividerSelectionWraps(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Selected() != 1 {
		t.Errorf("expected shift+tab to wrap to divider 1, got %d", m.Selected())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Selected() != 0 {
		t.Errorf("expected tab to wrap to divider 0, got %d", m.Selected())
	}
}

func TestModelToggle(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	expectPixels(t, m, []int{2, 78, 20})
	if !m.group.Collapsed(0) {
		t.Error("expected the left panel to collapse")
	}
	if got := lastStatus(m); got != "Left collapsed" {
		t.Errorf("expected status %q, got %q", "Left collapsed", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	expectPixels(t, m, []int{30, 50, 20})
	if got := lastStatus(m); got != "Left expanded" {
		t.Errorf("expected status %q, got %q", "Left expanded", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := lastStatus(m); !strings.Contains(got, "no collapsible panel") {
		t.Errorf("expected a status about no collapsible panel, got %q", got)
	}
}

func TestModelMouseDrag(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, press(30, 5))
	if !m.Dragging() {
		t.Fatal("expected a drag to start on the divider")
	}
	if !m.state.guardHeld {
		t.Error("expected the guard to be held while dragging")
	}

	// The first motion of a window runs immediately and signals a frame.
	m = update(t, m, motion(40, 5))
	expectPixels(t, m, []int{30, 50, 20})

	gen := <-m.frames
	m = update(t, m, dragFrameMsg{gen: gen})
	expectPixels(t, m, []int{40, 40, 20})

	m = update(t, m, release(45, 5))
	expectPixels(t, m, []int{45, 35, 20})
	if m.Dragging() {
		t.Error("expected the drag to end on release")
	}
	if m.state.guardHeld {
		t.Error("expected the guard to be released")
	}

	// A frame from the finished drag changes nothing.
	m = update(t, m, dragFrameMsg{gen: gen})
	expectPixels(t, m, []int{45, 35, 20})
}

func TestModelMousePressOffDivider(t *testing.T) {
	m := newReadyModel(t)

	tests := []struct {
		name string
		msg  tea.MouseMsg
	}{
		{"inside a panel", press(10, 5)},
		{"on the header", press(30, 0)},
		{"right button", tea.MouseMsg{X: 30, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}},
	}

	for _, tt := range tests {
		if got := update(t, m, tt.msg); got.Dragging() {
			t.Errorf("%s: expected no drag", tt.name)
		}
	}

	if got := update(t, m, motion(40, 5)); !reflect.DeepEqual(got.Pixels(), m.Pixels()) {
		t.Error("expected motion without a drag to change nothing")
	}
}

func TestModelMouseDragSelectsDivider(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, press(81, 3))
	if m.Selected() != 1 {
		t.Errorf("expected divider 1 selected, got %d", m.Selected())
	}
	m = update(t, m, release(71, 3))
	expectPixels(t, m, []int{30, 40, 30})
}

func TestModelKeysIgnoredWhileDragging(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, press(30, 5))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	expectPixels(t, m, []int{30, 50, 20})
}

func TestModelCancelDrag(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, press(30, 5))
	m = update(t, m, motion(50, 5))
	m = update(t, m, dragFrameMsg{gen: <-m.frames})
	expectPixels(t, m, []int{50, 30, 20})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	expectPixels(t, m, []int{30, 50, 20})
	if m.Dragging() {
		t.Error("expected esc to end the drag")
	}
	if m.state.guardHeld {
		t.Error("expected the guard to be released")
	}
	if got := lastStatus(m); got != "drag cancelled" {
		t.Errorf("expected status %q, got %q", "drag cancelled", got)
	}
}

func TestModelResizeEndsDrag(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, press(30, 5))
	m = update(t, m, tea.WindowSizeMsg{Width: 102, Height: 20})

	if m.Dragging() {
		t.Error("expected a resize to end the drag")
	}
	if m.state.guardHeld {
		t.Error("expected the guard to be released")
	}
}

func TestModelReload(t *testing.T) {
	m := newReadyModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = update(t, m, ReloadMsg{Panels: []panel.Decl{
		{ID: "a", DefaultSize: "25%"},
		{ID: "b"},
	}})

	expectPixels(t, m, []int{25, 76})
	if m.Selected() != 0 {
		t.Errorf("expected selection reset to 0, got %d", m.Selected())
	}
	if got := lastStatus(m); got != "layout reloaded" {
		t.Errorf("expected status %q, got %q", "layout reloaded", got)
	}
}

func TestModelReloadErrors(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, ReloadMsg{Err: errors.New("boom")})
	if got := lastStatus(m); !strings.Contains(got, "reload: boom") {
		t.Errorf("expected reload error in status, got %q", got)
	}

	m = update(t, m, ReloadMsg{Panels: []panel.Decl{{ID: "x", MinSize: "-5px"}}})
	if got := lastStatus(m); !strings.Contains(got, "reload") {
		t.Errorf("expected reload error in status, got %q", got)
	}
	expectPixels(t, m, []int{30, 50, 20})
}

func TestModelStatusDeduplicates(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, StatusMsg("watching"))
	m = update(t, m, StatusMsg("watching"))
	m = update(t, m, StatusMsg("changed"))

	if got := m.Status(); !reflect.DeepEqual(got, []string{"watching", "changed"}) {
		t.Errorf("expected deduplicated status, got %v", got)
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.help.ShowAll {
		t.Error("expected full help after '?'")
	}
	if lines := strings.Split(m.View(), "\n"); len(lines) != 20 {
		t.Errorf("expected 20 lines with full help, got %d", len(lines))
	}
}

func TestModelViewNotReady(t *testing.T) {
	m, _ := NewModel(testOptions())

	if view := m.View(); view != "Initializing..." {
		t.Errorf("expected 'Initializing...' when not ready, got %q", view)
	}
}

func TestModelViewFull(t *testing.T) {
	m := newReadyModel(t)
	m = update(t, m, StatusMsg("ready"))

	view := m.View()

	for _, want := range []string{"SPLITTER", "test.toml", "3 panels", "100 cells", "Left", "30px", "30 cells", "auto", "ready", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
	if lines := strings.Split(view, "\n"); len(lines) != 20 {
		t.Errorf("expected 20 lines, got %d", len(lines))
	}
}

func TestModelViewCollapsed(t *testing.T) {
	m := newReadyModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if view := m.View(); !strings.Contains(view, IconCollapsed) {
		t.Error("expected the collapsed icon in view")
	}
}

func TestModelViewVertical(t *testing.T) {
	opts := testOptions()
	opts.Vertical = true
	opts.Panels = []panel.Decl{
		{ID: "top", DefaultSize: "50%"},
		{ID: "bottom"},
	}
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 25})

	expectPixels(t, m, []int{10, 10})
	if lines := strings.Split(m.View(), "\n"); len(lines) != 25 {
		t.Errorf("expected 25 lines, got %d", len(lines))
	}

	// The divider sits on row 11 (body row 10).
	m = update(t, m, press(5, 11))
	m = update(t, m, release(5, 14))
	expectPixels(t, m, []int{13, 7})
}

func TestModelViewOverflowIsClipped(t *testing.T) {
	opts := testOptions()
	opts.Vertical = true
	m, _ := NewModel(opts)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})

	if lines := strings.Split(m.View(), "\n"); len(lines) != 20 {
		t.Errorf("expected 20 lines, got %d", len(lines))
	}
}

func TestSignalReplacesStaleFrame(t *testing.T) {
	frames := make(chan int, 1)

	signal(frames, 1)
	signal(frames, 2)

	if got := <-frames; got != 2 {
		t.Errorf("expected the latest frame 2, got %d", got)
	}
	select {
	case got := <-frames:
		t.Errorf("expected one queued frame, got another %d", got)
	default:
	}
}
