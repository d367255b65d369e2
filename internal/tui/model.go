package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/flashingpumpkin/splitter/internal/diag"
	"github.com/flashingpumpkin/splitter/internal/drag"
	"github.com/flashingpumpkin/splitter/internal/panel"
	"github.com/flashingpumpkin/splitter/internal/throttle"
	"github.com/flashingpumpkin/splitter/internal/util"
)

// Options configures the split-pane host.
type Options struct {
	// Title is shown in the header, typically the layout file name.
	Title string

	Panels   []panel.Decl
	Vertical bool

	// Theme must already be resolved to ThemeDark or ThemeLight.
	Theme Theme

	KeyStep          float64
	KeyLargeStep     float64
	ThrottleInterval time.Duration
}

// hostState is shared by every copy of a Model.
type hostState struct {
	// guardHeld is set while a drag session holds the presentation guard.
	guardHeld bool
	status    *StatusLog
}

// Model is the main bubbletea model for the split-pane host.
type Model struct {
	opts Options

	// Layout
	layout Layout
	group  *panel.Group
	pixels []int

	// Keyboard
	keys     keyMap
	help     help.Model
	selected int // Index of the selected divider

	// Pointer drag
	dragging   bool
	dragGen    int // Incremented whenever a drag ends; stale frames carry an older value
	pendingPos int // Latest pointer offset along the axis, applied on the next frame
	throttle   *throttle.Throttle
	frames     chan int

	styles Styles
	state  *hostState

	ready bool
}

// NewModel creates a new host model. Invalid panel declarations fail here.
func NewModel(opts Options) (Model, error) {
	m := Model{
		opts:     opts,
		keys:     newKeyMap(opts.Vertical),
		help:     help.New(),
		throttle: throttle.New(opts.ThrottleInterval),
		frames:   make(chan int, 1),
		styles:   GetStyles(opts.Theme),
		state:    &hostState{status: NewStatusLog(statusLogSize)},
	}
	m.help.Styles.ShortKey = m.styles.HelpKey
	m.help.Styles.ShortDesc = m.styles.HelpBar
	m.help.Styles.ShortSeparator = m.styles.HelpBar
	m.help.Styles.FullKey = m.styles.HelpKey
	m.help.Styles.FullDesc = m.styles.HelpBar
	m.help.Styles.FullSeparator = m.styles.HelpBar

	g, err := m.newGroup(opts.Panels)
	if err != nil {
		return Model{}, err
	}
	m.group = g
	m.opts.Panels = opts.Panels
	return m, nil
}

// newGroup builds a panel group wired to the host's status log and guard.
func (m Model) newGroup(decls []panel.Decl) (*panel.Group, error) {
	st := m.state
	return panel.NewGroup(decls,
		panel.WithKeySteps(m.opts.KeyStep, m.opts.KeyLargeStep),
		panel.WithGuard(drag.FuncGuard{
			OnAcquire: func() { st.guardHeld = true },
			OnRelease: func() { st.guardHeld = false },
		}),
		panel.WithCollapseHandler(func(i int, collapsed bool) {
			state := "expanded"
			if collapsed {
				state = "collapsed"
			}
			st.push(panelName(decls, i) + " " + state)
		}),
		panel.WithReporter(diag.ReporterFunc(func(d diag.Diagnostic) {
			st.push(IconWarning + " " + d.String())
		})),
	)
}

func (s *hostState) push(line string) {
	s.status.Add(line)
}

func panelName(decls []panel.Decl, i int) string {
	if i >= 0 && i < len(decls) {
		if name := decls[i].Name(); name != "" {
			return name
		}
	}
	return "panel " + util.IntToString(i+1)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

// waitForFrame turns the next throttled drag signal into a message.
func waitForFrame(frames <-chan int) tea.Cmd {
	return func() tea.Msg {
		return dragFrameMsg{gen: <-frames}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = CalculateLayout(msg.Width, msg.Height, m.group.Len(), m.opts.Vertical)
		m.help.Width = msg.Width
		m.ready = true
		m.stopDrag()
		m.resize()
		return m, nil

	case dragFrameMsg:
		if msg.gen == m.dragGen && m.dragging {
			m.group.Move(float64(m.pendingPos))
			m.refresh()
		}
		return m, waitForFrame(m.frames)

	case ReloadMsg:
		return m.reload(msg)

	case StatusMsg:
		m.state.push(string(msg))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopDrag()
		m.group.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.dragging {
			m.throttle.Stop()
			m.group.Cancel()
			m.dragging = false
			m.dragGen++
			m.refresh()
			m.state.push("drag cancelled")
		}
		return m, nil
	}

	if m.dragging || m.layout.Dividers() == 0 {
		return m, nil
	}

	var err error
	switch {
	case key.Matches(msg, m.keys.Next):
		m.selected = (m.selected + 1) % m.layout.Dividers()
	case key.Matches(msg, m.keys.Prev):
		m.selected = (m.selected + m.layout.Dividers() - 1) % m.layout.Dividers()
	case key.Matches(msg, m.keys.Shrink):
		_, err = m.group.Step(m.selected, drag.Backward, false)
	case key.Matches(msg, m.keys.Grow):
		_, err = m.group.Step(m.selected, drag.Forward, false)
	case key.Matches(msg, m.keys.ShrinkLarge):
		_, err = m.group.Step(m.selected, drag.Backward, true)
	case key.Matches(msg, m.keys.GrowLarge):
		_, err = m.group.Step(m.selected, drag.Forward, true)
	case key.Matches(msg, m.keys.Home):
		_, err = m.group.Jump(m.selected, drag.Backward)
	case key.Matches(msg, m.keys.End):
		_, err = m.group.Jump(m.selected, drag.Forward)
	case key.Matches(msg, m.keys.Toggle):
		if target, ok := m.toggleTarget(); ok {
			_, err = m.group.Toggle(target)
		} else {
			m.state.push("no collapsible panel next to this divider")
		}
	default:
		return m, nil
	}

	if err != nil {
		m.state.push(IconError + " " + err.Error())
	}
	m.refresh()
	return m, nil
}

// toggleTarget picks the collapsible panel next to the selected divider,
// preferring the one before it.
func (m Model) toggleTarget() (int, bool) {
	for _, i := range []int{m.selected, m.selected + 1} {
		if m.group.Collapsible(i) {
			return i, true
		}
	}
	return 0, false
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	pos := m.layout.Axis(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.dragging {
			return m, nil
		}
		handle, ok := m.layout.HandleAt(m.pixels, msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		if err := m.group.Press(handle, float64(pos)); err != nil {
			m.state.push(IconError + " " + err.Error())
			return m, nil
		}
		m.dragging = true
		m.selected = handle
		m.pendingPos = pos

	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
		m.pendingPos = pos
		gen, frames := m.dragGen, m.frames
		m.throttle.Do(func() { signal(frames, gen) })

	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.throttle.Stop()
		m.group.Move(float64(pos))
		m.group.Release()
		m.dragging = false
		m.dragGen++
		m.refresh()
	}
	return m, nil
}

// signal queues gen for the frame listener, replacing an unread older value.
func signal(frames chan int, gen int) {
	select {
	case frames <- gen:
		return
	default:
	}
	select {
	case <-frames:
	default:
	}
	select {
	case frames <- gen:
	default:
	}
}

// stopDrag ends a pointer drag at its last applied position.
func (m *Model) stopDrag() {
	if !m.dragging {
		return
	}
	m.throttle.Stop()
	m.group.Release()
	m.dragging = false
	m.dragGen++
}

func (m Model) reload(msg ReloadMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.state.push(IconError + " reload: " + msg.Err.Error())
		return m, nil
	}
	g, err := m.newGroup(msg.Panels)
	if err != nil {
		m.state.push(IconError + " reload: " + err.Error())
		return m, nil
	}

	m.stopDrag()
	m.group.Close()
	m.group = g
	m.opts.Panels = msg.Panels
	if m.ready {
		m.layout = CalculateLayout(m.layout.Width, m.layout.Height, g.Len(), m.opts.Vertical)
		m.resize()
	}
	if m.selected >= m.layout.Dividers() {
		m.selected = 0
	}
	m.state.push("layout reloaded")
	return m, nil
}

// resize hands the container size to the group.
func (m *Model) resize() {
	if m.layout.TooSmall {
		m.pixels = nil
		return
	}
	m.group.SetContainerSize(float64(m.layout.Container()))
	m.refresh()
}

// refresh recomputes the rounded panel lengths from the group.
func (m *Model) refresh() {
	m.pixels = m.group.Layout().Pixels()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.layout.TooSmall {
		return m.styles.TooSmallMessage.Render(m.layout.TooSmallMessage)
	}

	sections := []string{m.renderHeader(), m.renderBody()}
	if m.help.ShowAll {
		sections = append(sections, fitLines(m.help.View(m.keys), StatusHeight+HelpBarHeight, m.layout.Width))
	} else {
		sections = append(sections, m.renderStatus(), fitLines(m.help.View(m.keys), HelpBarHeight, m.layout.Width))
	}
	return strings.Join(sections, "\n")
}

// renderHeader renders the brand and a summary of the layout.
func (m Model) renderHeader() string {
	brand := IconBrand + " SPLITTER"
	direction := "horizontal"
	if m.opts.Vertical {
		direction = "vertical"
	}
	summary := direction + " · " + util.IntToString(m.group.Len()) + " panels · " + util.Cells(m.layout.Container())
	if m.opts.Title != "" {
		summary = m.opts.Title + " · " + summary
	}

	padding := m.layout.Width - ansi.StringWidth(brand) - ansi.StringWidth(summary)
	if padding < 1 {
		return fit(m.styles.Brand.Render(brand)+" "+m.styles.Label.Render(summary), m.layout.Width)
	}
	return m.styles.Brand.Render(brand) + strings.Repeat(" ", padding) + m.styles.Label.Render(summary)
}

// renderBody renders the panels and the dividers between them.
func (m Model) renderBody() string {
	if m.opts.Vertical {
		return m.renderStacked()
	}
	return m.renderSideBySide()
}

func (m Model) renderSideBySide() string {
	lines := make([]string, m.layout.BodyHeight)
	for row := range lines {
		var b strings.Builder
		for i, px := range m.pixels {
			b.WriteString(m.panelLine(i, row, px))
			if i < len(m.pixels)-1 {
				b.WriteString(m.dividerStyle(i).Render(m.dividerGlyph(i)))
			}
		}
		lines[row] = ansi.Truncate(b.String(), m.layout.BodyWidth, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStacked() string {
	width := m.layout.BodyWidth
	var lines []string
	for i, px := range m.pixels {
		for row := 0; row < px; row++ {
			lines = append(lines, m.panelLine(i, row, width))
		}
		if i < len(m.pixels)-1 {
			lines = append(lines, m.dividerStyle(i).Render(strings.Repeat(m.dividerGlyph(i), width)))
		}
	}
	// Overflowing layouts are cut at the body; short ones are padded.
	out := make([]string, m.layout.BodyHeight)
	copy(out, lines)
	return strings.Join(out, "\n")
}

// panelLine renders line row of panel i at the given width.
func (m Model) panelLine(i, row, width int) string {
	if width <= 0 {
		return ""
	}
	name := panelName(m.opts.Panels, i)

	if m.group.Collapsed(i) {
		if row != 0 {
			return strings.Repeat(" ", width)
		}
		return m.styles.PanelCollapsed.Render(fit(IconCollapsed+name, width))
	}

	switch row {
	case 0:
		return m.styles.PanelTitle.Render(fit(" "+name, width))
	case 1:
		return m.styles.Label.Render(fit(" "+m.group.Declared(i).String(), width))
	case 2:
		px := 0
		if i < len(m.pixels) {
			px = m.pixels[i]
		}
		return m.styles.Value.Render(fit(" "+util.Cells(px), width))
	default:
		return strings.Repeat(" ", width)
	}
}

func (m Model) dividerStyle(i int) lipgloss.Style {
	switch {
	case m.state.guardHeld:
		return m.styles.DividerActive
	case i == m.selected:
		return m.styles.DividerSelected
	default:
		return m.styles.Divider
	}
}

// dividerGlyph draws the selected and the dragged divider bold.
func (m Model) dividerGlyph(i int) string {
	bold := m.state.guardHeld || i == m.selected
	switch {
	case m.opts.Vertical && bold:
		return DividerHorizontalBold
	case m.opts.Vertical:
		return DividerHorizontal
	case bold:
		return DividerVerticalBold
	default:
		return DividerVertical
	}
}

// renderStatus renders the most recent status lines.
func (m Model) renderStatus() string {
	recent := m.state.status.Tail(StatusHeight)
	lines := make([]string, StatusHeight)
	for i := range lines {
		if i >= len(recent) {
			continue
		}
		line := fit(recent[i], m.layout.Width)
		switch {
		case strings.HasPrefix(recent[i], IconError):
			lines[i] = m.styles.Error.Render(line)
		case strings.HasPrefix(recent[i], IconWarning):
			lines[i] = m.styles.Warning.Render(line)
		default:
			lines[i] = m.styles.Label.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// fitLines returns exactly n lines of s, each at most width cells.
func fitLines(s string, n, width int) string {
	lines := strings.Split(s, "\n")
	out := make([]string, n)
	for i := range out {
		if i < len(lines) {
			out[i] = ansi.Truncate(lines[i], width, "…")
		}
	}
	return strings.Join(out, "\n")
}

// Selected returns the index of the selected divider.
func (m Model) Selected() int {
	return m.selected
}

// Dragging reports whether a pointer drag is in progress.
func (m Model) Dragging() bool {
	return m.dragging
}

// Pixels returns the rendered panel lengths.
func (m Model) Pixels() []int {
	return append([]int(nil), m.pixels...)
}

// Status returns the status log, oldest first.
func (m Model) Status() []string {
	return m.state.status.Lines()
}
