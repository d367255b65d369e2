package tui

// MinTerminalWidth is the minimum supported terminal width.
const MinTerminalWidth = 20

// MinTerminalHeight is the minimum supported terminal height.
const MinTerminalHeight = 8

// Region heights (number of lines)
const (
	// HeaderHeight is the height of the header line (brand + layout summary).
	HeaderHeight = 1

	// StatusHeight is the number of status log lines shown above the help bar.
	StatusHeight = 2

	// HelpBarHeight is the height of the short help bar at the bottom.
	HelpBarHeight = 1

	// DividerSize is the number of cells a divider takes along the axis.
	DividerSize = 1
)

// Layout represents the calculated dimensions for each UI region.
type Layout struct {
	Width  int
	Height int

	// Vertical stacks the panels top to bottom instead of side by side.
	Vertical bool

	// Panels is the number of panels in the body.
	Panels int

	// Body is the panel region.
	BodyTop    int
	BodyWidth  int
	BodyHeight int

	// TooSmall indicates the terminal cannot fit the panels
	TooSmall bool

	// TooSmallMessage is shown when terminal is too small
	TooSmallMessage string
}

// CalculateLayout computes the layout based on terminal dimensions and panel count.
func CalculateLayout(width, height, panels int, vertical bool) Layout {
	layout := Layout{
		Width:      width,
		Height:     height,
		Vertical:   vertical,
		Panels:     panels,
		BodyTop:    HeaderHeight,
		BodyWidth:  width,
		BodyHeight: height - HeaderHeight - StatusHeight - HelpBarHeight,
	}

	if width < MinTerminalWidth {
		layout.TooSmall = true
		layout.TooSmallMessage = "Terminal too narrow. Minimum width: 20 columns."
		return layout
	}

	if height < MinTerminalHeight {
		layout.TooSmall = true
		layout.TooSmallMessage = "Terminal too short. Minimum height: 8 rows."
		return layout
	}

	if layout.Container() < 0 {
		layout.TooSmall = true
		layout.TooSmallMessage = "Too many panels for this terminal."
		return layout
	}

	return layout
}

// Extent returns the body length along the panel axis.
func (l Layout) Extent() int {
	if l.Vertical {
		return l.BodyHeight
	}
	return l.BodyWidth
}

// CrossExtent returns the body length across the panel axis.
func (l Layout) CrossExtent() int {
	if l.Vertical {
		return l.BodyWidth
	}
	return l.BodyHeight
}

// Dividers returns the number of dividers between the panels.
func (l Layout) Dividers() int {
	if l.Panels < 2 {
		return 0
	}
	return l.Panels - 1
}

// Container returns the length shared by the panels: the body extent
// minus the cells taken by dividers.
func (l Layout) Container() int {
	return l.Extent() - l.Dividers()*DividerSize
}

// Axis converts a terminal position into an offset along the panel axis,
// relative to the start of the body.
func (l Layout) Axis(x, y int) int {
	if l.Vertical {
		return y - l.BodyTop
	}
	return x
}

// InBody reports whether the terminal position lies inside the body.
func (l Layout) InBody(x, y int) bool {
	return x >= 0 && x < l.BodyWidth && y >= l.BodyTop && y < l.BodyTop+l.BodyHeight
}

// DividerOffsets returns the axis offset of each divider for the given
// panel lengths.
func DividerOffsets(pixels []int) []int {
	if len(pixels) < 2 {
		return nil
	}
	offsets := make([]int, len(pixels)-1)
	pos := 0
	for i := range offsets {
		pos += pixels[i]
		offsets[i] = pos
		pos += DividerSize
	}
	return offsets
}

// HandleAt returns the divider under the terminal position, if any.
func (l Layout) HandleAt(pixels []int, x, y int) (int, bool) {
	if l.TooSmall || !l.InBody(x, y) {
		return 0, false
	}
	pos := l.Axis(x, y)
	for i, off := range DividerOffsets(pixels) {
		if pos >= off && pos < off+DividerSize {
			return i, true
		}
	}
	return 0, false
}
