package tui

import "github.com/flashingpumpkin/splitter/internal/panel"

// dragFrameMsg asks the model to apply the latest pointer position of the
// drag identified by gen. Frames of a finished drag are dropped.
type dragFrameMsg struct {
	gen int
}

// ReloadMsg replaces the panel declarations, typically after the layout
// file changed on disk. A non-nil Err is reported and the current layout kept.
type ReloadMsg struct {
	Panels []panel.Decl
	Err    error
}

// StatusMsg appends a line to the status log.
type StatusMsg string
