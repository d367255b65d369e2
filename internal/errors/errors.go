// Package errors defines sentinel errors used across multiple packages.
package errors

import "errors"

// ErrInvalidSizeFormat is returned when a size string matches none of the accepted forms.
var ErrInvalidSizeFormat = errors.New("invalid size format")

// ErrSessionActive is returned when a drag starts while another one is still in progress.
var ErrSessionActive = errors.New("drag session already active")

// ErrNoSession is returned when a move or end arrives without a prior start.
var ErrNoSession = errors.New("no active drag session")

// ErrHandleOutOfRange is returned when a handle index does not sit between two panels.
var ErrHandleOutOfRange = errors.New("handle index out of range")

// ErrPanelOutOfRange is returned when a panel index does not name a panel.
var ErrPanelOutOfRange = errors.New("panel index out of range")

// ErrNotCollapsible is returned when collapsing a panel that declares no collapsed size.
var ErrNotCollapsible = errors.New("panel is not collapsible")
