// Package diag carries development-time sizing diagnostics.
//
// Diagnostics never change layout behaviour. They exist to surface
// misconfiguration while a layout is being built, and every report is
// dropped when the binary is built with the "production" tag.
package diag

import (
	"fmt"
	"sync"
)

// Code identifies the kind of diagnostic.
type Code string

const (
	// CodeImplicitUnit marks a bare number that was read as pixels.
	CodeImplicitUnit Code = "implicit-unit"

	// CodeUnderSum marks sizes that leave part of the container unused.
	CodeUnderSum Code = "under-sum"

	// CodeOverSum marks sizes that overflow the container.
	CodeOverSum Code = "over-sum"

	// CodeUnsatisfiable marks a resolved minimum above its maximum.
	CodeUnsatisfiable Code = "unsatisfiable-constraint"
)

// NoPanel is the Panel value of diagnostics that concern the whole layout.
const NoPanel = -1

// Diagnostic is a single development-mode message.
type Diagnostic struct {
	Code    Code
	Panel   int
	Message string
}

// String formats the diagnostic as "[code] message".
func (d Diagnostic) String() string {
	if d.Panel == NoPanel {
		return fmt.Sprintf("[%s] %s", d.Code, d.Message)
	}
	return fmt.Sprintf("[%s] panel %d: %s", d.Code, d.Panel, d.Message)
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d Diagnostic) {
	f(d)
}

type nopReporter struct{}

func (nopReporter) Report(Diagnostic) {}

// Nop discards every diagnostic.
var Nop Reporter = nopReporter{}

// Emit forwards ds to r unless diagnostics are compiled out or r is nil.
func Emit(r Reporter, ds ...Diagnostic) {
	if !Enabled || r == nil {
		return
	}
	for _, d := range ds {
		r.Report(d)
	}
}

// Collector records diagnostics in memory.
type Collector struct {
	mu   sync.Mutex
	list []Diagnostic
}

// Report implements Reporter.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = append(c.list, d)
}

// Diagnostics returns a copy of everything recorded so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.list))
	copy(out, c.list)
	return out
}

// Has reports whether a diagnostic with the given code was recorded.
func (c *Collector) Has(code Code) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.list {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Reset drops everything recorded so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = nil
}
