package drag

// Guard is a scoped override of process-wide presentation state, such as
// a global resize cursor or disabled text selection. Acquire runs when a
// session starts and Release runs exactly once when it ends, however it ends.
type Guard interface {
	Acquire()
	Release()
}

// NopGuard does nothing.
type NopGuard struct{}

// Acquire implements Guard.
func (NopGuard) Acquire() {}

// Release implements Guard.
func (NopGuard) Release() {}

// FuncGuard adapts a pair of functions to the Guard interface.
// Nil functions are skipped.
type FuncGuard struct {
	OnAcquire func()
	OnRelease func()
}

// Acquire implements Guard.
func (g FuncGuard) Acquire() {
	if g.OnAcquire != nil {
		g.OnAcquire()
	}
}

// Release implements Guard.
func (g FuncGuard) Release() {
	if g.OnRelease != nil {
		g.OnRelease()
	}
}
