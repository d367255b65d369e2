package drag

import (
	"math"

	"github.com/flashingpumpkin/splitter/internal/layout"
)

// epsilon is the slack used when comparing lengths inside a pair.
const epsilon = 1e-9

// side is one panel of the pair as seen from the session start.
type side struct {
	entry          layout.Entry
	start          float64
	startCollapsed bool
}

// resolve maps a candidate length to the length and collapse state the
// panel accepts. With allowFlip unset the collapse state stays as it was
// at the session start.
func (s side) resolve(candidate float64, allowFlip bool) (float64, bool) {
	e := s.entry
	if e.Collapsible {
		if s.startCollapsed {
			// Expands only once it grows past the threshold.
			if !allowFlip || candidate <= math.Max(e.CollapseThreshold(), s.start) {
				return e.CollapsedPx, true
			}
		} else if allowFlip && candidate <= e.CollapseThreshold() {
			return e.CollapsedPx, true
		}
	}
	return math.Max(0, e.Constraint.Clamp(candidate)), false
}

// resolvePair computes the lengths and collapse states of the two panels
// flanking a handle for a cumulative delta. Positive deltas grow the
// panel before the handle.
//
// A collapse transition on one side is taken only when the other side can
// absorb the jump without a transition of its own. Otherwise both sides
// move by the smaller of the two achievable movements, which keeps the
// pair's total constant.
func resolvePair(before, after side, delta float64) (sizes [2]float64, collapsed [2]bool) {
	sizes = [2]float64{before.start, after.start}
	collapsed = [2]bool{before.startCollapsed, after.startCollapsed}
	if delta == 0 || math.IsNaN(delta) {
		return sizes, collapsed
	}

	grow, shrink := before, after
	gi, si := 0, 1
	if delta < 0 {
		grow, shrink = after, before
		gi, si = 1, 0
	}
	d := math.Abs(delta)

	g, gc := grow.resolve(grow.start+d, true)
	s, sc := shrink.resolve(shrink.start-d, true)
	gFlip := gc != grow.startCollapsed
	sFlip := sc != shrink.startCollapsed

	switch {
	case sFlip && !gFlip:
		loss := shrink.start - s
		g2, gc2 := grow.resolve(grow.start+loss, false)
		if g2-grow.start >= loss-epsilon {
			sizes[gi], collapsed[gi] = g2, gc2
			sizes[si], collapsed[si] = s, sc
			return sizes, collapsed
		}
	case gFlip && !sFlip:
		gain := g - grow.start
		s2, sc2 := shrink.resolve(shrink.start-gain, false)
		if shrink.start-s2 >= gain-epsilon {
			sizes[gi], collapsed[gi] = g, gc
			sizes[si], collapsed[si] = s2, sc2
			return sizes, collapsed
		}
	}

	g, _ = grow.resolve(grow.start+d, false)
	s, _ = shrink.resolve(shrink.start-d, false)
	m := math.Min(g-grow.start, shrink.start-s)
	if m <= 0 {
		return sizes, collapsed
	}
	sizes[gi], collapsed[gi] = grow.resolve(grow.start+m, false)
	sizes[si], collapsed[si] = shrink.resolve(shrink.start-m, false)
	return sizes, collapsed
}
