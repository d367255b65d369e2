package layout

import (
	"fmt"
	"math"

	"github.com/flashingpumpkin/splitter/internal/diag"
	"github.com/flashingpumpkin/splitter/internal/size"
)

// PixelConstraint holds resolved bounds. A bound that is not set does not clamp.
type PixelConstraint struct {
	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// Unbounded returns a constraint that never clamps.
func Unbounded() PixelConstraint {
	return PixelConstraint{}
}

// Bounds returns a constraint with both bounds set.
func Bounds(minPx, maxPx float64) PixelConstraint {
	return PixelConstraint{Min: minPx, Max: maxPx, HasMin: true, HasMax: true}
}

// AtLeast returns a constraint with only a minimum.
func AtLeast(minPx float64) PixelConstraint {
	return PixelConstraint{Min: minPx, HasMin: true}
}

// AtMost returns a constraint with only a maximum.
func AtMost(maxPx float64) PixelConstraint {
	return PixelConstraint{Max: maxPx, HasMax: true}
}

// Clamp restricts v to the constraint. The minimum is applied first and
// the maximum second, so the maximum wins when the bounds are inverted.
func (c PixelConstraint) Clamp(v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

// Floor returns the smallest length the constraint allows, never below zero.
func (c PixelConstraint) Floor() float64 {
	if c.HasMin && c.Min > 0 {
		return c.Min
	}
	return 0
}

// Ceiling returns the largest length the constraint allows.
func (c PixelConstraint) Ceiling() float64 {
	if c.HasMax {
		return c.Max
	}
	return math.Inf(1)
}

// Consistent reports whether the minimum does not exceed the maximum.
func (c PixelConstraint) Consistent() bool {
	return !c.HasMin || !c.HasMax || c.Min <= c.Max
}

// ConstraintSpec is a pair of declared bounds. Auto means "no bound".
type ConstraintSpec struct {
	Min size.Spec
	Max size.Spec
}

// Resolve converts declared bounds into pixels for a container of the
// given size. No rounding happens here.
func Resolve(c ConstraintSpec, containerPx float64) PixelConstraint {
	var pc PixelConstraint
	if !c.Min.IsAuto() {
		pc.Min = c.Min.Resolve(containerPx, 0)
		pc.HasMin = true
	}
	if !c.Max.IsAuto() {
		pc.Max = c.Max.Resolve(containerPx, 0)
		pc.HasMax = true
	}
	return pc
}

// ResolveAll resolves every constraint and reports inverted bounds.
func ResolveAll(cs []ConstraintSpec, containerPx float64) ([]PixelConstraint, []diag.Diagnostic) {
	out := make([]PixelConstraint, len(cs))
	var diags []diag.Diagnostic
	for i, c := range cs {
		out[i] = Resolve(c, containerPx)
		if !out[i].Consistent() {
			diags = append(diags, diag.Diagnostic{
				Code:  diag.CodeUnsatisfiable,
				Panel: i,
				Message: fmt.Sprintf("min %s resolves above max %s in a %s container; max wins",
					size.Format(out[i].Min, size.UnitPixels),
					size.Format(out[i].Max, size.UnitPixels),
					size.Format(containerPx, size.UnitPixels)),
			})
		}
	}
	return out, diags
}

// constraintAt returns cs[i], or an unbounded constraint past the end.
func constraintAt(cs []PixelConstraint, i int) PixelConstraint {
	if i < len(cs) {
		return cs[i]
	}
	return Unbounded()
}
