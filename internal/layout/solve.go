package layout

import (
	"fmt"

	"github.com/flashingpumpkin/splitter/internal/diag"
	"github.com/flashingpumpkin/splitter/internal/size"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// sumTolerance is the slack allowed before a sum mismatch is reported.
const sumTolerance = 1e-6

// Solve resolves constraints for the container and computes panel lengths.
// Missing constraints are treated as unbounded.
func Solve(declared []size.Spec, containerPx float64, constraints []ConstraintSpec) Result {
	pcs, diags := ResolveAll(constraints, containerPx)
	r := SolveWithPixelConstraints(declared, containerPx, pcs)
	r.Diagnostics = append(diags, r.Diagnostics...)
	return r
}

// SolveWithPixelConstraints computes panel lengths from already resolved
// constraints. This is the drag hot path: nothing is parsed or resolved.
//
// Fixed panels (pixels, percent) take their declared length clamped to
// their constraint. Auto panels share what is left equally; a panel whose
// share violates its constraint is frozen at the bound and the rest is
// shared again among the panels still in the pool.
func SolveWithPixelConstraints(declared []size.Spec, containerPx float64, constraints []PixelConstraint) Result {
	sizes := make([]float64, len(declared))
	var flexible []int

	for i, spec := range declared {
		if spec.IsAuto() {
			flexible = append(flexible, i)
			continue
		}
		raw := spec.Resolve(containerPx, 0)
		sizes[i] = max(0, constraintAt(constraints, i).Clamp(raw))
	}

	if len(flexible) > 0 {
		remainder := containerPx - floats.Sum(sizes)
		distribute(sizes, flexible, remainder, constraints)
	}

	return Result{
		Sizes:       sizes,
		Diagnostics: sumDiagnostics(sizes, containerPx, len(flexible) > 0),
	}
}

// distribute shares remainder among the flexible panels in pool.
//
// Each pass computes an equal share of what is still available. If some
// shares violate their constraints, the dominant kind of violation is
// frozen (max violations when they free more than min violations take,
// min violations otherwise, both when they cancel out) and the pass
// repeats with the share recomputed from the original remainder minus the
// frozen lengths. When a pass clamps nothing, any floating point residue
// goes to the first panel still in the pool. The last panel left in the
// pool absorbs everything that remains, within its own bounds.
func distribute(sizes []float64, pool []int, remainder float64, constraints []PixelConstraint) {
	pending := append([]int(nil), pool...)
	available := remainder

	for len(pending) > 1 {
		share := available / float64(len(pending))

		var violation float64
		clamped := make([]float64, len(pending))
		for k, i := range pending {
			clamped[k] = clampFlexible(share, constraintAt(constraints, i))
			violation += clamped[k] - share
		}

		var next []int
		frozen := false
		for k, i := range pending {
			diff := clamped[k] - share
			freeze := diff != 0 && (violation == 0 || (violation > 0) == (diff > 0))
			if freeze {
				sizes[i] = clamped[k]
				available -= clamped[k]
				frozen = true
				continue
			}
			next = append(next, i)
		}

		if !frozen {
			for _, i := range pending {
				sizes[i] = share
			}
			sizes[pending[0]] += available - share*float64(len(pending))
			return
		}
		pending = next
	}

	if len(pending) == 1 {
		i := pending[0]
		sizes[i] = clampFlexible(available, constraintAt(constraints, i))
	}
}

// clampFlexible clamps v to c and never returns a negative length.
func clampFlexible(v float64, c PixelConstraint) float64 {
	return max(0, c.Clamp(v))
}

func sumDiagnostics(sizes []float64, containerPx float64, hasFlexible bool) []diag.Diagnostic {
	total := floats.Sum(sizes)
	if scalar.EqualWithinAbs(total, containerPx, sumTolerance) {
		return nil
	}

	px := func(v float64) string { return size.Format(v, size.UnitPixels) }

	if total < containerPx {
		reason := "no auto panel can absorb it"
		if hasFlexible {
			reason = "auto panels are held at their max"
		}
		return []diag.Diagnostic{{
			Code:  diag.CodeUnderSum,
			Panel: diag.NoPanel,
			Message: fmt.Sprintf("panel sizes sum to %s in a %s container; %s left unused because %s",
				px(total), px(containerPx), px(containerPx-total), reason),
		}}
	}

	reason := "fixed sizes exceed the container"
	if hasFlexible {
		reason = "auto panels were held at their floor"
	}
	return []diag.Diagnostic{{
		Code:  diag.CodeOverSum,
		Panel: diag.NoPanel,
		Message: fmt.Sprintf("panel sizes sum to %s in a %s container; overflow of %s because %s",
			px(total), px(containerPx), px(total-containerPx), reason),
	}}
}
