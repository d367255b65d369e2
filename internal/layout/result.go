package layout

import (
	"math"
	"sort"

	"github.com/flashingpumpkin/splitter/internal/diag"
	"gonum.org/v1/gonum/floats"
)

// Result holds the computed length of every panel, in declaration order.
type Result struct {
	Sizes       []float64
	Diagnostics []diag.Diagnostic
}

// Sum returns the total length of all panels.
func (r Result) Sum() float64 {
	return floats.Sum(r.Sizes)
}

// Pixels rounds the sizes to whole units for rendering.
// Rounding uses the largest remainder method so the rounded lengths add up
// to the rounded total; ties go to the earlier panel.
func (r Result) Pixels() []int {
	out := make([]int, len(r.Sizes))
	if len(r.Sizes) == 0 {
		return out
	}

	type frac struct {
		index int
		part  float64
	}
	fracs := make([]frac, len(r.Sizes))
	floorSum := 0
	for i, v := range r.Sizes {
		f := math.Floor(v)
		out[i] = int(f)
		floorSum += out[i]
		fracs[i] = frac{index: i, part: v - f}
	}

	missing := int(math.Round(r.Sum())) - floorSum
	sort.SliceStable(fracs, func(a, b int) bool {
		return fracs[a].part > fracs[b].part
	})
	for k := 0; k < missing && k < len(fracs); k++ {
		out[fracs[k].index]++
	}
	return out
}
