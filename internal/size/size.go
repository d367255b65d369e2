// Package size parses and formats panel size specifications.
//
// A size is a number of pixels ("240px"), a percentage of the container
// ("25%"), or "auto" (also written "*"), meaning the panel shares leftover
// space with the other auto panels. An empty string is treated as "auto".
package size

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/flashingpumpkin/splitter/internal/diag"
	perrors "github.com/flashingpumpkin/splitter/internal/errors"
)

// Unit specifies how a Spec's Value is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // Fills leftover space
	UnitPixels              // Absolute length
	UnitPercent             // Percentage of the container (0-100 scale)
)

// String returns the unit suffix used in size strings.
func (u Unit) String() string {
	switch u {
	case UnitPixels:
		return "px"
	case UnitPercent:
		return "%"
	default:
		return "auto"
	}
}

// Spec is a parsed size specification.
type Spec struct {
	Value    float64
	Unit     Unit
	Original string

	// Implicit is set when a bare number was read as pixels.
	Implicit bool
}

// Auto returns a Spec that fills leftover space.
func Auto() Spec {
	return Spec{Unit: UnitAuto, Original: "auto"}
}

// Px returns a Spec of v pixels.
func Px(v float64) Spec {
	return Spec{Value: v, Unit: UnitPixels, Original: Format(v, UnitPixels)}
}

// Percent returns a Spec of p percent of the container.
func Percent(p float64) Spec {
	return Spec{Value: p, Unit: UnitPercent, Original: Format(p, UnitPercent)}
}

// IsAuto reports whether the spec fills leftover space.
func (s Spec) IsAuto() bool {
	return s.Unit == UnitAuto
}

// Resolve converts the spec to pixels for a container of the given size.
// Auto specs return fallback.
func (s Spec) Resolve(containerPx, fallback float64) float64 {
	switch s.Unit {
	case UnitPixels:
		return s.Value
	case UnitPercent:
		return s.Value * containerPx / 100
	default:
		return fallback
	}
}

// String formats the spec in canonical form.
func (s Spec) String() string {
	return Format(s.Value, s.Unit)
}

var sizePattern = regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?)(px|%)?$`)

// Parse converts a size string into a Spec.
// The empty string parses as auto. Anything outside the grammar, and any
// negative number, yields an error wrapping errors.ErrInvalidSizeFormat.
func Parse(input string) (Spec, error) {
	s := strings.TrimSpace(input)
	switch s {
	case "", "auto", "*":
		return Spec{Unit: UnitAuto, Original: input}, nil
	}

	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return Spec{}, fmt.Errorf("%w: %q", perrors.ErrInvalidSizeFormat, input)
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsInf(v, 0) {
		return Spec{}, fmt.Errorf("%w: %q: out of range", perrors.ErrInvalidSizeFormat, input)
	}
	if v < 0 {
		return Spec{}, fmt.Errorf("%w: %q: size must not be negative", perrors.ErrInvalidSizeFormat, input)
	}
	if v == 0 {
		v = 0 // normalise -0
	}

	spec := Spec{Value: v, Original: input}
	switch m[2] {
	case "px":
		spec.Unit = UnitPixels
	case "%":
		spec.Unit = UnitPercent
	default:
		spec.Unit = UnitPixels
		spec.Implicit = true
	}
	return spec, nil
}

// ParseWith parses input like Parse and reports an implicit-unit
// diagnostic for bare numbers. panel is carried into the diagnostic.
func ParseWith(r diag.Reporter, panel int, input string) (Spec, error) {
	spec, err := Parse(input)
	if err != nil {
		return spec, err
	}
	if spec.Implicit {
		diag.Emit(r, diag.Diagnostic{
			Code:    diag.CodeImplicitUnit,
			Panel:   panel,
			Message: fmt.Sprintf("%q has no unit and is read as %q", input, spec.String()),
		})
	}
	return spec, nil
}

// Format renders value in the given unit. Non-finite values format as
// "auto" so a corrupted number can never produce a malformed size string.
func Format(value float64, unit Unit) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "auto"
	}
	switch unit {
	case UnitPixels:
		return strconv.FormatFloat(value, 'f', -1, 64) + "px"
	case UnitPercent:
		return strconv.FormatFloat(value, 'f', -1, 64) + "%"
	default:
		return "auto"
	}
}
