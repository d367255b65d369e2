// Package layout turns declared panel sizes and constraints into concrete
// lengths along a single axis.
//
// [Resolve] converts min/max size specifications into [PixelConstraint]s
// for a given container size. [Solve] and [SolveWithPixelConstraints]
// compute one length per panel so that the lengths fill the container
// whenever the configuration allows it. Every function here is pure: the
// caller owns all state, including the cached constraints used on the
// drag hot path.
package layout
