package query

import "math"

// Blend weight bounds for hybrid search. The backend receives the value
// unmodified as alpha.
const (
	MinBlendWeight     = 0.0
	MaxBlendWeight     = 0.25
	BlendWeightStep    = 0.005
	DefaultBlendWeight = 0.05
)

// ClampWeight pins w into [MinBlendWeight, MaxBlendWeight]. In-range values
// are returned as given.
func ClampWeight(w float64) float64 {
	if math.IsNaN(w) {
		return DefaultBlendWeight
	}
	if w < MinBlendWeight {
		return MinBlendWeight
	}
	if w > MaxBlendWeight {
		return MaxBlendWeight
	}
	return w
}

// StepWeight moves w by steps increments of BlendWeightStep, landing on the
// step grid, and clamps the result.
func StepWeight(w float64, steps int) float64 {
	grid := math.Round(ClampWeight(w)/BlendWeightStep) + float64(steps)
	// Round again to drop float noise such as 0.05500000000000001.
	return ClampWeight(math.Round(grid*BlendWeightStep*1e6) / 1e6)
}

// ValidWeight reports whether w lies inside the accepted range.
func ValidWeight(w float64) bool {
	return !math.IsNaN(w) && w >= MinBlendWeight && w <= MaxBlendWeight
}
