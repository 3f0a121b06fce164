package pattern

import "math"

// Swing window and displacement. Hits whose fractional beat position
// lies within the window around the straight-eighth offbeat (x.5) are
// pushed toward the triplet position (x.67); a full-strength swing
// moves them 0.17 beats.
const (
	swingOffbeatWindow = 0.1
	swingShift         = 0.17
)

// Velocity clamp applied during humanization. Raw template velocities
// may start below the floor (feathered jazz kick); they are pulled up
// here.
const (
	minVelocity = 0.1
	maxVelocity = 1.0
)

// Humanization bounds: maximum random offset at full variation. The
// timing bound approximates +/-15ms of human jitter at 120 BPM and is
// deliberately not scaled by the actual tempo.
const (
	maxTimingOffset   = 0.03
	maxVelocityOffset = 0.15
)

// applySwing shifts near-offbeat hits toward the triplet subdivision.
// Everything outside the offbeat window passes through unchanged.
func applySwing(hits []Hit, amount float64) []Hit {
	out := make([]Hit, len(hits))
	for i, h := range hits {
		frac := h.Time - math.Floor(h.Time)
		if math.Abs(frac-0.5) < swingOffbeatWindow {
			h.Time += swingShift * amount
		}
		out[i] = h
	}
	return out
}

// humanize applies bounded random jitter to the timing and velocity of
// every hit. Each hit draws independently. Disabled, it is identity.
func (g *Generator) humanize(hits []Hit, timingVariation, velocityVariation float64, enabled bool) []Hit {
	if !enabled {
		return hits
	}
	out := make([]Hit, len(hits))
	for i, h := range hits {
		timingOffset := (g.rng.Float64()*2 - 1) * maxTimingOffset * timingVariation
		velocityOffset := (g.rng.Float64()*2 - 1) * maxVelocityOffset * velocityVariation

		h.Time = math.Max(0, h.Time+timingOffset)
		h.Velocity = clamp(h.Velocity+velocityOffset, minVelocity, maxVelocity)
		out[i] = h
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
