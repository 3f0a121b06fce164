package pattern

import (
	"math/rand"
	"time"
)

// Post-processing constants. Swing is applied for the two swung styles
// only; humanization runs on every pattern with fixed variation.
const (
	swingAmountJazz = 0.6
	swingAmountLofi = 0.5

	humanizeTimingVariation   = 0.4
	humanizeVelocityVariation = 0.3
)

// Generator produces drum patterns from settings. All randomness --
// template gates, swing accents, humanization -- draws from the one
// injected source, so a seeded generator is fully deterministic.
type Generator struct {
	rng *rand.Rand
}

// New creates a time-seeded generator.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed creates a generator with a deterministic random source.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate runs the full pipeline: style template, optional swing,
// humanization, then sort and dedup. The returned pattern is a
// snapshot; later calls never mutate it.
//
// Unknown styles fall back to the rock template and unknown time
// signatures to 4/4. That substitution is deliberate: the engine has
// no failure mode on well-typed input, and strict callers are
// expected to run Settings.Validate first.
func (g *Generator) Generate(s Settings) Pattern {
	beatsPerBar := s.TimeSignature.BeatsPerBar()
	lengthInBeats := float64(s.Bars) * beatsPerBar

	var hits []Hit
	switch s.Style {
	case StyleJazz:
		hits = g.jazzTemplate(s.Bars, beatsPerBar, s.Complexity, s.Dynamics)
	case StyleElectronic:
		hits = g.electronicTemplate(s.Bars, beatsPerBar, s.Complexity, s.Dynamics)
	case StyleLatin:
		hits = g.latinTemplate(s.Bars, beatsPerBar, s.Complexity, s.Dynamics)
	case StyleLofi:
		hits = g.lofiTemplate(s.Bars, beatsPerBar, s.Complexity, s.Dynamics)
	default:
		hits = g.rockTemplate(s.Bars, beatsPerBar, s.Complexity, s.Dynamics)
	}

	switch s.Style {
	case StyleJazz:
		hits = applySwing(hits, swingAmountJazz)
	case StyleLofi:
		hits = applySwing(hits, swingAmountLofi)
	}

	hits = g.humanize(hits, humanizeTimingVariation, humanizeVelocityVariation, true)
	hits = Assemble(hits)

	return Pattern{
		Hits:          hits,
		LengthInBeats: lengthInBeats,
		TimeSignature: s.TimeSignature,
		BPM:           s.BPM,
	}
}

// gate is one probability-gated ornament position within a bar.
// Templates build small tables of these and roll each position as an
// independent draw.
type gate struct {
	beat     float64
	prob     float64
	velocity float64
}

// roll emits a hit for every gate position that passes its draw.
func (g *Generator) roll(hits []Hit, barOffset float64, voice Voice, gates []gate) []Hit {
	for _, gt := range gates {
		if g.rng.Float64() < gt.prob {
			hits = append(hits, Hit{
				Voice:    voice,
				Time:     barOffset + gt.beat,
				Velocity: gt.velocity,
				Duration: defaultDuration(voice),
			})
		}
	}
	return hits
}

// hit appends an ungated event with the voice's default duration.
func hit(hits []Hit, voice Voice, time, velocity float64) []Hit {
	return append(hits, Hit{
		Voice:    voice,
		Time:     time,
		Velocity: velocity,
		Duration: defaultDuration(voice),
	})
}
