package pattern

// Cascara and accent thresholds: each layer joins the pattern only
// above its complexity threshold, with every position gated by its own
// draw whose probability rises with complexity.
const (
	cascaraThreshold = 0.4
	accentThreshold  = 0.3
)

// clavePhrase is one side of the two-bar clave figure: the kick and
// snare placements that alternate by bar parity.
type clavePhrase struct {
	kicks  []float64
	snares []float64
	toms   []float64
}

// Full-meter phrasings (4+ beats) and the reduced 3-beat forms.
var (
	claveThreeSide = clavePhrase{
		kicks:  []float64{0, 2.5},
		snares: []float64{1.5, 3},
		toms:   []float64{2},
	}
	claveTwoSide = clavePhrase{
		kicks:  []float64{0.5, 2},
		snares: []float64{1, 2.5},
		toms:   []float64{3},
	}
	claveThreeSideShort = clavePhrase{
		kicks:  []float64{0, 1.5},
		snares: []float64{2},
	}
	claveTwoSideShort = clavePhrase{
		kicks:  []float64{1},
		snares: []float64{0.5, 2},
	}
)

// latinTemplate produces a clave-based pattern. Bar parity selects the
// clave side, a steady eighth-note cymbal keeps time on ride or closed
// hat depending on dynamics, and cascara toms plus a bell/crash accent
// layer appear above their complexity thresholds.
func (g *Generator) latinTemplate(bars int, beatsPerBar, complexity, dynamics float64) []Hit {
	var hits []Hit

	baseVel := 0.5 + dynamics*0.35
	quadruple := beatsPerBar >= 4

	for bar := 0; bar < bars; bar++ {
		barOffset := float64(bar) * beatsPerBar

		phrase := claveThreeSide
		if !quadruple {
			phrase = claveThreeSideShort
		}
		if bar%2 == 1 {
			phrase = claveTwoSide
			if !quadruple {
				phrase = claveTwoSideShort
			}
		}

		for _, b := range phrase.kicks {
			hits = hit(hits, Kick, barOffset+b, baseVel)
		}
		for _, b := range phrase.snares {
			hits = hit(hits, Snare, barOffset+b, baseVel*0.85)
		}
		for _, b := range phrase.toms {
			if b < beatsPerBar {
				hits = hit(hits, TomLow, barOffset+b, baseVel*0.75)
			}
		}

		// Cymbal layer: steady eighths. Dynamics picks the surface.
		cymbal := HiHatClosed
		if dynamics > 0.5 {
			cymbal = Ride
		}
		for t := 0.0; t < beatsPerBar; t += 0.5 {
			vel := baseVel * 0.5
			if t == float64(int(t)) {
				vel = baseVel * 0.65
			}
			hits = hit(hits, cymbal, barOffset+t, vel)
		}

		// Cascara toms above the complexity threshold; each position
		// rolls independently.
		if complexity > cascaraThreshold {
			prob := 0.3 + complexity*0.5
			cascara := []gate{
				{beat: 0.5, prob: prob, velocity: baseVel * 0.6},
				{beat: 1, prob: prob, velocity: baseVel * 0.55},
				{beat: 2, prob: prob, velocity: baseVel * 0.6},
				{beat: 2.5, prob: prob, velocity: baseVel * 0.55},
			}
			if quadruple {
				cascara = append(cascara, gate{beat: 3.5, prob: prob, velocity: baseVel * 0.5})
			}
			hits = g.roll(hits, barOffset, TomHigh, cascara)
		}

		// Bell/crash accents tracking the clave side.
		if complexity > accentThreshold {
			prob := 0.2 + complexity*0.4
			for _, b := range phrase.kicks {
				voice := Ride
				if b == 0 && g.rng.Float64() < 0.3 {
					voice = Crash
				}
				if g.rng.Float64() < prob {
					hits = hit(hits, voice, barOffset+b, baseVel*0.9)
				}
			}
		}
	}
	return hits
}
