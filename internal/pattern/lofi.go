package pattern

// Ghost-note snare positions, each a fractional probability scaled by
// complexity. The lo-fi snare lives mostly in these, with soft
// backbeats underneath.
var lofiGhostPositions = []struct {
	name string
	beat float64
	prob float64
	vel  float64
}{
	{"a-of-1", 0.75, 0.3, 0.35},
	{"e-of-2", 1.25, 0.25, 0.3},
	{"e-of-3", 2.25, 0.3, 0.35},
	{"a-of-3", 2.75, 0.2, 0.3},
	{"e-of-4", 3.25, 0.25, 0.3},
}

// lofiTemplate produces a sparse, swung lo-fi groove. The ride keeps a
// thinned-out version of the jazz figure, the kick placement tiers up
// with complexity, and the hi-hat is deliberately not a timekeeper:
// just foot accents on the backbeats and the odd open-hat texture.
func (g *Generator) lofiTemplate(bars int, beatsPerBar, complexity, dynamics float64) []Hit {
	var hits []Hit

	baseVel := 0.4 + dynamics*0.3
	quadruple := beatsPerBar >= 4

	for bar := 0; bar < bars; bar++ {
		barOffset := float64(bar) * beatsPerBar

		// Ride: main beats nearly always, triplet upbeats gated.
		for b := 0.0; b < beatsPerBar; b++ {
			if g.rng.Float64() < 0.9 {
				hits = hit(hits, Ride, barOffset+b, baseVel*0.8)
			}
		}
		upbeats := []gate{
			{beat: 1.67, prob: 0.4 + complexity*0.3, velocity: baseVel * 0.6},
		}
		if quadruple {
			upbeats = append(upbeats, gate{beat: 3.67, prob: 0.35 + complexity*0.3, velocity: baseVel * 0.6})
		}
		hits = g.roll(hits, barOffset, Ride, upbeats)

		// Kick: sparse at low complexity, syncopated "and of 2" in the
		// mid tier, extra swung hits at the top.
		hits = hit(hits, Kick, barOffset, baseVel)
		switch {
		case complexity < 0.3:
			if quadruple && g.rng.Float64() < 0.6 {
				hits = hit(hits, Kick, barOffset+2, baseVel*0.9)
			}
		case complexity < 0.6:
			hits = hit(hits, Kick, barOffset+1.5, baseVel*0.85)
		default:
			hits = hit(hits, Kick, barOffset+1.5, baseVel*0.85)
			extra := []gate{
				{beat: 2.75, prob: complexity * 0.5, velocity: baseVel * 0.75},
			}
			if quadruple {
				extra = append(extra, gate{beat: 3.5, prob: complexity * 0.4, velocity: baseVel * 0.7})
			}
			hits = g.roll(hits, barOffset, Kick, extra)
		}

		// Soft backbeats plus the ghost-note texture.
		hits = hit(hits, Snare, barOffset+1, baseVel*0.8)
		if quadruple {
			hits = hit(hits, Snare, barOffset+3, baseVel*0.8)
		}
		ghosts := make([]gate, 0, len(lofiGhostPositions))
		for _, pos := range lofiGhostPositions {
			if pos.beat >= beatsPerBar {
				continue
			}
			ghosts = append(ghosts, gate{
				beat:     pos.beat,
				prob:     pos.prob * complexity,
				velocity: baseVel * pos.vel,
			})
		}
		hits = g.roll(hits, barOffset, Snare, ghosts)

		// Foot-closed hats on 2 and 4; rare open texture above mid
		// complexity.
		hits = hit(hits, HiHatClosed, barOffset+1, baseVel*0.5)
		if quadruple {
			hits = hit(hits, HiHatClosed, barOffset+3, baseVel*0.5)
		}
		if complexity > 0.5 {
			texture := []gate{
				{beat: 0.5, prob: 0.2, velocity: baseVel * 0.45},
			}
			if quadruple {
				texture = append(texture, gate{beat: 2.5, prob: 0.15, velocity: baseVel * 0.45})
			}
			hits = g.roll(hits, barOffset, HiHatOpen, texture)
		}
	}
	return hits
}
