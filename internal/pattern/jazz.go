package pattern

// Snare comping positions, named by their place in the bar. Each is an
// independent draw per bar; probabilities scale with complexity. The
// positions are straight eighths: the swing stage pushes them toward
// the triplet feel afterwards.
var jazzCompPositions = []struct {
	name string
	beat float64
	prob float64 // multiplied by complexity
	vel  float64 // multiplied by the style base velocity
}{
	{"and-of-1", 0.5, 0.35, 0.5},
	{"and-of-2", 1.5, 0.4, 0.5},
	{"skip-3", 2.33, 0.25, 0.45},
	{"and-of-3", 2.5, 0.35, 0.5},
	{"and-of-4", 3.5, 0.3, 0.45},
}

// jazzTemplate produces a swung jazz groove. The ride carries time
// with the classic beat-plus-triplet-upbeat figure, the hi-hat foot
// marks 2 and 4, the kick is feathered underneath, and the snare comps
// across five gated upbeat positions.
func (g *Generator) jazzTemplate(bars int, beatsPerBar, complexity, dynamics float64) []Hit {
	var hits []Hit

	baseVel := 0.35 + dynamics*0.3
	quadruple := beatsPerBar >= 4

	for bar := 0; bar < bars; bar++ {
		barOffset := float64(bar) * beatsPerBar
		phraseEnd := bar%4 == 3

		// Ride: every beat, plus the triplet upbeat after 2 and 4
		// (after 2 only in short meters).
		for b := 0.0; b < beatsPerBar; b++ {
			vel := baseVel
			if b == 1 || b == 3 {
				vel = baseVel * 1.15
			}
			hits = hit(hits, Ride, barOffset+b, vel)
		}
		hits = hit(hits, Ride, barOffset+1.67, baseVel*0.85)
		if quadruple {
			hits = hit(hits, Ride, barOffset+3.67, baseVel*0.85)
		}

		// Hi-hat foot on 2 and 4.
		hits = hit(hits, HiHatClosed, barOffset+1, baseVel*0.7)
		if quadruple {
			hits = hit(hits, HiHatClosed, barOffset+3, baseVel*0.7)
		}

		// Feathered kick: near-continuous and very quiet. The raw
		// velocity sits below the clamp floor on purpose; occasional
		// accents surface above it.
		for b := 0.0; b < beatsPerBar; b++ {
			vel := 0.08 + dynamics*0.06
			if g.rng.Float64() < 0.1+complexity*0.15 {
				vel = baseVel * 0.9
			}
			hits = hit(hits, Kick, barOffset+b, vel)
		}

		// Snare comping.
		comps := make([]gate, 0, len(jazzCompPositions))
		for _, pos := range jazzCompPositions {
			if !quadruple && pos.beat >= beatsPerBar {
				continue
			}
			comps = append(comps, gate{
				beat:     pos.beat,
				prob:     pos.prob * complexity,
				velocity: baseVel * pos.vel,
			})
		}
		hits = g.roll(hits, barOffset, Snare, comps)

		// Subtle fill into the next phrase, crash on its downbeat.
		if phraseEnd {
			fillStart := barOffset + beatsPerBar - 1
			hits = hit(hits, Snare, fillStart+0.33, baseVel*0.6)
			hits = hit(hits, TomMid, fillStart+0.67, baseVel*0.65)
			hits = hit(hits, Crash, barOffset+beatsPerBar, baseVel*1.1)
		}
	}
	return hits
}
