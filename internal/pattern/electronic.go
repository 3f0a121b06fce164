package pattern

// Breakdown roll: velocity ramps linearly across the bar's sixteenth
// steps into a crash on the following downbeat.
const (
	breakdownThreshold = 0.3
	breakdownInterval  = 8
	rollStartVelocity  = 0.3
)

// electronicTemplate produces a four-on-the-floor club pattern: kick
// on every beat, snare strictly on 2 and 4, a sixteenth hi-hat grid
// with accent tiers, and periodic breakdown bars that replace the
// groove with a rising snare roll.
func (g *Generator) electronicTemplate(bars int, beatsPerBar, complexity, dynamics float64) []Hit {
	var hits []Hit

	baseVel := 0.65 + dynamics*0.35
	quadruple := beatsPerBar >= 4

	for bar := 0; bar < bars; bar++ {
		barOffset := float64(bar) * beatsPerBar

		// Every 8th bar becomes a breakdown once complexity allows:
		// normal content is suppressed entirely.
		if complexity > breakdownThreshold && bar%breakdownInterval == breakdownInterval-1 {
			hits = g.electronicBreakdown(hits, barOffset, beatsPerBar, baseVel)
			continue
		}

		// Four on the floor.
		for b := 0.0; b < beatsPerBar; b++ {
			hits = hit(hits, Kick, barOffset+b, baseVel)
		}

		// Snare on 2 and 4; just 2 in short meters.
		hits = hit(hits, Snare, barOffset+1, baseVel*0.9)
		if quadruple {
			hits = hit(hits, Snare, barOffset+3, baseVel*0.9)
		}

		// Sixteenth hat grid with velocity tiers by position and
		// gated open hats on the off-eighths.
		for t := 0.0; t < beatsPerBar; t += 0.25 {
			var vel float64
			switch {
			case t == float64(int(t)):
				vel = baseVel * 0.7
			case isOffbeatEighth(t):
				vel = baseVel * 0.55
			default:
				vel = baseVel * 0.4
			}
			voice := HiHatClosed
			if isOffbeatEighth(t) && g.rng.Float64() < 0.15+complexity*0.25 {
				voice = HiHatOpen
			}
			hits = hit(hits, voice, barOffset+t, vel)
		}
	}
	return hits
}

// electronicBreakdown fills one bar with a velocity-ramping snare roll
// ending in a crash on the next downbeat.
func (g *Generator) electronicBreakdown(hits []Hit, barOffset, beatsPerBar, baseVel float64) []Hit {
	steps := int(beatsPerBar * 4)
	stepLen := beatsPerBar / float64(steps)
	for i := 0; i < steps; i++ {
		ramp := rollStartVelocity + (1.0-rollStartVelocity)*float64(i)/float64(steps-1)
		hits = hit(hits, Snare, barOffset+float64(i)*stepLen, ramp*baseVel)
	}
	hits = hit(hits, Crash, barOffset+beatsPerBar, baseVel)
	return hits
}
