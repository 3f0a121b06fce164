package pattern

// rockTemplate produces a backbeat rock groove. The hi-hat subdivision
// refines with complexity, syncopated kicks unlock above the 0.5 and
// 0.7 thresholds, and every 4th bar above mid complexity becomes a
// fill bar: the hat drops out and a descending snare/tom run takes the
// last beat.
func (g *Generator) rockTemplate(bars int, beatsPerBar, complexity, dynamics float64) []Hit {
	var hits []Hit

	baseVel := 0.55 + dynamics*0.4
	quadruple := beatsPerBar >= 4

	for bar := 0; bar < bars; bar++ {
		barOffset := float64(bar) * beatsPerBar
		fillBar := complexity > 0.4 && bar%4 == 3

		// Kick: beat 1 always, beat 3 in quadruple meters.
		hits = hit(hits, Kick, barOffset, baseVel)
		if quadruple {
			hits = hit(hits, Kick, barOffset+2, baseVel*0.95)
		}

		// Syncopated kick additions unlock with complexity.
		if quadruple {
			var syncopation []gate
			if complexity > 0.5 {
				syncopation = append(syncopation, gate{beat: 2.5, prob: complexity * 0.6, velocity: baseVel * 0.85})
			}
			if complexity > 0.7 {
				syncopation = append(syncopation, gate{beat: 3.5, prob: complexity * 0.5, velocity: baseVel * 0.8})
			}
			hits = g.roll(hits, barOffset, Kick, syncopation)
		}

		// Backbeat snare. Beat 2 always; beat 4 only once the pattern
		// has some complexity. Reduced to the single beat-2 snare in
		// meters under 4 beats.
		hits = hit(hits, Snare, barOffset+1, baseVel)
		if quadruple && complexity >= 0.2 {
			hits = hit(hits, Snare, barOffset+3, baseVel)
		}

		// Ghost notes between the backbeats.
		if quadruple && complexity > 0.6 {
			ghosts := []gate{
				{beat: 1.75, prob: complexity * 0.4, velocity: baseVel * 0.3},
				{beat: 2.25, prob: complexity * 0.35, velocity: baseVel * 0.3},
				{beat: 3.75, prob: complexity * 0.3, velocity: baseVel * 0.25},
			}
			hits = g.roll(hits, barOffset, Snare, ghosts)
		}

		if fillBar {
			hits = g.rockFill(hits, barOffset, beatsPerBar, baseVel)
			// Crash on the next downbeat, most of the time.
			if g.rng.Float64() < 0.7 {
				hits = hit(hits, Crash, barOffset+beatsPerBar, baseVel)
			}
		} else {
			hits = g.rockHats(hits, barOffset, beatsPerBar, complexity, dynamics, baseVel)
		}

		// Crash to open the pattern.
		if bar == 0 {
			hits = hit(hits, Crash, barOffset, baseVel)
		}
	}
	return hits
}

// rockHats lays the time-keeping hi-hat grid. Quarter notes at low
// complexity, eighths in the mid range, sixteenths at the top. High
// dynamics occasionally swap an offbeat closed hat for an open one.
func (g *Generator) rockHats(hits []Hit, barOffset, beatsPerBar, complexity, dynamics, baseVel float64) []Hit {
	var step float64
	switch {
	case complexity < 0.3:
		step = 1
	case complexity < 0.7:
		step = 0.5
	default:
		step = 0.25
	}

	for t := 0.0; t < beatsPerBar; t += step {
		vel := baseVel * 0.55
		if t == float64(int(t)) {
			vel = baseVel * 0.7
		}
		voice := HiHatClosed
		if dynamics > 0.6 && isOffbeatEighth(t) && g.rng.Float64() < 0.15 {
			voice = HiHatOpen
		}
		hits = hit(hits, voice, barOffset+t, vel)
	}
	return hits
}

// rockFill writes a descending snare/tom run across the last beat of a
// fill bar, velocity rising into the downbeat.
func (g *Generator) rockFill(hits []Hit, barOffset, beatsPerBar, baseVel float64) []Hit {
	fillStart := barOffset + beatsPerBar - 1
	run := []Voice{Snare, TomHigh, TomMid, TomLow}
	for i, voice := range run {
		vel := baseVel * (0.6 + 0.1*float64(i))
		hits = hit(hits, voice, fillStart+float64(i)*0.25, vel)
	}
	return hits
}

// isOffbeatEighth reports whether t sits on the "and" of a beat.
func isOffbeatEighth(t float64) bool {
	frac := t - float64(int(t))
	return frac == 0.5
}
