package pattern

import (
	"math"
	"testing"
)

// jitterTol is the humanization timing bound at the orchestrator's
// fixed variation (0.03 x 0.4), with a little float slack.
const jitterTol = 0.015

func TestRockMinimalStructure(t *testing.T) {
	s := Settings{
		Style: StyleRock, TimeSignature: TimeSig44, BPM: 120, Bars: 1,
		Complexity: 0, Dynamics: 0,
	}

	for seed := int64(0); seed < 10; seed++ {
		p := NewWithSeed(seed).Generate(s)

		if got := countNear(p.Hits, Kick, 0, 0.05); got != 1 {
			t.Errorf("seed %d: kicks near beat 1: got %d, want 1", seed, got)
		}
		if got := countNear(p.Hits, Kick, 2, 0.05); got != 1 {
			t.Errorf("seed %d: kicks near beat 3: got %d, want 1", seed, got)
		}
		if got := len(p.HitsFor(Kick)); got != 2 {
			t.Errorf("seed %d: total kicks: got %d, want 2", seed, got)
		}

		if got := countNear(p.Hits, Snare, 1, 0.05); got != 1 {
			t.Errorf("seed %d: snares near beat 2: got %d, want 1", seed, got)
		}
		if got := len(p.HitsFor(Snare)); got != 1 {
			t.Errorf("seed %d: beat-4 snare and ghosts must be suppressed at zero complexity, got %d snares", seed, got)
		}

		if got := countNear(p.Hits, Crash, 0, 0.05); got != 1 {
			t.Errorf("seed %d: opening crash: got %d, want 1", seed, got)
		}
	}
}

func TestRockFillBar(t *testing.T) {
	s := Settings{
		Style: StyleRock, TimeSignature: TimeSig44, BPM: 120, Bars: 4,
		Complexity: 0.8, Dynamics: 0.5,
	}
	p := NewWithSeed(21).Generate(s)

	// Bar 3 (beats 12-16) is the fill bar: hats drop out, toms run
	// down the last beat.
	for _, h := range p.HitsFor(HiHatClosed) {
		if h.Time > 12.1 && h.Time < 15.9 {
			t.Errorf("hi-hat at %v inside fill bar", h.Time)
		}
	}
	for _, tom := range []Voice{TomHigh, TomMid, TomLow} {
		found := false
		for _, h := range p.HitsFor(tom) {
			if h.Time > 14.9 && h.Time < 16.1 {
				found = true
			}
		}
		if !found {
			t.Errorf("fill bar missing %v in last beat", tom)
		}
	}
}

func TestJazzStructure(t *testing.T) {
	s := Settings{
		Style: StyleJazz, TimeSignature: TimeSig44, BPM: 160, Bars: 1,
		Complexity: 0, Dynamics: 0,
	}
	p := NewWithSeed(31).Generate(s)

	// Ride: four main beats plus the two triplet upbeats.
	if got := len(p.HitsFor(Ride)); got != 6 {
		t.Errorf("ride count: got %d, want 6", got)
	}
	if got := countNear(p.Hits, Ride, 1.67, 0.05); got != 1 {
		t.Errorf("triplet upbeat after beat 2: got %d rides", got)
	}

	// Feathered kick on every beat, clamped up to the velocity floor.
	kicks := p.HitsFor(Kick)
	if len(kicks) != 4 {
		t.Fatalf("feathered kick: got %d, want 4", len(kicks))
	}
	for _, k := range kicks {
		if k.Velocity < 0.1 {
			t.Errorf("kick velocity %v below clamp floor", k.Velocity)
		}
	}

	// Hi-hat foot strictly on 2 and 4.
	if got := len(p.HitsFor(HiHatClosed)); got != 2 {
		t.Errorf("hi-hat foot count: got %d, want 2", got)
	}

	// No comping at zero complexity.
	if got := len(p.HitsFor(Snare)); got != 0 {
		t.Errorf("snare comping must be silent at zero complexity, got %d", got)
	}
}

func TestJazzPhraseEndCrash(t *testing.T) {
	s := Settings{
		Style: StyleJazz, TimeSignature: TimeSig44, BPM: 160, Bars: 4,
		Complexity: 0.5, Dynamics: 0.5,
	}
	p := NewWithSeed(37).Generate(s)

	if got := countNear(p.Hits, Crash, 16, 0.05); got != 1 {
		t.Errorf("crash on downbeat after 4-bar phrase: got %d, want 1", got)
	}
}

func TestElectronicFourOnTheFloor(t *testing.T) {
	s := Settings{
		Style: StyleElectronic, TimeSignature: TimeSig44, BPM: 128, Bars: 2,
		Complexity: 0.5, Dynamics: 0.5,
	}
	p := NewWithSeed(41).Generate(s)

	for beat := 0; beat < 8; beat++ {
		if got := countNear(p.Hits, Kick, float64(beat), 0.05); got != 1 {
			t.Errorf("kick on beat %d: got %d, want 1", beat, got)
		}
	}
	for _, snareBeat := range []float64{1, 3, 5, 7} {
		if got := countNear(p.Hits, Snare, snareBeat, 0.05); got != 1 {
			t.Errorf("snare near beat %v: got %d, want 1", snareBeat, got)
		}
	}
}

func TestElectronicBreakdown(t *testing.T) {
	s := Settings{
		Style: StyleElectronic, TimeSignature: TimeSig44, BPM: 128, Bars: 8,
		Complexity: 0.7, Dynamics: 0.5,
	}
	p := NewWithSeed(43).Generate(s)

	// Bar index 7 (beats 28-32): no kicks at all.
	for _, h := range p.HitsFor(Kick) {
		if h.Time > 27.9 {
			t.Errorf("kick at %v inside breakdown bar", h.Time)
		}
	}

	// Sixteen-step snare roll with rising velocity.
	var roll []Hit
	for _, h := range p.HitsFor(Snare) {
		if h.Time > 27.9 && h.Time < 32 {
			roll = append(roll, h)
		}
	}
	if len(roll) != 16 {
		t.Fatalf("breakdown roll: got %d snares, want 16", len(roll))
	}
	if roll[len(roll)-1].Velocity <= roll[0].Velocity {
		t.Errorf("roll velocity must ascend: first %v, last %v", roll[0].Velocity, roll[len(roll)-1].Velocity)
	}

	// Crash lands on the next bar boundary.
	if got := countNear(p.Hits, Crash, 32, 0.05); got != 1 {
		t.Errorf("crash at bar boundary: got %d, want 1", got)
	}
}

func TestLatinClaveAlternation(t *testing.T) {
	s := Settings{
		Style: StyleLatin, TimeSignature: TimeSig44, BPM: 110, Bars: 2,
		Complexity: 0, Dynamics: 0,
	}
	p := NewWithSeed(47).Generate(s)

	barPositions := func(v Voice, bar int) map[float64]bool {
		set := make(map[float64]bool)
		for _, h := range p.HitsFor(v) {
			t := h.Time - float64(bar)*4
			if t < -0.1 || t > 3.9 {
				continue
			}
			// Snap back to the quarter grid the template wrote to.
			set[math.Round(t*4)/4] = true
		}
		return set
	}

	sameSet := func(a, b map[float64]bool) bool {
		if len(a) != len(b) {
			return false
		}
		for k := range a {
			if !b[k] {
				return false
			}
		}
		return true
	}

	if sameSet(barPositions(Kick, 0), barPositions(Kick, 1)) {
		t.Error("kick phrasing must differ between clave sides")
	}
	if sameSet(barPositions(Snare, 0), barPositions(Snare, 1)) {
		t.Error("snare phrasing must differ between clave sides")
	}
}

func TestLatinCymbalFollowsDynamics(t *testing.T) {
	base := Settings{
		Style: StyleLatin, TimeSignature: TimeSig44, BPM: 110, Bars: 1,
		Complexity: 0,
	}

	quiet := base
	quiet.Dynamics = 0.2
	p := NewWithSeed(53).Generate(quiet)
	if !p.HasVoice(HiHatClosed) || p.HasVoice(Ride) {
		t.Error("low dynamics should keep time on the closed hat")
	}

	loud := base
	loud.Dynamics = 0.9
	p = NewWithSeed(53).Generate(loud)
	if !p.HasVoice(Ride) {
		t.Error("high dynamics should move the cymbal layer to the ride")
	}
}

func TestLofiStructure(t *testing.T) {
	s := Settings{
		Style: StyleLofi, TimeSignature: TimeSig44, BPM: 80, Bars: 1,
		Complexity: 0, Dynamics: 0,
	}
	p := NewWithSeed(59).Generate(s)

	// Backbeats only at zero complexity: no ghosts.
	snares := p.HitsFor(Snare)
	if len(snares) != 2 {
		t.Fatalf("snares: got %d, want the two backbeats", len(snares))
	}
	if countNear(p.Hits, Snare, 1, 0.05) != 1 || countNear(p.Hits, Snare, 3, 0.05) != 1 {
		t.Error("backbeats must sit on beats 2 and 4")
	}

	// Hat is not the timekeeper: just the two foot accents.
	if got := len(p.HitsFor(HiHatClosed)) + len(p.HitsFor(HiHatOpen)); got != 2 {
		t.Errorf("hat events: got %d, want 2", got)
	}

	// Kick always opens the bar.
	if got := countNear(p.Hits, Kick, 0, 0.05); got != 1 {
		t.Errorf("opening kick: got %d, want 1", got)
	}
}

func TestSwingScope(t *testing.T) {
	straightStyles := []Style{StyleRock, StyleElectronic, StyleLatin}
	for _, style := range straightStyles {
		s := Settings{
			Style: style, TimeSignature: TimeSig44, BPM: 120, Bars: 2,
			Complexity: 0.6, Dynamics: 0.5,
		}
		p := NewWithSeed(61).Generate(s)

		// Straight styles stay on the quarter-beat grid, within the
		// humanization jitter bound.
		for _, h := range p.Hits {
			frac := h.Time - math.Floor(h.Time)
			onGrid := false
			for _, g := range []float64{0, 0.25, 0.5, 0.75, 1} {
				if math.Abs(frac-g) <= jitterTol {
					onGrid = true
				}
			}
			if !onGrid {
				t.Errorf("%s: hit at %v shows swing displacement", style, h.Time)
			}
		}
	}

	// Swung styles leave the offbeat window empty: everything that was
	// at x.5 has been pushed toward the triplet position.
	for _, style := range []Style{StyleJazz, StyleLofi} {
		s := Settings{
			Style: style, TimeSignature: TimeSig44, BPM: 120, Bars: 4,
			Complexity: 0.8, Dynamics: 0.5,
		}
		p := NewWithSeed(67).Generate(s)

		for _, h := range p.Hits {
			frac := h.Time - math.Floor(h.Time)
			if math.Abs(frac-0.5) < 0.08-jitterTol {
				t.Errorf("%s: hit at %v left unswung in the offbeat window", style, h.Time)
			}
		}
	}
}

func TestShortMeterReducedForms(t *testing.T) {
	for _, style := range Styles() {
		s := Settings{
			Style: style, TimeSignature: TimeSig34, BPM: 120, Bars: 2,
			Complexity: 0.5, Dynamics: 0.5,
		}
		p := NewWithSeed(71).Generate(s)

		if len(p.Hits) == 0 {
			t.Errorf("%s: empty pattern in 3/4", style)
		}
		// Nothing may reach past the pattern end plus the trailing
		// crash allowance.
		for _, h := range p.Hits {
			if h.Time > p.LengthInBeats+0.05 {
				t.Errorf("%s: hit at %v beyond pattern end %v", style, h.Time, p.LengthInBeats)
			}
		}
	}
}
