package strudel

import (
	"strings"
	"testing"

	"github.com/dygy/beatgen/internal/pattern"
)

func fourOnFloor() *pattern.Pattern {
	var hits []pattern.Hit
	for b := 0.0; b < 4; b++ {
		hits = append(hits, pattern.Hit{Voice: pattern.Kick, Time: b, Velocity: 0.9, Duration: 0.25})
	}
	hits = append(hits,
		pattern.Hit{Voice: pattern.Snare, Time: 1, Velocity: 0.8, Duration: 0.25},
		pattern.Hit{Voice: pattern.Snare, Time: 3, Velocity: 0.8, Duration: 0.25},
		pattern.Hit{Voice: pattern.HiHatClosed, Time: 0.5, Velocity: 0.4, Duration: 0.1},
		pattern.Hit{Voice: pattern.HiHatOpen, Time: 2.5, Velocity: 0.5, Duration: 0.5},
	)
	return &pattern.Pattern{
		Hits:          hits,
		LengthInBeats: 4,
		TimeSignature: pattern.TimeSig44,
		BPM:           128,
	}
}

func TestRenderStack(t *testing.T) {
	g := NewGenerator(16)
	out := g.Render(fourOnFloor(), DrumKitTR909)

	if !strings.HasPrefix(out, "setcpm(128/4)") {
		t.Errorf("missing tempo line, got:\n%s", out)
	}
	if !strings.Contains(out, "stack(") {
		t.Error("multi-voice pattern should use stack()")
	}
	if !strings.Contains(out, `.bank("RolandTR909")`) {
		t.Error("kit bank not applied")
	}
	if !strings.Contains(out, ".room(0.2)") {
		t.Error("stack missing room send")
	}
}

func TestRenderKickLine(t *testing.T) {
	g := NewGenerator(16)
	out := g.Render(fourOnFloor(), DrumKitTR909)

	if !strings.Contains(out, `s("bd ~*3 bd ~*3 bd ~*3 bd ~*3")`) {
		t.Errorf("four-on-the-floor kick line wrong:\n%s", out)
	}
}

func TestRenderHatCut(t *testing.T) {
	g := NewGenerator(16)
	out := g.Render(fourOnFloor(), DrumKitTR909)

	if !strings.Contains(out, ".cut(1)") {
		t.Error("hat line missing cut group")
	}
	if !strings.Contains(out, "oh") || !strings.Contains(out, "hh") {
		t.Error("hat line should carry both closed and open hats")
	}
}

func TestRenderEmptyPattern(t *testing.T) {
	g := NewGenerator(16)
	p := &pattern.Pattern{LengthInBeats: 4, TimeSignature: pattern.TimeSig44, BPM: 120}

	if out := g.Render(p, DrumKitTR808); out != "" {
		t.Errorf("empty pattern should render to empty string, got %q", out)
	}
}

func TestRenderOddMeter(t *testing.T) {
	p := &pattern.Pattern{
		Hits: []pattern.Hit{
			{Voice: pattern.Kick, Time: 0, Velocity: 0.9, Duration: 0.25},
			{Voice: pattern.Snare, Time: 1.5, Velocity: 0.8, Duration: 0.25},
		},
		LengthInBeats: 3.5,
		TimeSignature: pattern.TimeSig78,
		BPM:           140,
	}

	out := NewGenerator(16).Render(p, DrumKitAcoustic)
	// 3.5 beats at sixteenth resolution is a 14-slot bar.
	if !strings.Contains(out, `s("bd ~*13")`) {
		t.Errorf("7/8 kick line wrong:\n%s", out)
	}
	if !strings.Contains(out, `s("~*6 sd ~*7")`) {
		t.Errorf("7/8 snare line wrong:\n%s", out)
	}
}

func TestSimplifyDrumPattern(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want string
	}{
		{"Empty", nil, "~"},
		{"SingleRest", []string{"bd", "~", "bd"}, "bd ~ bd"},
		{"RunOfRests", []string{"bd", "~", "~", "~", "bd"}, "bd ~*3 bd"},
		{"TrailingRests", []string{"sd", "~", "~"}, "sd ~*2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := simplifyDrumPattern(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseDrumKit(t *testing.T) {
	if got := ParseDrumKit("909"); got != DrumKitTR909 {
		t.Errorf("909: got %s", got)
	}
	if got := ParseDrumKit("lo-fi"); got != DrumKitLofi {
		t.Errorf("lo-fi: got %s", got)
	}
	if got := ParseDrumKit("unknown"); got != DrumKitTR808 {
		t.Errorf("unknown should default to tr808, got %s", got)
	}
}

func TestStyleKit(t *testing.T) {
	if got := StyleKit(pattern.StyleElectronic); got != DrumKitTR909 {
		t.Errorf("electronic: got %s", got)
	}
	if got := StyleKit(pattern.StyleLofi); got != DrumKitLofi {
		t.Errorf("lofi: got %s", got)
	}
	if got := StyleKit(pattern.StyleRock); got != DrumKitAcoustic {
		t.Errorf("rock: got %s", got)
	}
}
