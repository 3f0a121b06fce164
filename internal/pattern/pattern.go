// Package pattern implements the procedural drum pattern engine:
// style templates, swing, humanization, and pattern assembly.
package pattern

import (
	"fmt"
	"strings"

	apperrors "github.com/dygy/beatgen/internal/errors"
)

// Voice identifies a percussion role in the kit. The set is fixed;
// exporters rely on it never growing at runtime.
type Voice int

const (
	Kick Voice = iota
	Snare
	HiHatClosed
	HiHatOpen
	TomHigh
	TomMid
	TomLow
	Crash
	Ride
	numVoices
)

// String returns the short name used in logs and Strudel output.
func (v Voice) String() string {
	switch v {
	case Kick:
		return "kick"
	case Snare:
		return "snare"
	case HiHatClosed:
		return "hihat-closed"
	case HiHatOpen:
		return "hihat-open"
	case TomHigh:
		return "tom-high"
	case TomMid:
		return "tom-mid"
	case TomLow:
		return "tom-low"
	case Crash:
		return "crash"
	case Ride:
		return "ride"
	default:
		return fmt.Sprintf("voice(%d)", int(v))
	}
}

// Voices returns every drum voice in kit order.
func Voices() []Voice {
	vs := make([]Voice, 0, numVoices)
	for v := Kick; v < numVoices; v++ {
		vs = append(vs, v)
	}
	return vs
}

// Style selects the rule template used for generation.
type Style string

const (
	StyleRock       Style = "rock"
	StyleJazz       Style = "jazz"
	StyleElectronic Style = "electronic"
	StyleLatin      Style = "latin"
	StyleLofi       Style = "lofi"
)

// Styles returns the available kit styles.
func Styles() []Style {
	return []Style{StyleRock, StyleJazz, StyleElectronic, StyleLatin, StyleLofi}
}

// StyleDescription returns a description for each style.
func StyleDescription(s Style) string {
	descriptions := map[Style]string{
		StyleRock:       "Backbeat rock with syncopated kicks and tom fills",
		StyleJazz:       "Swung ride, feathered kick, probabilistic snare comping",
		StyleElectronic: "Four-on-the-floor with sixteenth hats and breakdown rolls",
		StyleLatin:      "Clave-based kick/snare phrasing with cascara toms",
		StyleLofi:       "Sparse swung ride with ghost-note snare texture",
	}
	return descriptions[s]
}

// ParseStyle converts a string to a Style. Unknown values fall back
// to rock, matching the generator's own default branch.
func ParseStyle(s string) Style {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock":
		return StyleRock
	case "jazz":
		return StyleJazz
	case "electronic", "edm", "house":
		return StyleElectronic
	case "latin":
		return StyleLatin
	case "lofi", "lo-fi":
		return StyleLofi
	default:
		return StyleRock
	}
}

// TimeSignature is one of the five supported meters.
type TimeSignature string

const (
	TimeSig34 TimeSignature = "3/4"
	TimeSig44 TimeSignature = "4/4"
	TimeSig54 TimeSignature = "5/4"
	TimeSig68 TimeSignature = "6/8"
	TimeSig78 TimeSignature = "7/8"
)

// TimeSignatures returns the supported meters.
func TimeSignatures() []TimeSignature {
	return []TimeSignature{TimeSig34, TimeSig44, TimeSig54, TimeSig68, TimeSig78}
}

// BeatsPerBar returns the bar length in beats. The two eighth-note
// meters count each eighth as half a beat, so 6/8 is 3.0 and 7/8 the
// single fractional case, 3.5. Unknown values fall back to 4/4.
func (ts TimeSignature) BeatsPerBar() float64 {
	switch ts {
	case TimeSig34:
		return 3
	case TimeSig54:
		return 5
	case TimeSig68:
		return 3
	case TimeSig78:
		return 3.5
	default:
		return 4
	}
}

// Meter returns the notated numerator and denominator, used for the
// MIDI meter meta event.
func (ts TimeSignature) Meter() (num, den int) {
	switch ts {
	case TimeSig34:
		return 3, 4
	case TimeSig54:
		return 5, 4
	case TimeSig68:
		return 6, 8
	case TimeSig78:
		return 7, 8
	default:
		return 4, 4
	}
}

// ParseTimeSignature converts a string like "7/8" to a TimeSignature.
// Unknown values fall back to 4/4.
func ParseTimeSignature(s string) TimeSignature {
	switch strings.TrimSpace(s) {
	case "3/4":
		return TimeSig34
	case "5/4":
		return TimeSig54
	case "6/8":
		return TimeSig68
	case "7/8":
		return TimeSig78
	default:
		return TimeSig44
	}
}

// Hit is one scheduled percussion event. Times and durations are in
// beats relative to the pattern start; velocity is normalized 0-1.
type Hit struct {
	Voice    Voice   `json:"voice"`
	Time     float64 `json:"time"`
	Velocity float64 `json:"velocity"`
	Duration float64 `json:"duration"`
}

// Settings is the input record for one generation request.
type Settings struct {
	Style         Style         `json:"style"`
	TimeSignature TimeSignature `json:"time_signature"`
	BPM           int           `json:"bpm"`
	Bars          int           `json:"bars"`
	Complexity    float64       `json:"complexity"`
	Dynamics      float64       `json:"dynamics"`
}

// Validate rejects out-of-range settings. The generator itself never
// fails; callers that need strict input checking (CLI, server) run
// this before generating.
func (s Settings) Validate() error {
	if s.BPM < 60 || s.BPM > 200 {
		return apperrors.NewValidationError("bpm", fmt.Sprintf("%d", s.BPM), apperrors.ErrBPMOutOfRange)
	}
	switch s.Bars {
	case 1, 2, 4, 8:
	default:
		return apperrors.NewValidationError("bars", fmt.Sprintf("%d", s.Bars), apperrors.ErrBarsInvalid)
	}
	if s.Complexity < 0 || s.Complexity > 1 {
		return apperrors.NewValidationError("complexity", fmt.Sprintf("%g", s.Complexity), apperrors.ErrRangeInvalid)
	}
	if s.Dynamics < 0 || s.Dynamics > 1 {
		return apperrors.NewValidationError("dynamics", fmt.Sprintf("%g", s.Dynamics), apperrors.ErrRangeInvalid)
	}
	return nil
}

// Pattern is the immutable result of one generation request. Hits are
// sorted ascending by time with near-simultaneous duplicates removed.
type Pattern struct {
	Hits          []Hit         `json:"hits"`
	LengthInBeats float64       `json:"length_in_beats"`
	TimeSignature TimeSignature `json:"time_signature"`
	BPM           int           `json:"bpm"`
}

// SecondsPerBeat converts the pattern tempo to wall-clock beat length.
func (p *Pattern) SecondsPerBeat() float64 {
	return 60.0 / float64(p.BPM)
}

// HitsFor returns all hits of a single voice, in time order.
func (p *Pattern) HitsFor(v Voice) []Hit {
	var hits []Hit
	for _, h := range p.Hits {
		if h.Voice == v {
			hits = append(hits, h)
		}
	}
	return hits
}

// HitsByVoice groups hits by their voice.
func (p *Pattern) HitsByVoice() map[Voice][]Hit {
	grouped := make(map[Voice][]Hit)
	for _, h := range p.Hits {
		grouped[h.Voice] = append(grouped[h.Voice], h)
	}
	return grouped
}

// HasVoice checks if at least one hit uses the given voice.
func (p *Pattern) HasVoice(v Voice) bool {
	for _, h := range p.Hits {
		if h.Voice == v {
			return true
		}
	}
	return false
}

// defaultDuration is the nominal ring length per voice, in beats.
func defaultDuration(v Voice) float64 {
	switch v {
	case Kick, Snare:
		return 0.25
	case HiHatClosed:
		return 0.1
	case HiHatOpen:
		return 0.5
	case TomHigh, TomMid, TomLow:
		return 0.3
	case Crash:
		return 1.5
	case Ride:
		return 0.5
	default:
		return 0.25
	}
}
