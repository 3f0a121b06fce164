// Package midifile writes generated patterns as Standard MIDI Files on
// the General MIDI percussion channel.
package midifile

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	apperrors "github.com/dygy/beatgen/internal/errors"
	"github.com/dygy/beatgen/internal/pattern"
)

const (
	ticksPerBeat = 960

	// drumChannel is MIDI channel 10, zero-indexed.
	drumChannel = 9
)

// gmKey maps a drum voice to its General MIDI percussion key.
func gmKey(v pattern.Voice) uint8 {
	switch v {
	case pattern.Kick:
		return 36
	case pattern.Snare:
		return 38
	case pattern.HiHatClosed:
		return 42
	case pattern.HiHatOpen:
		return 46
	case pattern.TomHigh:
		return 50
	case pattern.TomMid:
		return 47
	case pattern.TomLow:
		return 43
	case pattern.Crash:
		return 49
	case pattern.Ride:
		return 51
	default:
		return 38
	}
}

// midiVelocity converts a normalized velocity to the 1-127 MIDI range.
// Generated hits are never silent, so 0 is excluded.
func midiVelocity(v float64) uint8 {
	scaled := int(math.Round(v * 127))
	if scaled < 1 {
		scaled = 1
	}
	if scaled > 127 {
		scaled = 127
	}
	return uint8(scaled)
}

type event struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// Encode renders the pattern into an in-memory SMF: a tempo/meter
// track followed by one percussion track on channel 10.
func Encode(p *pattern.Pattern) (*smf.SMF, error) {
	if len(p.Hits) == 0 {
		return nil, apperrors.ErrEmptyPattern
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerBeat)

	num, den := p.TimeSignature.Meter()

	var meta smf.Track
	meta.Add(0, smf.MetaMeter(uint8(num), uint8(den)))
	meta.Add(0, smf.MetaTempo(float64(p.BPM)))
	meta.Close(0)
	if err := sm.Add(meta); err != nil {
		return nil, fmt.Errorf("adding tempo track: %w", err)
	}

	events := make([]event, 0, len(p.Hits)*2)
	for _, h := range p.Hits {
		key := gmKey(h.Voice)
		on := uint32(math.Round(h.Time * ticksPerBeat))
		length := uint32(math.Round(h.Duration * ticksPerBeat))
		if length == 0 {
			length = 1
		}
		events = append(events,
			event{tick: on, msg: midi.NoteOn(drumChannel, key, midiVelocity(h.Velocity))},
			event{tick: on + length, off: true, msg: midi.NoteOff(drumChannel, key)},
		)
	}
	// Note-offs sort before note-ons on the same tick so a voice never
	// retriggers against its own release.
	sort.Slice(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var track smf.Track
	prev := uint32(0)
	for _, e := range events {
		track.Add(e.tick-prev, e.msg)
		prev = e.tick
	}

	end := uint32(math.Round(p.LengthInBeats * ticksPerBeat))
	if prev < end {
		track.Close(end - prev)
	} else {
		track.Close(0)
	}
	if err := sm.Add(track); err != nil {
		return nil, fmt.Errorf("adding drum track: %w", err)
	}

	return sm, nil
}

// Write encodes the pattern and writes the SMF bytes to w.
func Write(p *pattern.Pattern, w io.Writer) error {
	sm, err := Encode(p)
	if err != nil {
		return err
	}
	_, err = sm.WriteTo(w)
	return err
}

// WriteFile encodes the pattern and writes it to path.
func WriteFile(p *pattern.Pattern, path string) error {
	sm, err := Encode(p)
	if err != nil {
		return err
	}
	return sm.WriteFile(path)
}
