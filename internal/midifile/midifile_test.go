package midifile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dygy/beatgen/internal/errors"
	"github.com/dygy/beatgen/internal/pattern"
)

func testPattern() *pattern.Pattern {
	return &pattern.Pattern{
		Hits: []pattern.Hit{
			{Voice: pattern.Kick, Time: 0, Velocity: 0.9, Duration: 0.25},
			{Voice: pattern.HiHatClosed, Time: 0.5, Velocity: 0.4, Duration: 0.1},
			{Voice: pattern.Snare, Time: 1, Velocity: 0.8, Duration: 0.25},
		},
		LengthInBeats: 4,
		TimeSignature: pattern.TimeSig44,
		BPM:           120,
	}
}

func TestEncodeTrackLayout(t *testing.T) {
	sm, err := Encode(testPattern())
	require.NoError(t, err)

	require.Len(t, sm.Tracks, 2, "tempo track plus one drum track")

	tempos := sm.TempoChanges()
	require.NotEmpty(t, tempos)
	assert.InDelta(t, 120.0, tempos[0].BPM, 0.01)
}

func TestEncodeDrumEvents(t *testing.T) {
	sm, err := Encode(testPattern())
	require.NoError(t, err)

	type note struct {
		tick uint32
		key  uint8
		vel  uint8
	}
	var notes []note

	var abs uint32
	for _, ev := range sm.Tracks[1] {
		abs += ev.Delta
		var ch, key, vel uint8
		if ev.Message.GetNoteStart(&ch, &key, &vel) {
			assert.Equal(t, uint8(9), ch, "percussion channel")
			notes = append(notes, note{tick: abs, key: key, vel: vel})
		}
	}

	require.Len(t, notes, 3)
	assert.Equal(t, note{tick: 0, key: 36, vel: 114}, notes[0])
	assert.Equal(t, note{tick: 480, key: 42, vel: 51}, notes[1])
	assert.Equal(t, note{tick: 960, key: 38, vel: 102}, notes[2])
}

func TestEncodeMeter(t *testing.T) {
	p := testPattern()
	p.TimeSignature = pattern.TimeSig78
	p.LengthInBeats = 3.5

	sm, err := Encode(p)
	require.NoError(t, err)

	found := false
	for _, ev := range sm.Tracks[0] {
		var num, den uint8
		if ev.Message.GetMetaMeter(&num, &den) {
			found = true
			assert.Equal(t, uint8(7), num)
			assert.Equal(t, uint8(8), den)
		}
	}
	assert.True(t, found, "meter meta event present")
}

func TestEncodeEmptyPattern(t *testing.T) {
	p := &pattern.Pattern{LengthInBeats: 4, TimeSignature: pattern.TimeSig44, BPM: 120}

	_, err := Encode(p)
	assert.ErrorIs(t, err, apperrors.ErrEmptyPattern)
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(testPattern(), &buf))

	// SMF header chunk magic.
	require.GreaterOrEqual(t, buf.Len(), 14)
	assert.Equal(t, "MThd", buf.String()[:4])
}

func TestVelocityMapping(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{0.1, 13},
		{0.5, 64},
		{1.0, 127},
		{0.0, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, midiVelocity(tc.in), "velocity %v", tc.in)
	}
}
