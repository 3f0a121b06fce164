// Package render synthesizes generated patterns into audio: each drum
// voice is a short synthesized one-shot, mixed into a stereo 16-bit
// WAV at the pattern tempo.
package render

import (
	"io"
	"math"
	"math/rand"
	"os"

	"github.com/youpy/go-wav"

	apperrors "github.com/dygy/beatgen/internal/errors"
	"github.com/dygy/beatgen/internal/pattern"
)

const (
	// DefaultSampleRate matches the usual audio device rate.
	DefaultSampleRate = 44100

	bitsPerSample = 16
	numChannels   = 2

	// tailSeconds leaves room for the last hit to ring out.
	tailSeconds = 2.0

	// noiseSeed keeps the noise-based voices identical between renders
	// so the same pattern always produces the same file.
	noiseSeed = 909
)

// Renderer mixes patterns into audio buffers. One-shot voices are
// synthesized once and cached across renders.
type Renderer struct {
	sampleRate int
	voices     map[pattern.Voice]floatBuffer
}

// New creates a renderer at the given sample rate.
func New(sampleRate int) *Renderer {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	r := &Renderer{
		sampleRate: sampleRate,
		voices:     make(map[pattern.Voice]floatBuffer, 9),
	}
	rng := rand.New(rand.NewSource(noiseSeed))
	for _, v := range pattern.Voices() {
		r.voices[v] = synthesize(v, sampleRate, rng)
	}
	return r
}

// SampleRate returns the renderer's sample rate.
func (r *Renderer) SampleRate() int {
	return r.sampleRate
}

// Render mixes the pattern into a mono float buffer. Hit velocity
// scales each one-shot; the master bus is soft-clipped so stacked
// voices cannot blow past full scale.
func (r *Renderer) Render(p *pattern.Pattern) (floatBuffer, error) {
	if len(p.Hits) == 0 {
		return nil, apperrors.ErrEmptyPattern
	}

	secPerBeat := p.SecondsPerBeat()
	total := samplesFor(r.sampleRate, p.LengthInBeats*secPerBeat+tailSeconds)
	master := make(floatBuffer, total)

	for _, h := range p.Hits {
		shot := r.voices[h.Voice]
		start := samplesFor(r.sampleRate, h.Time*secPerBeat)
		for i, s := range shot {
			at := start + i
			if at >= total {
				break
			}
			master[at] += s * h.Velocity
		}
	}

	for i, s := range master {
		master[i] = math.Tanh(s)
	}
	return master, nil
}

// EncodeWAV renders the pattern and writes it as a 16-bit stereo WAV.
func (r *Renderer) EncodeWAV(p *pattern.Pattern, w io.Writer) error {
	master, err := r.Render(p)
	if err != nil {
		return err
	}

	samples := make([]wav.Sample, len(master))
	for i, s := range master {
		v := int(s * math.MaxInt16)
		samples[i] = wav.Sample{Values: [2]int{v, v}}
	}

	writer := wav.NewWriter(w, uint32(len(samples)), numChannels, uint32(r.sampleRate), bitsPerSample)
	return writer.WriteSamples(samples)
}

// WriteFile renders the pattern into a WAV file at path.
func (r *Renderer) WriteFile(p *pattern.Pattern, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.EncodeWAV(p, f)
}
