package render

import (
	"math"
	"math/rand"

	"github.com/dygy/beatgen/internal/pattern"
)

// floatBuffer is mono float64 samples at unity gain.
type floatBuffer []float64

// expDecay applies an exponential amplitude envelope in place. tau is
// the time constant in seconds.
func expDecay(buf floatBuffer, sampleRate int, tau float64) {
	k := 1.0 / (tau * float64(sampleRate))
	for i := range buf {
		buf[i] *= math.Exp(-float64(i) * k)
	}
}

// noise fills a buffer with uniform white noise.
func noise(rng *rand.Rand, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}
	return buf
}

// sineSweep renders a sine whose frequency glides exponentially from
// start to end across the buffer.
func sineSweep(sampleRate int, startHz, endHz float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	for i := range buf {
		t := float64(i) / float64(samples)
		freq := startHz * math.Pow(endHz/startHz, t)
		buf[i] = math.Sin(2 * math.Pi * phase)
		phase += freq / float64(sampleRate)
	}
	return buf
}

// highpass runs a crude one-pole high-pass, brightening noise into
// cymbal territory.
func highpass(buf floatBuffer, amount float64) floatBuffer {
	out := make(floatBuffer, len(buf))
	prev := 0.0
	for i, s := range buf {
		out[i] = s - prev*amount
		prev = s
	}
	return out
}

func mix(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

func samplesFor(sampleRate int, seconds float64) int {
	return int(seconds * float64(sampleRate))
}

// synthesize renders one drum voice at unity gain. Each recipe is a
// short percussive one-shot; velocity scaling happens at mix time.
func synthesize(v pattern.Voice, sampleRate int, rng *rand.Rand) floatBuffer {
	switch v {
	case pattern.Kick:
		// Pitch glide into the sub register with a touch of drive.
		buf := sineSweep(sampleRate, 150, 40, samplesFor(sampleRate, 0.35))
		expDecay(buf, sampleRate, 0.12)
		for i := range buf {
			buf[i] = math.Tanh(buf[i] * 2.5)
		}
		return buf

	case pattern.Snare:
		tone := sineSweep(sampleRate, 220, 180, samplesFor(sampleRate, 0.2))
		expDecay(tone, sampleRate, 0.06)
		rattle := noise(rng, samplesFor(sampleRate, 0.25))
		expDecay(rattle, sampleRate, 0.08)
		return mix(tone, rattle, 0.8)

	case pattern.HiHatClosed:
		buf := highpass(noise(rng, samplesFor(sampleRate, 0.08)), 0.95)
		expDecay(buf, sampleRate, 0.025)
		return buf

	case pattern.HiHatOpen:
		buf := highpass(noise(rng, samplesFor(sampleRate, 0.5)), 0.95)
		expDecay(buf, sampleRate, 0.18)
		return buf

	case pattern.TomHigh:
		return tom(sampleRate, 220)
	case pattern.TomMid:
		return tom(sampleRate, 160)
	case pattern.TomLow:
		return tom(sampleRate, 110)

	case pattern.Crash:
		buf := highpass(noise(rng, samplesFor(sampleRate, 2.0)), 0.9)
		expDecay(buf, sampleRate, 0.7)
		return buf

	case pattern.Ride:
		wash := highpass(noise(rng, samplesFor(sampleRate, 1.0)), 0.9)
		expDecay(wash, sampleRate, 0.35)
		ping := sineSweep(sampleRate, 1050, 1050, samplesFor(sampleRate, 0.6))
		expDecay(ping, sampleRate, 0.2)
		return mix(wash, ping, 0.35)

	default:
		return nil
	}
}

// tom renders a pitched drum with a short downward glide.
func tom(sampleRate int, baseHz float64) floatBuffer {
	buf := sineSweep(sampleRate, baseHz*1.3, baseHz, samplesFor(sampleRate, 0.3))
	expDecay(buf, sampleRate, 0.1)
	return buf
}
