// Package play streams a rendered pattern to the default audio device.
package play

import (
	"context"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/dygy/beatgen/internal/pattern"
	"github.com/dygy/beatgen/internal/render"
)

// bufferStreamer streams a rendered mono buffer as stereo samples.
type bufferStreamer struct {
	buf []float64
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.buf) {
			return i, true
		}
		v := s.buf[s.pos]
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *bufferStreamer) Err() error { return nil }

// Player renders patterns and plays them through the speaker.
type Player struct {
	renderer *render.Renderer
	loop     bool
}

// New creates a player. With loop set, Play repeats the pattern until
// the context is cancelled.
func New(r *render.Renderer, loop bool) *Player {
	return &Player{renderer: r, loop: loop}
}

// Play renders the pattern and blocks until playback finishes or the
// context is cancelled.
func (p *Player) Play(ctx context.Context, pat *pattern.Pattern) error {
	buf, err := p.renderer.Render(pat)
	if err != nil {
		return err
	}

	sr := beep.SampleRate(p.renderer.SampleRate())
	if err := speaker.Init(sr, sr.N(time.Millisecond*100)); err != nil {
		return err
	}
	defer speaker.Close()

	for {
		done := make(chan struct{})
		speaker.Play(beep.Seq(&bufferStreamer{buf: buf}, beep.Callback(func() {
			close(done)
		})))

		select {
		case <-ctx.Done():
			speaker.Clear()
			return ctx.Err()
		case <-done:
		}

		if !p.loop {
			return nil
		}
	}
}
