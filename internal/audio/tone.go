// Package audio renders the game's cues as short sine tones.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the rate every tone is rendered at.
const SampleRate = beep.SampleRate(44100)

// Tone shape shared by every cue.
const (
	ToneDuration = 100 * time.Millisecond
	StartGain    = 0.1
	EndGain      = 0.01
)

// Cue is a named sound the game emits.
type Cue string

const (
	CuePaddle       Cue = "paddle"
	CueWall         Cue = "wall"
	CueScore        Cue = "score"
	CueDisintegrate Cue = "disintegrate"
)

// Frequency returns the pitch of the cue in Hz, or 0 for an unknown cue.
func (c Cue) Frequency() float64 {
	switch c {
	case CuePaddle:
		return 220
	case CueWall:
		return 110
	case CueScore:
		return 440
	case CueDisintegrate:
		return 80
	default:
		return 0
	}
}

// decay scales a stream by a gain falling exponentially from StartGain to
// EndGain over total samples.
type decay struct {
	src   beep.Streamer
	pos   int
	total int
}

// Gain returns the envelope value at sample i.
func (d *decay) Gain(i int) float64 {
	if d.total <= 1 {
		return StartGain
	}
	t := float64(i) / float64(d.total-1)
	return StartGain * math.Pow(EndGain/StartGain, t)
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.src.Stream(samples)
	for i := range n {
		g := d.Gain(d.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error {
	return d.src.Err()
}

// Tone returns the finite stream for a cue.
func Tone(sr beep.SampleRate, c Cue) (beep.Streamer, error) {
	freq := c.Frequency()
	if freq <= 0 {
		return nil, fmt.Errorf("audio: unknown cue %q", c)
	}

	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot create %s tone: %w", c, err)
	}

	total := sr.N(ToneDuration)
	return beep.Take(total, &decay{src: sine, total: total}), nil
}
