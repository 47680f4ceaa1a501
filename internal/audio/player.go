package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays cues. Implementations must not block the frame loop.
type Player interface {
	Play(c Cue)
}

// Nop is a Player that stays silent.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Cue) {}

// Speaker plays cues through the system audio device.
// If the device cannot be opened it degrades to silence.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	ready  bool
	logger *log.Logger
}

// NewSpeaker opens the audio device. It never fails; without a device every
// cue is dropped.
func NewSpeaker(logger *log.Logger) *Speaker {
	s := &Speaker{
		mixer:  &beep.Mixer{},
		logger: logger,
	}

	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		if logger != nil {
			logger.Warn("Audio unavailable, continuing without sound", "error", err)
		}
		return s
	}

	speaker.Play(s.mixer)
	s.ready = true
	return s
}

// Play implements Player.
func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}

	tone, err := Tone(SampleRate, c)
	if err != nil {
		if s.logger != nil {
			s.logger.Debug("Skipping cue", "cue", c, "error", err)
		}
		return
	}

	speaker.Lock()
	s.mixer.Add(tone)
	speaker.Unlock()
}

// Close silences pending tones and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}

	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.ready = false
}

var (
	_ Player = Nop{}
	_ Player = (*Speaker)(nil)
)
