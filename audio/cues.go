package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/mini-adventure/encounter"
	"github.com/lixenwraith/mini-adventure/phase"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one sound event
type Cue uint8

const (
	CueNone Cue = iota
	CueWarning
	CueStrike
	CueCoin
	CueHit
)

// CueFor picks the sound for a frame; a hit outranks everything else
func CueFor(f encounter.Frame) Cue {
	switch {
	case f.Hit:
		return CueHit
	case f.Collected:
		return CueCoin
	case f.Event.Transitioned && f.Event.To == phase.Damage:
		return CueStrike
	case f.Event.Transitioned && f.Event.To == phase.Warning && f.Event.Spawned > 0:
		return CueWarning
	}
	return CueNone
}

// Player plays encounter cues through the speaker
// Safe to use when Init failed; every call becomes a no-op
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates an idle player
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// OnFrame plays the cue for f, if any
func (p *Player) OnFrame(f encounter.Frame) {
	p.Play(CueFor(f))
}

// Play queues a cue on the mixer
func (p *Player) Play(c Cue) {
	s := Streamer(c)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Streamer builds the sound for a cue
func Streamer(c Cue) beep.Streamer {
	switch c {
	case CueWarning:
		return NewTone(sampleRate, WaveSine, 660, 990, 0.15, 90*time.Millisecond)
	case CueStrike:
		return NewTone(sampleRate, WaveSquare, 140, 90, 0.12, 160*time.Millisecond)
	case CueCoin:
		sine, err := generators.SineTone(sampleRate, 1320)
		if err != nil {
			return nil
		}
		return beep.Take(sampleRate.N(60*time.Millisecond), sine)
	case CueHit:
		return NewTone(sampleRate, WaveNoise, 0, 0, 0.3, 400*time.Millisecond)
	}
	return nil
}
