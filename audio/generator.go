package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// Waveform selects the oscillator shape
type Waveform uint8

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveNoise
)

// Tone is a finite streamer sweeping linearly from Start to End Hz
// with a short attack and a linear release
type Tone struct {
	sr     beep.SampleRate
	wave   Waveform
	start  float64
	end    float64
	gain   float64
	total  int
	attack int
	pos    int
	phase  float64
}

// NewTone creates a tone of duration d
func NewTone(sr beep.SampleRate, wave Waveform, startHz, endHz, gain float64, d time.Duration) *Tone {
	total := sr.N(d)
	return &Tone{
		sr:     sr,
		wave:   wave,
		start:  startHz,
		end:    endHz,
		gain:   gain,
		total:  total,
		attack: min(total/4, sr.N(5*time.Millisecond)),
	}
}

// Stream fills samples until the tone is exhausted
func (g *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}

	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}

		progress := float64(g.pos) / float64(g.total)
		freq := g.start + (g.end-g.start)*progress

		var s float64
		switch g.wave {
		case WaveSine:
			s = math.Sin(2 * math.Pi * g.phase)
		case WaveSquare:
			s = 1
			if g.phase >= 0.5 {
				s = -1
			}
		case WaveNoise:
			s = rand.Float64()*2 - 1
		}

		g.phase += freq / float64(g.sr)
		if g.phase >= 1 {
			g.phase -= math.Floor(g.phase)
		}

		env := 1 - progress
		if g.attack > 0 && g.pos < g.attack {
			env *= float64(g.pos) / float64(g.attack)
		}

		v := s * env * g.gain
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

// Err always returns nil
func (g *Tone) Err() error {
	return nil
}
