package encounter

import (
	"time"

	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/layer"
	"github.com/lixenwraith/mini-adventure/phase"
)

// Frame is the presentation-independent description of one tick
type Frame struct {
	Player  core.Cell
	Coin    core.Cell
	HasCoin bool

	Layer  layer.Layer   // Merged; the same layer collision was judged on
	Layers []layer.Layer // One per visible attack

	Score   int
	Elapsed time.Duration

	Phase            phase.Phase
	WaveCount        int
	Durations        phase.Durations
	MultiProbability float64
	MultiActive      bool // More than one attack drew cells this tick

	Event     phase.Event // Scheduler transition on this tick
	Collected bool        // Coin picked up this tick
	Hit       bool        // Lethal collision; session is over
}

// Report is the final result handed to score persistence
type Report struct {
	MapLabel string
	Score    int
	Elapsed  time.Duration
}

// Seconds returns elapsed play time in seconds
func (r Report) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// Reporter receives the final report exactly once per finished session
type Reporter interface {
	Report(Report) error
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(Report) error

// Report calls f(r)
func (f ReporterFunc) Report(r Report) error {
	return f(r)
}
