package encounter

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/mini-adventure/arena"
	"github.com/lixenwraith/mini-adventure/attack"
	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/layer"
	"github.com/lixenwraith/mini-adventure/phase"
	"github.com/lixenwraith/mini-adventure/shape"
	"github.com/lixenwraith/mini-adventure/status"
)

// Options configures one session; all values are fixed for its lifetime
type Options struct {
	Label    string
	Grid     arena.Grid
	Library  shape.Library
	Timing   phase.Timing
	Attempts int        // Placement retry bound, <= 0 uses attack.DefaultAttempts
	Rand     *rand.Rand // nil seeds from the start time
	Stats    *status.Registry
}

// Session is one encounter: a player on a grid under a repeating attack cycle
type Session struct {
	label  string
	grid   arena.Grid
	timing phase.Timing
	rng    *rand.Rand
	sched  *phase.Scheduler
	start  time.Time

	player  core.Cell
	coin    core.Cell
	hasCoin bool
	score   int

	over   bool
	report Report
	last   Frame

	statTicks   *atomic.Int64
	statScore   *atomic.Int64
	statWave    *atomic.Int64
	statPlaced  *atomic.Int64
	statSkipped *atomic.Int64
	statProb    *status.AtomicFloat
}

// New validates preconditions and builds a session in Idle at start
func New(opts Options, start time.Time) (*Session, error) {
	if opts.Library.Len() == 0 {
		return nil, shape.ErrEmptyLibrary
	}
	if err := opts.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("grid %q: %w", opts.Label, err)
	}
	if err := opts.Timing.Validate(); err != nil {
		return nil, err
	}

	player, err := opts.Grid.Spawn()
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		seed := uint64(start.UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	stats := opts.Stats
	if stats == nil {
		stats = status.NewRegistry()
	}

	inst := attack.NewInstantiator(opts.Library, opts.Grid.Size, opts.Attempts, rng)
	s := &Session{
		label:  opts.Label,
		grid:   opts.Grid,
		timing: opts.Timing,
		rng:    rng,
		sched:  phase.NewScheduler(opts.Timing, inst, rng, start),
		start:  start,
		player: player,

		statTicks:   stats.Ints.Get(status.KeyTicks),
		statScore:   stats.Ints.Get(status.KeyScore),
		statWave:    stats.Ints.Get(status.KeyWaveCount),
		statPlaced:  stats.Ints.Get(status.KeyPlaced),
		statSkipped: stats.Ints.Get(status.KeySkipped),
		statProb:    stats.Floats.Get(status.KeyMultiProb),
	}
	s.placeCoin()
	s.last = s.frame(start, nil, phase.Event{})
	return s, nil
}

// Tick advances the session by one step at now
// Order: phase transition, input, collision, coin pickup, frame
// After a lethal hit the final frame is returned unchanged
func (s *Session) Tick(now time.Time, dir core.Direction) Frame {
	if s.over {
		return s.last
	}

	ev := s.sched.Advance(now)
	s.player = s.grid.Move(s.player, dir)

	layers := layer.Render(
		s.sched.Active(), s.sched.State().Phase, s.sched.PhaseElapsed(now),
		s.sched.Fading(), s.sched.FadeElapsed(now), s.timing.Stagger,
	)
	f := s.frame(now, layers, ev)

	if Lethal(f.Phase, f.Layer, s.player) {
		s.over = true
		s.report = Report{MapLabel: s.label, Score: s.score, Elapsed: f.Elapsed}
		f.Hit = true
	} else if s.hasCoin && s.player == s.coin {
		s.score++
		s.placeCoin()
		f.Collected = true
		f.Score, f.Coin, f.HasCoin = s.score, s.coin, s.hasCoin
	}

	s.record(ev, f)
	s.last = f
	return f
}

// Report returns the final report once the session has ended
func (s *Session) Report() (Report, bool) {
	return s.report, s.over
}

// Over reports whether a lethal collision ended the session
func (s *Session) Over() bool {
	return s.over
}

// Label returns the map label
func (s *Session) Label() string {
	return s.label
}

// Grid returns the session grid
func (s *Session) Grid() arena.Grid {
	return s.grid
}

// Last returns the most recent frame
func (s *Session) Last() Frame {
	return s.last
}

func (s *Session) frame(now time.Time, layers []layer.Layer, ev phase.Event) Frame {
	st := s.sched.State()
	return Frame{
		Player:           s.player,
		Coin:             s.coin,
		HasCoin:          s.hasCoin,
		Layer:            layer.Merge(layers...),
		Layers:           layers,
		Score:            s.score,
		Elapsed:          now.Sub(s.start),
		Phase:            st.Phase,
		WaveCount:        st.WaveCount,
		Durations:        s.sched.Durations(),
		MultiProbability: s.sched.MultiProbability(),
		MultiActive:      layer.NonEmpty(layers) > 1,
		Event:            ev,
	}
}

// placeCoin drops the coin on a random free cell other than the player's
func (s *Session) placeCoin() {
	free := s.grid.FreeCells(s.player)
	if len(free) == 0 {
		s.hasCoin = false
		return
	}
	s.coin = free[s.rng.IntN(len(free))]
	s.hasCoin = true
}

func (s *Session) record(ev phase.Event, f Frame) {
	s.statTicks.Add(1)
	s.statScore.Store(int64(f.Score))
	s.statWave.Store(int64(f.WaveCount))
	s.statPlaced.Add(int64(ev.Spawned))
	s.statSkipped.Add(int64(ev.Skipped))
	s.statProb.Set(f.MultiProbability)
}
