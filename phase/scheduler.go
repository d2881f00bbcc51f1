package phase

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/mini-adventure/attack"
)

// Spawner produces one placed attack, or false when none could be placed
type Spawner interface {
	Instantiate() (attack.Placed, bool)
}

// Event describes what Advance did on this tick
type Event struct {
	Transitioned bool
	From, To     Phase
	Spawned      int // Attacks created on Warning entry
	Skipped      int // Slots whose instantiation produced nothing
}

// Scheduler drives Idle -> Warning -> Damage -> Idle and owns the attacks in flight
type Scheduler struct {
	timing  Timing
	spawner Spawner
	rng     *rand.Rand

	state     State
	active    []attack.Active
	fading    []attack.Active
	fadeStart time.Time
}

// NewScheduler starts in Idle with wave count zero at now
func NewScheduler(t Timing, spawner Spawner, rng *rand.Rand, now time.Time) *Scheduler {
	return &Scheduler{
		timing:  t,
		spawner: spawner,
		rng:     rng,
		state:   State{Phase: Idle, EnteredAt: now},
	}
}

// Advance runs one transition evaluation and applies its entry effects
func (s *Scheduler) Advance(now time.Time) Event {
	if s.state.Phase == Idle && len(s.fading) > 0 && s.FadeElapsed(now) > s.timing.FadeWindow() {
		s.fading = nil
	}

	next, fired := Step(s.state, now, s.timing)
	if !fired {
		return Event{From: s.state.Phase, To: s.state.Phase}
	}

	ev := Event{Transitioned: true, From: s.state.Phase, To: next.Phase}
	s.state = next

	switch next.Phase {
	case Warning:
		s.fading = nil
		s.active = nil
		ev.Spawned, ev.Skipped = s.spawn(now, next.WaveCount)
	case Idle:
		s.fading = s.active
		s.fadeStart = now
		s.active = nil
	}
	return ev
}

// spawn creates the primary attack and, with the wave's multi probability, a second one
func (s *Scheduler) spawn(now time.Time, waveCount int) (spawned, skipped int) {
	place := func() {
		if p, ok := s.spawner.Instantiate(); ok {
			s.active = append(s.active, attack.Active{Cells: p, CreatedAt: now})
			spawned++
		} else {
			skipped++
		}
	}

	place()
	if s.rng.Float64() < s.timing.MultiProbability(waveCount) {
		place()
	}
	return spawned, skipped
}

// State returns the current schedule state
func (s *Scheduler) State() State {
	return s.state
}

// Timing returns the configured cadence
func (s *Scheduler) Timing() Timing {
	return s.timing
}

// Active returns attacks live during Warning and Damage
func (s *Scheduler) Active() []attack.Active {
	return s.active
}

// Fading returns attacks kept for residual display during Idle
func (s *Scheduler) Fading() []attack.Active {
	return s.fading
}

// PhaseElapsed returns time spent in the current phase
func (s *Scheduler) PhaseElapsed(now time.Time) time.Duration {
	return s.state.Elapsed(now)
}

// FadeElapsed returns time since the last Damage -> Idle transition
func (s *Scheduler) FadeElapsed(now time.Time) time.Duration {
	return now.Sub(s.fadeStart)
}

// Durations returns phase lengths for the current wave count
func (s *Scheduler) Durations() Durations {
	return s.timing.Durations(s.state.WaveCount)
}

// MultiProbability returns the current chance of a second attack
func (s *Scheduler) MultiProbability() float64 {
	return s.timing.MultiProbability(s.state.WaveCount)
}
