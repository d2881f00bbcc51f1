package phase

import "time"

// Phase is one stage of the attack cycle
type Phase uint8

const (
	Idle Phase = iota
	Warning
	Damage
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Warning:
		return "warning"
	case Damage:
		return "damage"
	}
	return "unknown"
}

// State is the scheduler's clock position
// WaveCount only grows; it drives difficulty
type State struct {
	Phase     Phase
	EnteredAt time.Time
	WaveCount int
}

// Elapsed returns time spent in the current phase
func (s State) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.EnteredAt)
}

// Step evaluates at most one transition at now
// Entering a phase stamps EnteredAt = now, so elapsed restarts at zero
// and the new phase cannot fire again within the same call
func Step(s State, now time.Time, t Timing) (State, bool) {
	d := t.Durations(s.WaveCount)
	elapsed := s.Elapsed(now)

	switch s.Phase {
	case Idle:
		if elapsed >= d.Idle {
			return State{Phase: Warning, EnteredAt: now, WaveCount: s.WaveCount}, true
		}
	case Warning:
		if elapsed >= d.Warning {
			return State{Phase: Damage, EnteredAt: now, WaveCount: s.WaveCount}, true
		}
	case Damage:
		if elapsed >= d.Damage {
			return State{Phase: Idle, EnteredAt: now, WaveCount: s.WaveCount + 1}, true
		}
	}
	return s, false
}
