package phase

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTiming = errors.New("invalid timing")

// Timing holds the cadence and difficulty ramp of the attack cycle
type Timing struct {
	BaseIdle       time.Duration `yaml:"base_idle"`
	BaseWarning    time.Duration `yaml:"base_warning"`
	Damage         time.Duration `yaml:"damage"`
	MinIdle        time.Duration `yaml:"min_idle"`
	MinWarning     time.Duration `yaml:"min_warning"`
	StepDelta      time.Duration `yaml:"step_delta"`       // Subtracted from idle and warning per step
	AttacksPerStep int           `yaml:"attacks_per_step"` // Completed waves per acceleration step

	ExtraStep   int     `yaml:"extra_step"`   // Waves per multi-attack probability step
	ExtraGrowth float64 `yaml:"extra_growth"` // Probability added per step
	ExtraMax    float64 `yaml:"extra_max"`

	Stagger time.Duration `yaml:"stagger"` // Delay between successive wave indices
}

// Durations is the per-wave phase length set
type Durations struct {
	Idle    time.Duration
	Warning time.Duration
	Damage  time.Duration
}

// DefaultTiming returns the stock cadence
func DefaultTiming() Timing {
	return Timing{
		BaseIdle:       1500 * time.Millisecond,
		BaseWarning:    1000 * time.Millisecond,
		Damage:         500 * time.Millisecond,
		MinIdle:        0,
		MinWarning:     500 * time.Millisecond,
		StepDelta:      100 * time.Millisecond,
		AttacksPerStep: 3,
		ExtraStep:      5,
		ExtraGrowth:    0.10,
		ExtraMax:       1.0,
		Stagger:        100 * time.Millisecond,
	}
}

// Validate rejects timings that would divide by zero or produce non-positive damage
func (t Timing) Validate() error {
	switch {
	case t.AttacksPerStep < 1:
		return fmt.Errorf("%w: attacks_per_step %d < 1", ErrInvalidTiming, t.AttacksPerStep)
	case t.ExtraStep < 1:
		return fmt.Errorf("%w: extra_step %d < 1", ErrInvalidTiming, t.ExtraStep)
	case t.Damage <= 0:
		return fmt.Errorf("%w: damage %v must be positive", ErrInvalidTiming, t.Damage)
	case t.BaseIdle < 0 || t.BaseWarning < 0 || t.MinIdle < 0 || t.MinWarning < 0:
		return fmt.Errorf("%w: negative phase duration", ErrInvalidTiming)
	case t.StepDelta < 0:
		return fmt.Errorf("%w: step_delta %v is negative", ErrInvalidTiming, t.StepDelta)
	case t.Stagger < 0:
		return fmt.Errorf("%w: stagger %v is negative", ErrInvalidTiming, t.Stagger)
	case t.ExtraGrowth < 0 || t.ExtraMax < 0:
		return fmt.Errorf("%w: negative multi-attack probability", ErrInvalidTiming)
	}
	return nil
}

// Durations computes phase lengths for a wave count
// Idle and warning shrink by StepDelta every AttacksPerStep waves, floored at their minimums
func (t Timing) Durations(waveCount int) Durations {
	steps := time.Duration(waveCount / t.AttacksPerStep)
	return Durations{
		Idle:    max(t.MinIdle, t.BaseIdle-t.StepDelta*steps),
		Warning: max(t.MinWarning, t.BaseWarning-t.StepDelta*steps),
		Damage:  t.Damage,
	}
}

// MultiProbability is the chance of a second simultaneous attack, capped at ExtraMax and 1.0
func (t Timing) MultiProbability(waveCount int) float64 {
	steps := waveCount / t.ExtraStep
	return min(t.ExtraMax, float64(steps)*t.ExtraGrowth, 1.0)
}

// FadeWindow is the longest possible wave delay; fading attacks are gone after it
func (t Timing) FadeWindow() time.Duration {
	return 8 * t.Stagger
}
