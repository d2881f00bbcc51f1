package encounter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/mini-adventure/core"
)

// DefaultTick is the fixed loop period
const DefaultTick = 50 * time.Millisecond

// ErrQuit is returned when the player asks to leave mid-session
var ErrQuit = errors.New("quit")

// InputFunc returns the pending move for this tick; ok=false requests quit
type InputFunc func() (dir core.Direction, ok bool)

// Runner drives a session on a fixed tick until a hit, quit, or cancellation
type Runner struct {
	Session  *Session
	Clock    Clock
	Tick     time.Duration
	Input    InputFunc
	Draw     func(Frame)
	Reporter Reporter
}

// Run blocks until the session ends
// A hit reports the score once and returns it; quit and cancel stop at a tick boundary without reporting
func (r *Runner) Run(ctx context.Context) (Report, error) {
	tick := r.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	clock := r.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return Report{}, ctx.Err()
		case <-ticker.C:
		}

		dir := core.DirNone
		if r.Input != nil {
			var ok bool
			if dir, ok = r.Input(); !ok {
				return Report{}, ErrQuit
			}
		}

		f := r.Session.Tick(clock.Now(), dir)
		if r.Draw != nil {
			r.Draw(f)
		}

		rep, over := r.Session.Report()
		if !over {
			continue
		}

		log.Printf("encounter: %s over, score=%d time=%.1fs", rep.MapLabel, rep.Score, rep.Seconds())
		if r.Reporter != nil {
			if err := r.Reporter.Report(rep); err != nil {
				return rep, fmt.Errorf("report score: %w", err)
			}
		}
		return rep, nil
	}
}
