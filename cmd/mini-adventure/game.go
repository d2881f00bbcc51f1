package main

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/mini-adventure/arena"
	"github.com/lixenwraith/mini-adventure/audio"
	"github.com/lixenwraith/mini-adventure/config"
	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/encounter"
	"github.com/lixenwraith/mini-adventure/score"
	"github.com/lixenwraith/mini-adventure/shape"
	"github.com/lixenwraith/mini-adventure/status"
	"github.com/lixenwraith/mini-adventure/terminal"
)

// game wires one session to the terminal, audio and score board
type game struct {
	opts    config.Options
	term    *terminal.Terminal
	actions <-chan terminal.Action
	sound   *audio.Player
	board   *score.Board
	stats   *status.Registry
	seed    uint64
	debug   bool
}

func (g *game) play(ctx context.Context, lib shape.Library, grid arena.Grid, label string) error {
	var rng *rand.Rand
	if g.seed != 0 {
		rng = rand.New(rand.NewPCG(g.seed, g.seed))
	}

	clock := encounter.SystemClock{}
	session, err := encounter.New(encounter.Options{
		Label:    label,
		Grid:     grid,
		Library:  lib,
		Timing:   g.opts.Timing,
		Attempts: g.opts.Attempts,
		Rand:     rng,
		Stats:    g.stats,
	}, clock.Now())
	if err != nil {
		return err
	}

	runner := &encounter.Runner{
		Session: session,
		Clock:   clock,
		Tick:    g.opts.Tick,
		Input:   inputFrom(g.actions),
		Draw: func(f encounter.Frame) {
			g.sound.OnFrame(f)
			g.draw(grid, f)
		},
		Reporter: encounter.ReporterFunc(func(r encounter.Report) error {
			return g.board.Save(r.MapLabel, r.Score, r.Elapsed)
		}),
	}

	rep, err := runner.Run(ctx)
	for _, line := range g.stats.Lines() {
		log.Printf("stats: %s", line)
	}
	if err != nil && !session.Over() {
		return err
	}
	if err != nil {
		// Losing the score file must not hide the result
		log.Printf("main: %v", err)
	}

	g.term.Render(func(c terminal.Canvas, width int) {
		y := terminal.DrawGame(c, width, g.view(grid, session.Last()))
		terminal.DrawGameOver(c, y, rep)
	})
	return waitAnyKey(ctx, g.actions)
}

func (g *game) draw(grid arena.Grid, f encounter.Frame) {
	g.term.Render(func(c terminal.Canvas, width int) {
		terminal.DrawGame(c, width, g.view(grid, f))
	})
}

func (g *game) view(grid arena.Grid, f encounter.Frame) terminal.GameView {
	v := terminal.GameView{Grid: grid, Frame: f}
	if g.debug {
		v.Debug = g.stats.Lines()
	}
	return v
}

// inputFrom adapts the action stream to the runner's per-tick input
// At most one move is consumed per tick; quit or a closed stream ends the session
func inputFrom(actions <-chan terminal.Action) encounter.InputFunc {
	return func() (core.Direction, bool) {
		for {
			select {
			case a, ok := <-actions:
				if !ok || a == terminal.ActionQuit {
					return core.DirNone, false
				}
				if d := a.Direction(); d != core.DirNone {
					return d, true
				}
			default:
				return core.DirNone, true
			}
		}
	}
}

// waitAnyKey blocks until a key press, ignoring resizes
func waitAnyKey(ctx context.Context, actions <-chan terminal.Action) error {
	// Keys already queued during the final ticks would skip the screen
	ready := time.Now().Add(300 * time.Millisecond)
	for {
		select {
		case <-ctx.Done():
			return nil
		case a, ok := <-actions:
			if !ok {
				return nil
			}
			if time.Now().Before(ready) {
				continue
			}
			if a != terminal.ActionResize {
				return nil
			}
		}
	}
}
