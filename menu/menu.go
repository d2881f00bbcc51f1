package menu

import (
	"context"
	"log"

	"github.com/lixenwraith/mini-adventure/arena"
	"github.com/lixenwraith/mini-adventure/encounter"
	"github.com/lixenwraith/mini-adventure/terminal"
)

// Screen is where the menu draws; *terminal.Terminal satisfies it
type Screen interface {
	Render(draw func(c terminal.Canvas, width int))
}

// Run shows the menu until a map is confirmed
// Quit returns encounter.ErrQuit; a nil watcher disables live refresh
func Run(ctx context.Context, screen Screen, actions <-chan terminal.Action, m *Model, w *Watcher) (arena.Grid, string, error) {
	var events <-chan string
	var errs <-chan error
	if w != nil {
		events, errs = w.Events, w.Errors
	}

	draw := func() {
		v := m.View()
		screen.Render(func(c terminal.Canvas, _ int) {
			terminal.DrawMenu(c, v)
		})
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return arena.Grid{}, "", ctx.Err()

		case a, ok := <-actions:
			if !ok {
				return arena.Grid{}, "", encounter.ErrQuit
			}
			switch a {
			case terminal.ActionUp:
				m.Move(-1)
			case terminal.ActionDown:
				m.Move(1)
			case terminal.ActionQuit:
				return arena.Grid{}, "", encounter.ErrQuit
			case terminal.ActionConfirm:
				g, label, err := m.Selected()
				if err == nil {
					return g, label, nil
				}
				log.Printf("menu: %v", err)
			}
			draw()

		case name, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			log.Printf("menu: %s changed", name)
			if err := m.Refresh(); err != nil {
				log.Printf("menu: refresh: %v", err)
			}
			draw()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("menu: watch: %v", err)
		}
	}
}
