// Package terminal renders the encounter and reads player input through tcell.
//
// Drawing functions take a Canvas rather than a live screen so they can be
// exercised against tcell's simulation screen in tests.
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
)

// Canvas is the drawing surface; tcell.Screen satisfies it
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Terminal owns the tcell screen for the lifetime of the program
type Terminal struct {
	screen tcell.Screen
}

// New opens and initializes the real terminal
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen)
}

// NewWithScreen wraps an existing screen, initializing it
func NewWithScreen(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	screen.Clear()
	return &Terminal{screen: screen}, nil
}

// Screen exposes the underlying screen
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Size returns the screen dimensions in cells
func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// Render clears the screen, runs draw, then flushes
func (t *Terminal) Render(draw func(c Canvas, width int)) {
	t.screen.Clear()
	w, _ := t.screen.Size()
	draw(t.screen, w)
	t.screen.Show()
}

// Fini restores the terminal
func (t *Terminal) Fini() {
	t.screen.Fini()
}

// Actions starts the event poller and returns the decoded action stream
// The channel closes when the screen is finalized
func (t *Terminal) Actions() <-chan Action {
	out := make(chan Action, 64)
	Go(func() {
		defer close(out)

		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a := ActionForKey(ev)
				if a == ActionNone {
					a = ActionOther
				}
				out <- a
			case *tcell.EventResize:
				t.screen.Sync()
				out <- ActionResize
			}
		}
	})
	return out
}

var (
	seqCursorShow    = []byte("\x1b[?25h")
	seqAltScreenExit = []byte("\x1b[?1049l")
	seqSGR0          = []byte("\x1b[0m")
	seqAutoWrapOn    = []byte("\x1b[?7h")
	seqMouseOff      = []byte("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l")
)

// EmergencyReset attempts to restore the terminal to a sane state
// Call this from panic recovery when Fini cannot run normally
func EmergencyReset(w io.Writer) {
	w.Write(seqMouseOff)
	w.Write(seqCursorShow)
	w.Write(seqAltScreenExit)
	w.Write(seqSGR0)
	w.Write(seqAutoWrapOn)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
