package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// xterm-256 palette indices
var (
	StylePlayer      = fg(21)  // royal blue
	StyleCoin        = fg(226) // gold
	StyleWarning     = fg(208) // orange
	StyleDamage      = fg(196) // red
	StyleWall        = fg(245) // gray
	StyleLabel       = fg(45)  // cyan
	StyleValue       = fg(220) // yellow
	StyleTitle       = fg(51)  // light blue
	StyleAccent      = fg(199)
	StyleMultiBanner = fg(201) // magenta
	StyleDim         = fg(244)
	StyleText        = tcell.StyleDefault
)

const (
	runePlayer  = '@'
	runeCoin    = 'o'
	runeWall    = 'H'
	runeBorder  = 'H'
	runeWarning = '!'
	runeDamage  = 'X'
	runeFloor   = '.'
)

func fg(idx int) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.PaletteColor(idx))
}

// span is a run of text sharing one style
type span struct {
	text  string
	style tcell.Style
}

// drawSpans writes spans left to right from (x, y) and returns the next column
func drawSpans(c Canvas, x, y int, spans ...span) int {
	for _, s := range spans {
		x = drawText(c, x, y, s.text, s.style)
	}
	return x
}

// drawText writes s from (x, y) and returns the next column
func drawText(c Canvas, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		c.SetContent(x, y, r, nil, style)
		x += max(1, runewidth.RuneWidth(r))
	}
	return x
}

// spansWidth is the display width of spans
func spansWidth(spans ...span) int {
	w := 0
	for _, s := range spans {
		for _, r := range s.text {
			w += max(1, runewidth.RuneWidth(r))
		}
	}
	return w
}
