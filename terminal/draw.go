package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mini-adventure/arena"
	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/encounter"
	"github.com/lixenwraith/mini-adventure/layer"
	"github.com/lixenwraith/mini-adventure/score"
)

const (
	Title        = "MINI-ADVENTURE - MadeByQwerty"
	gameHint     = "Arrows/WASD: move, Q: quit"
	menuHint     = "↑/↓ or W/S: select  |  Enter: confirm  |  Q: quit"
	multiBanner  = "▶ Multi-attacks!"
	normalBanner = "----------"

	sideGap = 4

	// Grid rows (1-based inside the border) carrying the side readouts
	sideRowScore = 5
	sideRowTime  = 6

	gridTop = 5
)

// GameView is one game screen
type GameView struct {
	Grid  arena.Grid
	Frame encounter.Frame
	Debug []string // Extra status lines under the grid
}

// DrawGame draws the HUD and bordered grid and returns the first free row below them
func DrawGame(c Canvas, width int, v GameView) int {
	f := v.Frame
	drawTitle(c)
	drawText(c, 0, 2, gameHint, StyleLabel)

	d := f.Durations
	speed := []span{
		{"Speed:", StyleLabel},
		{" idle ", StyleText}, {fmtSec(d.Idle.Seconds()), StyleValue},
		{" • warning ", StyleText}, {fmtSec(d.Warning.Seconds()), StyleValue},
		{" • damage ", StyleText}, {fmtSec(d.Damage.Seconds()), StyleValue},
	}
	end := drawSpans(c, 0, 3, speed...)
	prob := []span{
		{"Multi%:", StyleLabel},
		{" ", StyleText},
		{fmt.Sprintf("%d%%", int(math.Round(f.MultiProbability*100))), StyleValue},
	}
	drawSpans(c, max(end+1, width-spansWidth(prob...)), 3, prob...)

	if f.MultiActive {
		drawText(c, 0, 4, multiBanner, StyleMultiBanner)
	} else {
		drawText(c, 0, 4, normalBanner, StyleDim)
	}

	viewW := v.Grid.Width + 2
	viewH := v.Grid.Height + 2
	scoreRow := min(sideRowScore, viewH-2)
	timeRow := scoreRow + 1
	sideX := viewW*2 - 1 + sideGap

	for ry := 0; ry < viewH; ry++ {
		y := gridTop + ry
		for rx := 0; rx < viewW; rx++ {
			r, style := runeBorder, StyleWall
			if ry > 0 && ry < viewH-1 && rx > 0 && rx < viewW-1 {
				r, style = cellLook(v.Grid, f, core.Cell{X: rx - 1, Y: ry - 1})
			}
			c.SetContent(rx*2, y, r, nil, style)
		}

		switch ry {
		case scoreRow:
			drawSpans(c, sideX, y,
				span{"Score:", StyleValue},
				span{" ", StyleText},
				span{fmt.Sprintf("%d", f.Score), StyleCoin},
			)
		case timeRow:
			drawSpans(c, sideX, y,
				span{"Time:", StyleValue},
				span{fmt.Sprintf(" %ds", int(f.Elapsed.Seconds())), StyleText},
			)
		}
	}

	y := gridTop + viewH + 1
	for _, line := range v.Debug {
		drawText(c, 0, y, line, StyleDim)
		y++
	}
	return y
}

// cellLook picks the rune and style for one interior cell
// Walls win; an attack glyph keeps the player or coin color when it covers them
func cellLook(g arena.Grid, f encounter.Frame, here core.Cell) (rune, tcell.Style) {
	if g.IsWall(here) {
		return runeWall, StyleWall
	}

	isPlayer := here == f.Player
	isCoin := f.HasCoin && here == f.Coin

	if glyph, ok := f.Layer[here]; ok {
		r := runeWarning
		style := StyleWarning
		if glyph == layer.GlyphDamage {
			r, style = runeDamage, StyleDamage
		}
		switch {
		case isPlayer:
			return r, StylePlayer
		case isCoin:
			return r, StyleCoin
		}
		return r, style
	}

	switch {
	case isPlayer:
		return runePlayer, StylePlayer
	case isCoin:
		return runeCoin, StyleCoin
	}
	return runeFloor, StyleText
}

// DrawGameOver draws the end banner starting at row y
func DrawGameOver(c Canvas, y int, rep encounter.Report) {
	drawText(c, 0, y, "You were hit! GAME OVER.", StyleDamage)
	drawText(c, 0, y+1, fmt.Sprintf("Final score: %d | Time: %ds", rep.Score, int(rep.Seconds())), StyleText)
	drawText(c, 0, y+2, "Press any key to quit...", StyleDim)
}

// MenuView is one map-selection screen
type MenuView struct {
	Options    []string // Display names; index 0 is the empty default map
	Index      int
	Preview    arena.Grid
	PreviewErr error
	Label      string // Map label of the highlighted option
	Scores     []score.Entry
	ScoreLimit int
}

// DrawMenu draws the option list with the preview and scoreboard side by side
func DrawMenu(c Canvas, v MenuView) {
	drawTitle(c)
	drawText(c, 0, 2, menuHint, StyleLabel)

	y := 4
	for i, name := range v.Options {
		if i == v.Index {
			drawText(c, 0, y, ">", StyleAccent)
		}
		drawText(c, 2, y, name, StyleText)
		y++
	}
	y++

	right := ScoreLines(v.Label, v.Scores, v.ScoreLimit)
	rightX := v.Preview.Width*2 - 1 + 6
	if v.PreviewErr != nil {
		msg := fmt.Sprintf("Read error: %v", v.PreviewErr)
		drawText(c, 0, y+1, msg, StyleDamage)
		rightX = max(rightX, spansWidth(span{text: msg})+6)
	}
	drawText(c, 0, y, "Preview:", StyleLabel)
	if v.PreviewErr == nil {
		drawPreview(c, 0, y+1, v.Preview)
	}

	for i, line := range right {
		style := StyleText
		if i == 0 {
			style = StyleLabel
		}
		drawText(c, rightX, y+i, line, style)
	}
}

// drawPreview draws the grid with single-space separators, no border
func drawPreview(c Canvas, x, y int, g arena.Grid) {
	for gy := 0; gy < g.Height; gy++ {
		for gx := 0; gx < g.Width; gx++ {
			here := core.Cell{X: gx, Y: gy}
			r, style := runeFloor, StyleText
			switch {
			case g.HasStart && here == g.Start:
				r, style = runePlayer, StylePlayer
			case g.IsWall(here):
				r, style = runeWall, StyleWall
			}
			c.SetContent(x+gx*2, y+gy, r, nil, style)
		}
	}
}

// ScoreLines formats the per-map scoreboard; the first line is the header
func ScoreLines(label string, entries []score.Entry, limit int) []string {
	lines := []string{fmt.Sprintf("Top %d — %s", limit, score.DisplayName(label))}
	if len(entries) == 0 {
		return append(lines, "(no scores yet)")
	}
	for i, e := range entries {
		if i == limit {
			break
		}
		lines = append(lines, fmt.Sprintf("%2d) %4d pts — %3ds — %s", i+1, e.Score, int(math.Round(e.TimeSec)), e.At))
	}
	return lines
}

func drawTitle(c Canvas) {
	drawText(c, 0, 0, Title, StyleTitle)
	drawText(c, 0, 1, strings.Repeat("═", len(Title)), StyleAccent)
}

func fmtSec(s float64) string {
	return fmt.Sprintf("%.1fs", s)
}
