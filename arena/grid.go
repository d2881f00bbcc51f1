package arena

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lixenwraith/mini-adventure/core"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 10
	EmptyLabel    = "Empty map"

	wallRune  = '#'
	startRune = 'P'
)

var (
	ErrMalformedGrid = errors.New("malformed grid")
	ErrNoFreeCell    = errors.New("grid has no free cell")
)

// Grid is the session-scoped board: fixed size, walls and an optional start
type Grid struct {
	core.Size
	Walls    map[core.Cell]struct{}
	Start    core.Cell
	HasStart bool
}

// Empty returns a wall-free grid
func Empty(width, height int) Grid {
	return Grid{
		Size:  core.Size{Width: width, Height: height},
		Walls: make(map[core.Cell]struct{}),
	}
}

// ParseMap reads a rectangular text map: '#' is a wall, 'P' the start, anything else free
// Blank lines are ignored
func ParseMap(r io.Reader) (Grid, error) {
	var rows [][]rune
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ln := strings.TrimRight(sc.Text(), "\r")
		if ln == "" {
			continue
		}
		rows = append(rows, []rune(ln))
	}
	if err := sc.Err(); err != nil {
		return Grid{}, err
	}
	if len(rows) == 0 {
		return Grid{}, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}

	g := Empty(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.Width {
			return Grid{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedGrid, y+1, len(row), g.Width)
		}
		for x, ch := range row {
			switch ch {
			case wallRune:
				g.Walls[core.Cell{X: x, Y: y}] = struct{}{}
			case startRune:
				g.Start = core.Cell{X: x, Y: y}
				g.HasStart = true
			}
		}
	}
	return g, nil
}

// LoadMap reads a map file
func LoadMap(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return Grid{}, err
	}
	defer f.Close()

	g, err := ParseMap(f)
	if err != nil {
		return Grid{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Validate checks the grid can host a session
func (g Grid) Validate() error {
	if !g.Size.Valid() {
		return fmt.Errorf("%w: size %dx%d", ErrMalformedGrid, g.Width, g.Height)
	}
	if _, ok := g.firstFree(); !ok {
		return ErrNoFreeCell
	}
	return nil
}

// IsWall reports whether c is impassable
func (g Grid) IsWall(c core.Cell) bool {
	_, ok := g.Walls[c]
	return ok
}

// Spawn returns the start cell, or the first free cell in row-major order when absent or blocked
func (g Grid) Spawn() (core.Cell, error) {
	if g.HasStart && g.Contains(g.Start) && !g.IsWall(g.Start) {
		return g.Start, nil
	}
	if c, ok := g.firstFree(); ok {
		return c, nil
	}
	return core.Cell{}, ErrNoFreeCell
}

// Move applies a one-cell displacement, clamped to bounds; moves onto walls are rejected
func (g Grid) Move(from core.Cell, dir core.Direction) core.Cell {
	dx, dy := dir.Delta()
	to := g.Clamp(from.Add(dx, dy))
	if g.IsWall(to) {
		return from
	}
	return to
}

// FreeCells lists non-wall cells in row-major order, skipping excluded ones
func (g Grid) FreeCells(exclude ...core.Cell) []core.Cell {
	skip := make(map[core.Cell]struct{}, len(exclude))
	for _, c := range exclude {
		skip[c] = struct{}{}
	}

	cells := make([]core.Cell, 0, max(0, g.Cells()-len(g.Walls)))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := core.Cell{X: x, Y: y}
			if g.IsWall(c) {
				continue
			}
			if _, ok := skip[c]; ok {
				continue
			}
			cells = append(cells, c)
		}
	}
	return cells
}

func (g Grid) firstFree() (core.Cell, bool) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := core.Cell{X: x, Y: y}
			if !g.IsWall(c) {
				return c, true
			}
		}
	}
	return core.Cell{}, false
}
