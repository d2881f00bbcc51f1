package shape

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/mini-adventure/core"
)

const (
	MinWave Wave = 1
	MaxWave Wave = 9
)

var (
	ErrEmptyShape   = errors.New("shape has no cells")
	ErrEmptyLibrary = errors.New("no attack templates")
)

// Wave is the relative activation order of a cell within one attack
type Wave uint8

// Valid reports whether the wave lies in [MinWave, MaxWave]
func (w Wave) Valid() bool {
	return w >= MinWave && w <= MaxWave
}

// Delay returns the activation offset for this wave: (wave-1) * stagger
func (w Wave) Delay(stagger time.Duration) time.Duration {
	return time.Duration(w-MinWave) * stagger
}

// Point is one (x, y, wave) triple of a footprint
type Point struct {
	X, Y int
	Wave Wave
}

// Footprint holds cells plus their bounding box
type Footprint struct {
	Cells  []Point
	Width  int // Bounding width
	Height int // Bounding height
}

// Template is a named, immutable attack footprint
type Template struct {
	Name string
	Footprint
}

// NewTemplate normalizes points to the origin and computes the tight bounding box
func NewTemplate(name string, points []Point) (Template, error) {
	if len(points) == 0 {
		return Template{}, fmt.Errorf("%s: %w", name, ErrEmptyShape)
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	seen := make(map[core.Cell]struct{}, len(points))
	cells := make([]Point, len(points))
	for i, p := range points {
		if !p.Wave.Valid() {
			return Template{}, fmt.Errorf("%s: wave %d at (%d,%d) outside %d..%d", name, p.Wave, p.X, p.Y, MinWave, MaxWave)
		}
		c := core.Cell{X: p.X - minX, Y: p.Y - minY}
		if _, dup := seen[c]; dup {
			return Template{}, fmt.Errorf("%s: duplicate cell (%d,%d)", name, p.X, p.Y)
		}
		seen[c] = struct{}{}
		cells[i] = Point{X: c.X, Y: c.Y, Wave: p.Wave}
	}

	return Template{
		Name: name,
		Footprint: Footprint{
			Cells:  cells,
			Width:  maxX - minX + 1,
			Height: maxY - minY + 1,
		},
	}, nil
}

// Count returns number of cells in the footprint
func (f Footprint) Count() int {
	return len(f.Cells)
}

// MaxWave returns the highest wave index present
func (f Footprint) MaxWave() Wave {
	var w Wave
	for _, p := range f.Cells {
		w = max(w, p.Wave)
	}
	return w
}
