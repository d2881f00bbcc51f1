package shape

import "github.com/lixenwraith/mini-adventure/core"

// Rotate turns cells 90°*k clockwise inside a w x h box
// Returns the remapped cells and the new dimensions
func Rotate(cells []Point, w, h, k int) ([]Point, int, int) {
	k = ((k % 4) + 4) % 4
	out := make([]Point, len(cells))

	switch k {
	case 1:
		for i, p := range cells {
			out[i] = Point{X: h - 1 - p.Y, Y: p.X, Wave: p.Wave}
		}
		return out, h, w
	case 2:
		for i, p := range cells {
			out[i] = Point{X: w - 1 - p.X, Y: h - 1 - p.Y, Wave: p.Wave}
		}
		return out, w, h
	case 3:
		for i, p := range cells {
			out[i] = Point{X: p.Y, Y: w - 1 - p.X, Wave: p.Wave}
		}
		return out, h, w
	}

	copy(out, cells)
	return out, w, h
}

// Mirror flips cells horizontally and/or vertically inside a w x h box
func Mirror(cells []Point, w, h int, flipH, flipV bool) ([]Point, int, int) {
	out := make([]Point, len(cells))
	for i, p := range cells {
		if flipH {
			p.X = w - 1 - p.X
		}
		if flipV {
			p.Y = h - 1 - p.Y
		}
		out[i] = p
	}
	return out, w, h
}

// Transform applies rotation then mirroring
// Mirroring uses the post-rotation bounding box, so the order is fixed
func (f Footprint) Transform(k int, flipH, flipV bool) Footprint {
	cells, w, h := Rotate(f.Cells, f.Width, f.Height, k)
	cells, w, h = Mirror(cells, w, h, flipH, flipV)
	return Footprint{Cells: cells, Width: w, Height: h}
}

// Translate shifts all cells by (dx, dy) into absolute grid positions
func (f Footprint) Translate(dx, dy int) map[core.Cell]Wave {
	placed := make(map[core.Cell]Wave, len(f.Cells))
	for _, p := range f.Cells {
		placed[core.Cell{X: p.X + dx, Y: p.Y + dy}] = p.Wave
	}
	return placed
}

// FitsIn reports whether the footprint's bounding box fits inside size
func (f Footprint) FitsIn(size core.Size) bool {
	return f.Width <= size.Width && f.Height <= size.Height
}
