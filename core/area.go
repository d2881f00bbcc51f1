package core

// Cell is a grid coordinate, comparable and usable as a map key
type Cell struct {
	X, Y int
}

// Add returns the cell shifted by (dx, dy)
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Size is the fixed dimension of a session grid
type Size struct {
	Width, Height int // Minimum 1x1
}

// Valid reports whether both dimensions are at least 1
func (s Size) Valid() bool {
	return s.Width >= 1 && s.Height >= 1
}

// Contains reports whether c lies in [0,Width) x [0,Height)
func (s Size) Contains(c Cell) bool {
	return c.X >= 0 && c.X < s.Width && c.Y >= 0 && c.Y < s.Height
}

// Clamp pulls c inside the bounds
func (s Size) Clamp(c Cell) Cell {
	c.X = max(0, min(s.Width-1, c.X))
	c.Y = max(0, min(s.Height-1, c.Y))
	return c
}

// Cells returns the number of cells covered
func (s Size) Cells() int {
	return s.Width * s.Height
}
