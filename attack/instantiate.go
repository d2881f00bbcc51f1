package attack

import (
	"math/rand/v2"

	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/shape"
)

// DefaultAttempts bounds placement retries; oversized templates can make every draw fail
const DefaultAttempts = 40

// Instantiator turns templates into randomly transformed, in-bounds attacks
type Instantiator struct {
	Templates []shape.Template
	Size      core.Size
	Attempts  int // <= 0 means DefaultAttempts
	Rand      *rand.Rand
}

// NewInstantiator binds a template library to a grid size
func NewInstantiator(lib shape.Library, size core.Size, attempts int, rng *rand.Rand) *Instantiator {
	return &Instantiator{
		Templates: lib.Templates(),
		Size:      size,
		Attempts:  attempts,
		Rand:      rng,
	}
}

// Instantiate picks a template, rotates and mirrors it at random, and places it fully inside the grid
// Returns false when no template is available or every attempt overflowed the grid
func (in *Instantiator) Instantiate() (Placed, bool) {
	if len(in.Templates) == 0 {
		return nil, false
	}

	attempts := in.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	for range attempts {
		tpl := in.Templates[in.Rand.IntN(len(in.Templates))]

		k := in.Rand.IntN(4)
		flipH := in.Rand.IntN(2) == 1
		flipV := in.Rand.IntN(2) == 1
		fp := tpl.Transform(k, flipH, flipV)

		if !fp.FitsIn(in.Size) {
			continue
		}

		ox := in.Rand.IntN(in.Size.Width - fp.Width + 1)
		oy := in.Rand.IntN(in.Size.Height - fp.Height + 1)
		return Placed(fp.Translate(ox, oy)), true
	}

	return nil, false
}
