package attack

import (
	"time"

	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/shape"
)

// Placed maps absolute grid cells to their wave index
type Placed map[core.Cell]shape.Wave

// Active is a placed attack stamped with its creation time
// The same data is kept as a fading attack after its damage phase ends
type Active struct {
	Cells     Placed
	CreatedAt time.Time
}

// MaxWave returns the highest wave index in the attack
func (p Placed) MaxWave() shape.Wave {
	var w shape.Wave
	for _, wave := range p {
		w = max(w, wave)
	}
	return w
}

// Within reports whether every cell lies inside size
func (p Placed) Within(size core.Size) bool {
	for c := range p {
		if !size.Contains(c) {
			return false
		}
	}
	return true
}
