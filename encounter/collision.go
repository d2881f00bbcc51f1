package encounter

import (
	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/layer"
	"github.com/lixenwraith/mini-adventure/phase"
)

// Lethal reports whether the player stands on a damage cell while damage is live
// Warning-only cells are always safe
func Lethal(ph phase.Phase, merged layer.Layer, player core.Cell) bool {
	return ph == phase.Damage && merged[player] == layer.GlyphDamage
}
