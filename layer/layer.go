package layer

import (
	"time"

	"github.com/lixenwraith/mini-adventure/attack"
	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/phase"
)

// Glyph is the visible state of an attacked cell
type Glyph uint8

const (
	GlyphWarning Glyph = iota + 1
	GlyphDamage
)

func (g Glyph) String() string {
	switch g {
	case GlyphWarning:
		return "warning"
	case GlyphDamage:
		return "damage"
	}
	return "none"
}

// Layer maps cells to glyphs for one tick; never kept across ticks
type Layer map[core.Cell]Glyph

// Warn shows cells whose wave delay has elapsed as warnings; later waves are absent
func Warn(p attack.Placed, elapsed, stagger time.Duration) Layer {
	l := make(Layer, len(p))
	for c, wave := range p {
		if elapsed >= wave.Delay(stagger) {
			l[c] = GlyphWarning
		}
	}
	return l
}

// Strike escalates due cells to damage and keeps the rest as warnings
func Strike(p attack.Placed, elapsed, stagger time.Duration) Layer {
	l := make(Layer, len(p))
	for c, wave := range p {
		if elapsed >= wave.Delay(stagger) {
			l[c] = GlyphDamage
		} else {
			l[c] = GlyphWarning
		}
	}
	return l
}

// Fade keeps damage residue until each cell's wave delay passes, in strike order
func Fade(p attack.Placed, fadeElapsed, stagger time.Duration) Layer {
	l := make(Layer, len(p))
	for c, wave := range p {
		if fadeElapsed < wave.Delay(stagger) {
			l[c] = GlyphDamage
		}
	}
	return l
}

// Render produces one layer per attack for the current phase
// Fading attacks are only drawn during Idle
func Render(active []attack.Active, ph phase.Phase, phaseElapsed time.Duration,
	fading []attack.Active, fadeElapsed time.Duration, stagger time.Duration) []Layer {

	var layers []Layer
	switch ph {
	case phase.Warning:
		for _, a := range active {
			layers = append(layers, Warn(a.Cells, phaseElapsed, stagger))
		}
	case phase.Damage:
		for _, a := range active {
			layers = append(layers, Strike(a.Cells, phaseElapsed, stagger))
		}
	case phase.Idle:
		for _, a := range fading {
			layers = append(layers, Fade(a.Cells, fadeElapsed, stagger))
		}
	}
	return layers
}

// Merge combines layers; damage always wins over warning at a shared cell
func Merge(layers ...Layer) Layer {
	merged := make(Layer)
	for _, l := range layers {
		for c, g := range l {
			// GlyphDamage orders above GlyphWarning
			if g > merged[c] {
				merged[c] = g
			}
		}
	}
	return merged
}

// NonEmpty counts layers that draw at least one cell
func NonEmpty(layers []Layer) int {
	n := 0
	for _, l := range layers {
		if len(l) > 0 {
			n++
		}
	}
	return n
}

// Count returns the number of cells with glyph g
func (l Layer) Count(g Glyph) int {
	n := 0
	for _, v := range l {
		if v == g {
			n++
		}
	}
	return n
}
