package layer

import (
	"testing"
	"time"

	"github.com/lixenwraith/mini-adventure/attack"
	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/phase"
	"github.com/lixenwraith/mini-adventure/shape"
)

const stagger = 100 * time.Millisecond

// staircase has one cell per wave 1..9 along the x axis
func staircase() attack.Placed {
	p := attack.Placed{}
	for i := 0; i < 9; i++ {
		p[core.Cell{X: i}] = shape.Wave(i + 1)
	}
	return p
}

func TestWarnRevealsByWave(t *testing.T) {
	p := staircase()

	if got := len(Warn(p, 0, stagger)); got != 1 {
		t.Errorf("at 0: %d cells, want 1", got)
	}
	if got := len(Warn(p, 250*time.Millisecond, stagger)); got != 3 {
		t.Errorf("at 250ms: %d cells, want 3", got)
	}
	l := Warn(p, time.Second, stagger)
	if len(l) != 9 || l.Count(GlyphWarning) != 9 {
		t.Errorf("at 1s: %v", l)
	}
}

func TestStrikeNeverDropsCells(t *testing.T) {
	p := staircase()
	l := Strike(p, 300*time.Millisecond, stagger)

	if len(l) != 9 {
		t.Fatalf("strike drew %d cells, want all 9", len(l))
	}
	if l.Count(GlyphDamage) != 4 || l.Count(GlyphWarning) != 5 {
		t.Errorf("damage=%d warning=%d, want 4/5", l.Count(GlyphDamage), l.Count(GlyphWarning))
	}
}

func TestStrikeIsMonotonic(t *testing.T) {
	p := staircase()
	prev := Layer{}
	for ms := 0; ms <= 1000; ms += 10 {
		cur := Strike(p, time.Duration(ms)*time.Millisecond, stagger)
		for c, g := range prev {
			if g == GlyphDamage && cur[c] != GlyphDamage {
				t.Fatalf("at %dms cell %v lost damage", ms, c)
			}
		}
		prev = cur
	}
}

func TestFadeRemovesInWaveOrder(t *testing.T) {
	p := staircase()

	if got := len(Fade(p, 0, stagger)); got != 8 {
		t.Errorf("at 0: %d cells, want 8 (wave 1 gone immediately)", got)
	}
	l := Fade(p, 450*time.Millisecond, stagger)
	if len(l) != 4 || l.Count(GlyphDamage) != 4 {
		t.Errorf("at 450ms: %v", l)
	}
	if _, ok := l[core.Cell{X: 8}]; !ok {
		t.Error("wave 9 should still be visible")
	}
	if got := len(Fade(p, 800*time.Millisecond, stagger)); got != 0 {
		t.Errorf("at 800ms: %d cells, want 0", got)
	}
}

func TestMergeDamageWins(t *testing.T) {
	c := core.Cell{X: 2, Y: 2}
	warn := Layer{c: GlyphWarning, {X: 0}: GlyphWarning}
	dmg := Layer{c: GlyphDamage}

	for _, order := range [][]Layer{{warn, dmg}, {dmg, warn}} {
		m := Merge(order...)
		if m[c] != GlyphDamage {
			t.Errorf("merged %v = %v, want damage", c, m[c])
		}
		if m[core.Cell{X: 0}] != GlyphWarning {
			t.Error("warning-only cell lost")
		}
	}
}

func TestRenderByPhase(t *testing.T) {
	act := []attack.Active{{Cells: staircase()}, {Cells: attack.Placed{{Y: 5}: 1}}}
	fade := []attack.Active{{Cells: staircase()}}

	if got := Render(act, phase.Warning, 0, fade, 0, stagger); len(got) != 2 {
		t.Errorf("warning layers = %d, want 2", len(got))
	}
	if got := Render(act, phase.Damage, 0, nil, 0, stagger); len(got) != 2 || got[1][core.Cell{Y: 5}] != GlyphDamage {
		t.Errorf("damage layers = %v", got)
	}
	got := Render(nil, phase.Idle, 0, fade, 100*time.Millisecond, stagger)
	if len(got) != 1 || len(got[0]) != 7 {
		t.Errorf("idle layers = %v", got)
	}
	if got := Render(nil, phase.Idle, 0, nil, 0, stagger); got != nil {
		t.Errorf("idle without fading = %v, want none", got)
	}
}

func TestNonEmpty(t *testing.T) {
	layers := []Layer{{}, {{X: 1}: GlyphWarning}, {{X: 2}: GlyphDamage}}
	if NonEmpty(layers) != 2 {
		t.Errorf("NonEmpty = %d, want 2", NonEmpty(layers))
	}
}
