package menu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/mini-adventure/arena"
	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/score"
)

const caveMap = `##########
#P.......#
#........#
#........#
#........#
#........#
#........#
#........#
#........#
##########
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestListMaps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zeta.map", caveMap)
	writeFile(t, dir, "alpha.txt", caveMap)
	writeFile(t, dir, "notes.md", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.map"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := ListMaps(dir)
	if err != nil {
		t.Fatalf("ListMaps: %v", err)
	}
	want := []string{"alpha.txt", "zeta.map"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ListMaps = %v, want %v", got, want)
	}

	missing, err := ListMaps(filepath.Join(dir, "nope"))
	if err != nil || len(missing) != 0 {
		t.Errorf("missing dir: got %v, %v", missing, err)
	}
}

func TestModelNavigationWraps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.map", caveMap)
	writeFile(t, dir, "b.map", caveMap)
	m := NewModel(dir, core.Size{Width: 10, Height: 10}, nil)

	opts := m.Options()
	if len(opts) != 3 || opts[0] != EmptyOption || opts[1] != "a" || opts[2] != "b" {
		t.Fatalf("Options = %v", opts)
	}

	m.Move(-1)
	if m.Index() != 2 {
		t.Errorf("up from top: index = %d, want 2", m.Index())
	}
	m.Move(1)
	if m.Index() != 0 {
		t.Errorf("down from bottom: index = %d, want 0", m.Index())
	}
	if m.Label() != arena.EmptyLabel {
		t.Errorf("Label = %q, want %q", m.Label(), arena.EmptyLabel)
	}
}

func TestModelSelected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cave.map", caveMap)
	writeFile(t, dir, "broken.map", "###\n##\n")
	m := NewModel(dir, core.Size{Width: 7, Height: 4}, nil)

	g, label, err := m.Selected()
	if err != nil || label != arena.EmptyLabel || g.Width != 7 || g.Height != 4 || len(g.Walls) != 0 {
		t.Errorf("empty option: %+v %q %v", g.Size, label, err)
	}

	m.Move(1) // broken.map sorts first
	if _, _, err := m.Selected(); !errors.Is(err, arena.ErrMalformedGrid) {
		t.Errorf("broken map err = %v, want ErrMalformedGrid", err)
	}
	if v := m.View(); v.PreviewErr == nil {
		t.Error("View should carry the preview error")
	}

	m.Move(1)
	g, label, err = m.Selected()
	if err != nil {
		t.Fatalf("cave: %v", err)
	}
	if label != "cave.map" || !g.HasStart || g.Start != (core.Cell{X: 1, Y: 1}) {
		t.Errorf("cave: label=%q start=%v", label, g.Start)
	}
}

func TestModelRefreshKeepsSelection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.map", caveMap)
	m := NewModel(dir, core.Size{Width: 10, Height: 10}, nil)
	m.Move(1)

	writeFile(t, dir, "a.map", caveMap)
	if err := m.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if m.Label() != "b.map" || m.Index() != 2 {
		t.Errorf("after insert: label=%q index=%d", m.Label(), m.Index())
	}

	if err := os.Remove(filepath.Join(dir, "b.map")); err != nil {
		t.Fatal(err)
	}
	if err := m.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if m.Index() != 0 {
		t.Errorf("after removal: index=%d, want 0", m.Index())
	}
}

func TestModelViewScores(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cave.map", caveMap)

	board := score.NewBoard(filepath.Join(dir, "scores.csv"))
	board.Now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	if err := board.Save("cave.map", 5, 30*time.Second); err != nil {
		t.Fatal(err)
	}
	if err := board.Save(arena.EmptyLabel, 9, 10*time.Second); err != nil {
		t.Fatal(err)
	}

	m := NewModel(dir, core.Size{Width: 10, Height: 10}, board)
	v := m.View()
	if v.Label != arena.EmptyLabel || len(v.Scores) != 1 || v.Scores[0].Score != 9 {
		t.Errorf("empty map view: label=%q scores=%+v", v.Label, v.Scores)
	}

	m.Move(1)
	v = m.View()
	if v.Label != "cave.map" || len(v.Scores) != 1 || v.Scores[0].Score != 5 {
		t.Errorf("cave view: label=%q scores=%+v", v.Label, v.Scores)
	}
	if v.ScoreLimit != ScoreLimit {
		t.Errorf("ScoreLimit = %d", v.ScoreLimit)
	}
}
