package menu

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/encounter"
	"github.com/lixenwraith/mini-adventure/terminal"
)

type nopCanvas struct{}

func (nopCanvas) SetContent(int, int, rune, []rune, tcell.Style) {}

type countingScreen struct {
	renders int
}

func (s *countingScreen) Render(draw func(c terminal.Canvas, width int)) {
	s.renders++
	draw(nopCanvas{}, 80)
}

func TestRunConfirmsSelection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cave.map", caveMap)
	m := NewModel(dir, core.Size{Width: 10, Height: 10}, nil)

	actions := make(chan terminal.Action, 4)
	actions <- terminal.ActionDown
	actions <- terminal.ActionLeft
	actions <- terminal.ActionConfirm

	screen := &countingScreen{}
	g, label, err := Run(context.Background(), screen, actions, m, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if label != "cave.map" || g.Width != 10 {
		t.Errorf("selected %q %+v", label, g.Size)
	}
	if screen.renders != 3 {
		t.Errorf("renders = %d, want 3", screen.renders)
	}
}

func TestRunStaysOnBrokenMap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.map", "#\n##\n")
	m := NewModel(dir, core.Size{Width: 10, Height: 10}, nil)

	actions := make(chan terminal.Action, 4)
	actions <- terminal.ActionDown
	actions <- terminal.ActionConfirm
	actions <- terminal.ActionUp
	actions <- terminal.ActionConfirm

	_, label, err := Run(context.Background(), &countingScreen{}, actions, m, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if label != "Empty map" {
		t.Errorf("label = %q, want the empty map after backing out", label)
	}
}

func TestRunQuit(t *testing.T) {
	m := NewModel(t.TempDir(), core.Size{Width: 10, Height: 10}, nil)

	actions := make(chan terminal.Action, 1)
	actions <- terminal.ActionQuit
	if _, _, err := Run(context.Background(), &countingScreen{}, actions, m, nil); !errors.Is(err, encounter.ErrQuit) {
		t.Errorf("quit err = %v", err)
	}

	closed := make(chan terminal.Action)
	close(closed)
	if _, _, err := Run(context.Background(), &countingScreen{}, closed, m, nil); !errors.Is(err, encounter.ErrQuit) {
		t.Errorf("closed input err = %v", err)
	}
}

func TestRunCancel(t *testing.T) {
	m := NewModel(t.TempDir(), core.Size{Width: 10, Height: 10}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Run(ctx, &countingScreen{}, make(chan terminal.Action), m, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestWatcherReportsNewMap(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, filepath.Join(dir, "scores.csv"))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "new.map"), []byte(caveMap), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "new.map" {
			t.Errorf("event for %q, want new.map", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for new map")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events should be closed")
	}
}

func TestRelevant(t *testing.T) {
	w := &Watcher{scoreFile: filepath.Clean("data/scores.csv")}
	tests := []struct {
		path string
		want bool
	}{
		{"maps/cave.map", true},
		{"maps/CAVE.TXT", true},
		{"data/scores.csv", true},
		{"data/other.csv", false},
		{"maps/readme.md", false},
	}
	for _, tt := range tests {
		if got := w.relevant(tt.path); got != tt.want {
			t.Errorf("relevant(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
