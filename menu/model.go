// Package menu is the map selection screen shown before a session
package menu

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lixenwraith/mini-adventure/arena"
	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/score"
	"github.com/lixenwraith/mini-adventure/terminal"
)

const (
	EmptyOption = "(Empty default map)"
	ScoreLimit  = 10
)

// Model is the menu state: the maps on disk and the highlighted entry
// Index 0 is always the built-in empty map
type Model struct {
	Dir       string
	EmptySize core.Size
	Board     *score.Board // nil hides scores

	files []string
	index int
}

// NewModel scans dir for maps
func NewModel(dir string, empty core.Size, board *score.Board) *Model {
	m := &Model{Dir: dir, EmptySize: empty, Board: board}
	if err := m.Refresh(); err != nil {
		log.Printf("menu: scan %s: %v", dir, err)
	}
	return m
}

// ListMaps returns the sorted .map and .txt files in dir; a missing dir has none
func ListMaps(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && isMapFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func isMapFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".map" || ext == ".txt"
}

// Refresh rescans the maps dir, keeping the highlighted file when it still exists
func (m *Model) Refresh() error {
	files, err := ListMaps(m.Dir)
	if err != nil {
		return err
	}

	current := m.Label()
	m.files = files
	m.index = 0
	for i, f := range files {
		if f == current {
			m.index = i + 1
			break
		}
	}
	return nil
}

// Options returns the display names in menu order
func (m *Model) Options() []string {
	opts := make([]string, 0, len(m.files)+1)
	opts = append(opts, EmptyOption)
	for _, f := range m.files {
		opts = append(opts, score.DisplayName(f))
	}
	return opts
}

// Index returns the highlighted position
func (m *Model) Index() int {
	return m.index
}

// Move shifts the highlight by delta, wrapping at both ends
func (m *Model) Move(delta int) {
	n := len(m.files) + 1
	m.index = ((m.index+delta)%n + n) % n
}

// Label is the map label used for scores: the file name, or the empty map label
func (m *Model) Label() string {
	if m.index == 0 || m.index > len(m.files) {
		return arena.EmptyLabel
	}
	return m.files[m.index-1]
}

// Selected loads the highlighted grid
func (m *Model) Selected() (arena.Grid, string, error) {
	if m.index == 0 {
		return arena.Empty(m.EmptySize.Width, m.EmptySize.Height), arena.EmptyLabel, nil
	}
	label := m.Label()
	g, err := arena.LoadMap(filepath.Join(m.Dir, label))
	if err != nil {
		return arena.Grid{}, label, err
	}
	if err := g.Validate(); err != nil {
		return arena.Grid{}, label, fmt.Errorf("%s: %w", label, err)
	}
	return g, label, nil
}

// View builds the screen for the current state
func (m *Model) View() terminal.MenuView {
	g, label, err := m.Selected()
	v := terminal.MenuView{
		Options:    m.Options(),
		Index:      m.index,
		Preview:    g,
		PreviewErr: err,
		Label:      label,
		ScoreLimit: ScoreLimit,
	}
	if m.Board != nil {
		top, err := m.Board.Top(label, ScoreLimit)
		if err != nil {
			log.Printf("menu: load scores: %v", err)
		}
		v.Scores = top
	}
	return v
}
