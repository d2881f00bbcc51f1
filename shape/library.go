package shape

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Library is the immutable set of templates for one session
type Library struct {
	templates []Template
}

// NewLibrary wraps templates, failing when there are none
func NewLibrary(templates ...Template) (Library, error) {
	if len(templates) == 0 {
		return Library{}, ErrEmptyLibrary
	}
	owned := make([]Template, len(templates))
	copy(owned, templates)
	return Library{templates: owned}, nil
}

// Templates returns a copy of the template list
func (l Library) Templates() []Template {
	out := make([]Template, len(l.templates))
	copy(out, l.templates)
	return out
}

// Len returns the number of templates
func (l Library) Len() int {
	return len(l.templates)
}

// Parse reads a free-form ASCII shape
// Any non-space character is a cell; digits 1-9 set the wave, anything else is wave 1
func Parse(name string, r io.Reader) (Template, error) {
	var lines [][]rune
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, []rune(strings.TrimRight(sc.Text(), "\r")))
	}
	if err := sc.Err(); err != nil {
		return Template{}, fmt.Errorf("%s: %w", name, err)
	}

	blank := func(ln []rune) bool {
		return strings.TrimFunc(string(ln), unicode.IsSpace) == ""
	}
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	// Crop to the horizontal extent of non-space characters
	minCol, maxCol := -1, -1
	for _, ln := range lines {
		for i, ch := range ln {
			if ch == ' ' {
				continue
			}
			if minCol < 0 || i < minCol {
				minCol = i
			}
			maxCol = max(maxCol, i)
		}
	}
	if minCol < 0 {
		return Template{}, fmt.Errorf("%s: %w", name, ErrEmptyShape)
	}

	var points []Point
	for y, ln := range lines {
		for x := minCol; x <= maxCol && x < len(ln); x++ {
			ch := ln[x]
			if ch == ' ' {
				continue
			}
			wave := MinWave
			if ch >= '1' && ch <= '9' {
				wave = Wave(ch - '0')
			}
			points = append(points, Point{X: x - minCol, Y: y, Wave: wave})
		}
	}

	return NewTemplate(name, points)
}

// ParseFile reads one shape file
func ParseFile(path string) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return Template{}, err
	}
	defer f.Close()
	return Parse(filepath.Base(path), f)
}

// LoadDir loads every .txt/.pat shape in dir in lexical order
// Unreadable or empty shapes are skipped
func LoadDir(dir string) (Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Library{}, fmt.Errorf("read attacks dir: %w", err)
	}

	var templates []Template
	for _, e := range entries {
		if e.IsDir() || !isShapeFile(e.Name()) {
			continue
		}
		tpl, err := ParseFile(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Printf("shape: skipping %s: %v", e.Name(), err)
			continue
		}
		templates = append(templates, tpl)
	}

	lib, err := NewLibrary(templates...)
	if err != nil {
		return Library{}, fmt.Errorf("%s: %w", dir, err)
	}
	return lib, nil
}

func isShapeFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".txt" || ext == ".pat"
}
