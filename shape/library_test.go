package shape

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCropsAndReadsWaves(t *testing.T) {
	src := "\n\n   X1\n    2\n   93\n\n"
	tpl, err := Parse("diag", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if tpl.Width != 2 || tpl.Height != 3 {
		t.Fatalf("dims = %dx%d, want 2x3", tpl.Width, tpl.Height)
	}

	want := map[Point]bool{
		{X: 0, Y: 0, Wave: 1}: true, // X -> wave 1
		{X: 1, Y: 0, Wave: 1}: true,
		{X: 1, Y: 1, Wave: 2}: true,
		{X: 0, Y: 2, Wave: 9}: true,
		{X: 1, Y: 2, Wave: 3}: true,
	}
	if len(tpl.Cells) != len(want) {
		t.Fatalf("cells = %v", tpl.Cells)
	}
	for _, p := range tpl.Cells {
		if !want[p] {
			t.Errorf("unexpected cell %v", p)
		}
	}
}

func TestParseRejectsBlank(t *testing.T) {
	_, err := Parse("blank", strings.NewReader("   \n\n  \n"))
	if !errors.Is(err, ErrEmptyShape) {
		t.Errorf("err = %v, want ErrEmptyShape", err)
	}
}

func TestNewTemplateValidation(t *testing.T) {
	if _, err := NewTemplate("bad", []Point{{X: 0, Y: 0, Wave: 0}}); err == nil {
		t.Error("wave 0 should be rejected")
	}
	if _, err := NewTemplate("bad", []Point{{X: 0, Y: 0, Wave: 10}}); err == nil {
		t.Error("wave 10 should be rejected")
	}
	if _, err := NewTemplate("dup", []Point{{X: 1, Y: 1, Wave: 1}, {X: 1, Y: 1, Wave: 2}}); err == nil {
		t.Error("duplicate cell should be rejected")
	}

	tpl, err := NewTemplate("offset", []Point{{X: 4, Y: 6, Wave: 1}, {X: 5, Y: 6, Wave: 2}})
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}
	if tpl.Width != 2 || tpl.Height != 1 || tpl.Cells[0].X != 0 || tpl.Cells[0].Y != 0 {
		t.Errorf("template not normalized: %+v", tpl)
	}
	if tpl.MaxWave() != 2 {
		t.Errorf("MaxWave = %d, want 2", tpl.MaxWave())
	}
}

func TestLoadDirSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b_cross.txt": " 1\n121\n 1\n",
		"a_line.pat":  "123456789\n",
		"empty.txt":   "   \n",
		"notes.md":    "XXXX",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	lib, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	tpls := lib.Templates()
	if len(tpls) != 2 {
		t.Fatalf("loaded %d templates, want 2", len(tpls))
	}
	if tpls[0].Name != "a_line.pat" || tpls[1].Name != "b_cross.txt" {
		t.Errorf("order = %s, %s", tpls[0].Name, tpls[1].Name)
	}
	if tpls[0].Width != 9 || tpls[0].MaxWave() != 9 {
		t.Errorf("line template = %dx%d max wave %d", tpls[0].Width, tpls[0].Height, tpls[0].MaxWave())
	}
}

func TestLoadDirEmptyIsPrecondition(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	if !errors.Is(err, ErrEmptyLibrary) {
		t.Errorf("err = %v, want ErrEmptyLibrary", err)
	}
}

func TestLibraryIsImmutable(t *testing.T) {
	tpl, _ := NewTemplate("dot", []Point{{Wave: 1}})
	lib, err := NewLibrary(tpl)
	if err != nil {
		t.Fatal(err)
	}
	got := lib.Templates()
	got[0].Name = "changed"
	if lib.Templates()[0].Name != "dot" {
		t.Error("library exposed internal slice")
	}
}
