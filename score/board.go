package score

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

var header = []string{"map", "score", "time_sec", "datetime"}

// Entry is one finished session
type Entry struct {
	Map     string
	Score   int
	TimeSec float64
	At      string // Local timestamp, timeLayout
}

// Board persists entries as a CSV file ranked by score, then by shorter time
type Board struct {
	Path string
	Now  func() time.Time // nil uses time.Now
}

// NewBoard creates a board backed by path
func NewBoard(path string) *Board {
	return &Board{Path: path}
}

// Load reads all entries in rank order; a missing file is an empty board
// Rows that fail to parse are skipped
func (b *Board) Load() ([]Entry, error) {
	f, err := os.Open(b.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := readEntries(f)
	if err != nil {
		return nil, fmt.Errorf("score: %s: %w", b.Path, err)
	}
	rank(entries)
	return entries, nil
}

// Save appends one result and rewrites the file in rank order
func (b *Board) Save(mapLabel string, score int, elapsed time.Duration) error {
	entries, err := b.Load()
	if err != nil {
		log.Printf("score: discarding unreadable board: %v", err)
		entries = nil
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	entries = append(entries, Entry{
		Map:     mapLabel,
		Score:   score,
		TimeSec: elapsed.Seconds(),
		At:      now().Format(timeLayout),
	})
	rank(entries)

	if dir := filepath.Dir(b.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("score: %w", err)
		}
	}

	f, err := os.Create(b.Path)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	if err := writeEntries(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("score: write %s: %w", b.Path, err)
	}
	return f.Close()
}

// Top returns up to limit best entries for one map
func (b *Board) Top(mapLabel string, limit int) ([]Entry, error) {
	entries, err := b.Load()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range entries {
		if e.Map == mapLabel {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// DisplayName strips a trailing .map extension for presentation
func DisplayName(mapLabel string) string {
	if strings.HasSuffix(strings.ToLower(mapLabel), ".map") {
		return mapLabel[:len(mapLabel)-4]
	}
	return mapLabel
}

func rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].TimeSec < entries[j].TimeSec
	})
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) (string, bool) {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	var entries []Entry
	for _, row := range rows[1:] {
		scoreStr, ok1 := field(row, "score")
		timeStr, ok2 := field(row, "time_sec")
		at, ok3 := field(row, "datetime")
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		sc, err := strconv.Atoi(scoreStr)
		if err != nil {
			continue
		}
		ts, err := strconv.ParseFloat(timeStr, 64)
		if err != nil {
			continue
		}
		m, ok := field(row, "map")
		if !ok {
			m = "Empty map"
		}
		entries = append(entries, Entry{Map: m, Score: sc, TimeSec: ts, At: at})
	}
	return entries, nil
}

func writeEntries(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.Map,
			strconv.Itoa(e.Score),
			strconv.FormatFloat(e.TimeSec, 'f', -1, 64),
			e.At,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
