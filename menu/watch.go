package menu

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports changes to map files and the score file
type Watcher struct {
	watcher   *fsnotify.Watcher
	scoreFile string
	Events    chan string
	Errors    chan error
	closeCh   chan struct{}
	done      chan struct{}
	once      sync.Once
}

// NewWatcher watches mapsDir and the directory holding scoreFile
// An empty scoreFile watches maps only
func NewWatcher(mapsDir, scoreFile string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := []string{mapsDir}
	if scoreFile != "" {
		if dir := filepath.Dir(scoreFile); filepath.Clean(dir) != filepath.Clean(mapsDir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	if scoreFile != "" {
		scoreFile = filepath.Clean(scoreFile)
	}
	watcher := &Watcher{
		watcher:   w,
		scoreFile: scoreFile,
		Events:    make(chan string, 16),
		Errors:    make(chan error, 1),
		closeCh:   make(chan struct{}),
		done:      make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher; Events and Errors are closed once run exits
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Events)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) relevant(path string) bool {
	if isMapFile(path) {
		return true
	}
	return w.scoreFile != "" && filepath.Clean(path) == w.scoreFile
}
