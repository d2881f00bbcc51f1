package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/mini-adventure/audio"
	"github.com/lixenwraith/mini-adventure/config"
	"github.com/lixenwraith/mini-adventure/core"
	"github.com/lixenwraith/mini-adventure/encounter"
	"github.com/lixenwraith/mini-adventure/menu"
	"github.com/lixenwraith/mini-adventure/score"
	"github.com/lixenwraith/mini-adventure/shape"
	"github.com/lixenwraith/mini-adventure/status"
	"github.com/lixenwraith/mini-adventure/terminal"
)

var (
	configFlag     = flag.String("config", config.DefaultPath, "Options file (YAML)")
	debugFlag      = flag.Bool("debug", false, "Log to logs/ and show metrics under the grid")
	seedFlag       = flag.Uint64("seed", 0, "Random seed; 0 seeds from the clock")
	muteFlag       = flag.Bool("mute", false, "Disable sound")
	initConfigFlag = flag.Bool("init-config", false, "Write the effective options to -config and exit")
)

func main() {
	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			terminal.HandleCrash(r)
		}
	}()

	flag.Parse()
	if code := runMain(); code != 0 {
		os.Exit(code)
	}
}

// runMain owns every deferred closer so they finish before the process exits
func runMain() int {
	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	err := run()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, encounter.ErrQuit), errors.Is(err, context.Canceled):
		fmt.Println("Goodbye!")
		return 0
	}
	log.Printf("main: %v", err)
	fmt.Fprintf(os.Stderr, "\x1b[31m%v\x1b[0m\n", err)
	return 1
}

func run() error {
	opts, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *initConfigFlag {
		if err := opts.Save(*configFlag); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", *configFlag)
		return nil
	}

	// Attacks are checked before the terminal is taken so the hint stays readable
	lib, err := shape.LoadDir(opts.AttacksDir)
	if err != nil {
		if errors.Is(err, shape.ErrEmptyLibrary) || errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no attacks found in '%s'. Add at least one .txt file with an attack shape: %w", opts.AttacksDir, err)
		}
		return err
	}
	log.Printf("main: loaded %d attack shapes from %s", lib.Len(), opts.AttacksDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term, err := terminal.New()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer term.Fini()
	actions := term.Actions()

	sound := audio.NewPlayer()
	if opts.Audio && !*muteFlag {
		if err := sound.Init(); err != nil {
			// Non-fatal, game can run without sound
			log.Printf("main: audio init failed: %v", err)
		}
	}
	defer sound.Close()

	board := score.NewBoard(opts.HighScoreFile)
	model := menu.NewModel(opts.MapsDir, core.Size{Width: opts.GridWidth, Height: opts.GridHeight}, board)

	watcher, err := menu.NewWatcher(opts.MapsDir, opts.HighScoreFile)
	if err != nil {
		log.Printf("main: live map refresh disabled: %v", err)
	}
	grid, label, err := menu.Run(ctx, term, actions, model, watcher)
	if watcher != nil {
		watcher.Close()
	}
	if err != nil {
		return err
	}
	log.Printf("main: selected %s (%dx%d)", label, grid.Width, grid.Height)

	g := &game{
		opts:    opts,
		term:    term,
		actions: actions,
		sound:   sound,
		board:   board,
		stats:   status.NewRegistry(),
		seed:    *seedFlag,
		debug:   *debugFlag,
	}
	return g.play(ctx, lib, grid, label)
}
