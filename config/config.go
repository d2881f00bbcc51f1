package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/mini-adventure/arena"
	"github.com/lixenwraith/mini-adventure/attack"
	"github.com/lixenwraith/mini-adventure/encounter"
	"github.com/lixenwraith/mini-adventure/phase"
)

// DefaultPath is the options file looked up next to the binary's working dir
const DefaultPath = "options.yaml"

var ErrInvalid = errors.New("invalid options")

// Options is the full runtime configuration
type Options struct {
	MapsDir       string        `yaml:"maps_dir"`
	AttacksDir    string        `yaml:"attacks_dir"`
	HighScoreFile string        `yaml:"high_score_file"`
	Tick          time.Duration `yaml:"tick"`
	Attempts      int           `yaml:"placement_attempts"`
	Audio         bool          `yaml:"audio"`
	GridWidth     int           `yaml:"grid_width"`  // Empty default map size
	GridHeight    int           `yaml:"grid_height"` // Empty default map size
	Timing        phase.Timing  `yaml:"timing"`
}

// Default returns the stock options
func Default() Options {
	return Options{
		MapsDir:       "maps",
		AttacksDir:    "attacks",
		HighScoreFile: "high_scores.csv",
		Tick:          encounter.DefaultTick,
		Attempts:      attack.DefaultAttempts,
		Audio:         true,
		GridWidth:     arena.DefaultWidth,
		GridHeight:    arena.DefaultHeight,
		Timing:        phase.DefaultTiming(),
	}
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("config: %s: %w", path, err)
	}
	return opts, nil
}

// Validate checks every field before a session can start
func (o Options) Validate() error {
	switch {
	case o.Tick <= 0:
		return fmt.Errorf("%w: tick %v must be positive", ErrInvalid, o.Tick)
	case o.Attempts < 1:
		return fmt.Errorf("%w: placement_attempts %d < 1", ErrInvalid, o.Attempts)
	case o.GridWidth < 1 || o.GridHeight < 1:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalid, o.GridWidth, o.GridHeight)
	case o.AttacksDir == "":
		return fmt.Errorf("%w: attacks_dir is empty", ErrInvalid)
	}
	if err := o.Timing.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Save writes the options as YAML, used to seed an editable options file
func (o Options) Save(path string) error {
	data, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
