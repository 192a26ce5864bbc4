package game

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/anotherrogue/internal/handler"
	"github.com/samdwyer/anotherrogue/internal/session"
	"github.com/samdwyer/anotherrogue/internal/ui"
)

// Smallest grid the HUD layout fits on.
const (
	MinWidth  = 40
	MinHeight = ui.HUDHeight + 10
)

// Config holds game configuration options.
type Config struct {
	Width  int    `env:"ANOTHERROGUE_WIDTH" envDefault:"100"`
	Height int    `env:"ANOTHERROGUE_HEIGHT" envDefault:"50"`
	Title  string `env:"ANOTHERROGUE_TITLE" envDefault:"Yet Another Roguelike"`

	// SavePath is where the live session is written on exit.
	SavePath string `env:"ANOTHERROGUE_SAVE_PATH" envDefault:"savegame.sav"`

	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"ANOTHERROGUE_SEED"`

	// LogFile receives diagnostics instead of stderr when set.
	LogFile string `env:"ANOTHERROGUE_LOG_FILE"`

	FOVRadius          int `env:"ANOTHERROGUE_FOV_RADIUS" envDefault:"8"`
	MaxMonstersPerRoom int `env:"ANOTHERROGUE_MAX_MONSTERS_PER_ROOM" envDefault:"2"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	var cfg Config
	// Defaults only, never the process environment
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(err)
	}
	return cfg
}

// ParseConfig parses environment and flags into Config. Flags win.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.IntVar(&cfg.Width, "width", cfg.Width, "Grid width in cells")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Grid height in cells")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Window title")
	fs.StringVar(&cfg.SavePath, "save", cfg.SavePath, "Save file path")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Dungeon seed (0 for random)")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Write diagnostics to this file")
	fs.IntVar(&cfg.FOVRadius, "fov", cfg.FOVRadius, "Field of view radius")
	fs.IntVar(&cfg.MaxMonstersPerRoom, "monsters", cfg.MaxMonstersPerRoom, "Maximum monsters per room")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Width < MinWidth {
		errs = append(errs, fmt.Errorf("width %d is below the minimum of %d", c.Width, MinWidth))
	}
	if c.Height < MinHeight {
		errs = append(errs, fmt.Errorf("height %d is below the minimum of %d", c.Height, MinHeight))
	}
	if c.SavePath == "" {
		errs = append(errs, errors.New("save path is required"))
	}
	if c.FOVRadius < 1 {
		errs = append(errs, fmt.Errorf("fov radius %d must be positive", c.FOVRadius))
	}
	if c.MaxMonstersPerRoom < 0 {
		errs = append(errs, fmt.Errorf("max monsters per room %d must not be negative", c.MaxMonstersPerRoom))
	}
	return errors.Join(errs...)
}

// Env returns what the handlers need from the configuration. The map takes
// the rows above the HUD.
func (c Config) Env() handler.Env {
	return handler.Env{
		Title:    c.Title,
		SavePath: c.SavePath,
		Params: session.Params{
			MapWidth:           c.Width,
			MapHeight:          c.Height - ui.HUDHeight,
			FOVRadius:          c.FOVRadius,
			MaxMonstersPerRoom: c.MaxMonstersPerRoom,
			Seed:               c.Seed,
		},
	}
}
