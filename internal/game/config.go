package game

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/samdwyer/tilegrid/internal/movement"
	"github.com/samdwyer/tilegrid/internal/world"
)

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

const envPrefix = "TILEGRID_"

// Config holds session configuration options. It is built once at startup
// and not changed afterwards.
type Config struct {
	// Frontend selects the presenter: "window" (ebiten) or "terminal" (tcell).
	Frontend string

	// MapFile is a map text file. Empty uses the embedded default map.
	MapFile string
	// Generate replaces the map with a generated one.
	Generate bool
	// GenWidth and GenHeight size the generated map in cells.
	GenWidth  int
	GenHeight int
	// Seed for random number generation. Used for reproducible map generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Grid placement on the framebuffer, in pixels.
	OriginX  int
	OriginY  int
	CellSize int // 0 picks a size suited to the frontend

	// BufferWidth and BufferHeight are the initial window framebuffer size.
	BufferWidth  int
	BufferHeight int

	// Speed is cells per second while a direction is held.
	Speed float64
	// Step is cells per discrete key press.
	Step float64
	// Collision is the movement mode.
	Collision movement.Mode
	// Overlay draws the decorative scanline triangle.
	Overlay bool

	// PaletteFile is a palette JSON file. Empty uses the embedded palette.
	PaletteFile string

	// Verbosity is the logr V-level enabled for diagnostics.
	Verbosity int
	// LogFile receives logs and status lines. Terminal mode discards them when empty.
	LogFile string
	// Telemetry enables the OTLP trace exporter.
	Telemetry bool
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Frontend:     FrontendWindow,
		GenWidth:     world.DefaultWidth,
		GenHeight:    world.DefaultHeight,
		BufferWidth:  900,
		BufferHeight: 450,
		Speed:        4,
		Step:         0.5,
		Collision:    movement.ModeCollide,
		Overlay:      true,
	}
}

// LoadConfig builds a Config from defaults, then TILEGRID_* environment
// variables read through getenv, then command-line args.
func LoadConfig(args []string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	collision := cfg.Collision.String()
	fs := flag.NewFlagSet("tilegrid", flag.ContinueOnError)
	fs.StringVar(&cfg.Frontend, "frontend", cfg.Frontend, "presenter: window or terminal")
	fs.StringVar(&cfg.MapFile, "map", cfg.MapFile, "map text file (default: embedded map)")
	fs.BoolVar(&cfg.Generate, "generate", cfg.Generate, "generate a random map")
	fs.IntVar(&cfg.GenWidth, "gen-width", cfg.GenWidth, "generated map width in cells")
	fs.IntVar(&cfg.GenHeight, "gen-height", cfg.GenHeight, "generated map height in cells")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "map generation seed (0 = random)")
	fs.IntVar(&cfg.OriginX, "origin-x", cfg.OriginX, "grid origin x in pixels")
	fs.IntVar(&cfg.OriginY, "origin-y", cfg.OriginY, "grid origin y in pixels")
	fs.IntVar(&cfg.CellSize, "cell-size", cfg.CellSize, "pixels per cell (0 = frontend default)")
	fs.IntVar(&cfg.BufferWidth, "width", cfg.BufferWidth, "window framebuffer width")
	fs.IntVar(&cfg.BufferHeight, "height", cfg.BufferHeight, "window framebuffer height")
	fs.Float64Var(&cfg.Speed, "speed", cfg.Speed, "cells per second while a key is held")
	fs.Float64Var(&cfg.Step, "step", cfg.Step, "cells per key press")
	fs.StringVar(&collision, "collision", collision, "movement mode: collide or free")
	fs.BoolVar(&cfg.Overlay, "overlay", cfg.Overlay, "draw the scanline overlay")
	fs.StringVar(&cfg.PaletteFile, "palette", cfg.PaletteFile, "palette JSON file")
	fs.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "log verbosity")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs and status lines to this file")
	fs.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export traces over OTLP")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	mode, ok := movement.ParseMode(collision)
	if !ok {
		return Config{}, fmt.Errorf("collision: unknown mode %q", collision)
	}
	cfg.Collision = mode

	if cfg.CellSize == 0 {
		cfg.CellSize = defaultCellSize(cfg.Frontend)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// defaultCellSize keeps the embedded map readable on each frontend. A terminal
// cell is only one pixel wide.
func defaultCellSize(frontend string) int {
	if frontend == FrontendTerminal {
		return 4
	}
	return 10
}

// Validate checks field ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Frontend != FrontendWindow && c.Frontend != FrontendTerminal {
		errs = append(errs, fmt.Errorf("frontend: unknown %q", c.Frontend))
	}
	if c.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell size: must be positive, got %d", c.CellSize))
	}
	if c.BufferWidth <= 0 || c.BufferHeight <= 0 {
		errs = append(errs, fmt.Errorf("buffer size: must be positive, got %dx%d", c.BufferWidth, c.BufferHeight))
	}
	if c.Speed < 0 || c.Step < 0 {
		errs = append(errs, errors.New("speed and step: must not be negative"))
	}
	if c.Generate && (c.GenWidth < world.MinMapSize || c.GenHeight < world.MinMapSize) {
		errs = append(errs, fmt.Errorf("generated map: must be at least %dx%d, got %dx%d",
			world.MinMapSize, world.MinMapSize, c.GenWidth, c.GenHeight))
	}
	return errors.Join(errs...)
}

// applyEnv overrides fields from TILEGRID_* variables that are set.
func (c *Config) applyEnv(getenv func(string) string) error {
	var errs []error
	str := func(name string, dst *string) {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		if v := getenv(envPrefix + name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		if v := getenv(envPrefix + name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = f
		}
	}
	boolean := func(name string, dst *bool) {
		if v := getenv(envPrefix + name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("FRONTEND", &c.Frontend)
	str("MAP", &c.MapFile)
	boolean("GENERATE", &c.Generate)
	integer("GEN_WIDTH", &c.GenWidth)
	integer("GEN_HEIGHT", &c.GenHeight)
	if v := getenv(envPrefix + "SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", envPrefix, err))
		} else {
			c.Seed = seed
		}
	}
	integer("ORIGIN_X", &c.OriginX)
	integer("ORIGIN_Y", &c.OriginY)
	integer("CELL_SIZE", &c.CellSize)
	integer("BUFFER_WIDTH", &c.BufferWidth)
	integer("BUFFER_HEIGHT", &c.BufferHeight)
	float("SPEED", &c.Speed)
	float("STEP", &c.Step)
	if v := getenv(envPrefix + "COLLISION"); v != "" {
		mode, ok := movement.ParseMode(v)
		if !ok {
			errs = append(errs, fmt.Errorf("%sCOLLISION: unknown mode %q", envPrefix, v))
		} else {
			c.Collision = mode
		}
	}
	boolean("OVERLAY", &c.Overlay)
	str("PALETTE", &c.PaletteFile)
	integer("VERBOSITY", &c.Verbosity)
	str("LOG_FILE", &c.LogFile)
	boolean("TELEMETRY", &c.Telemetry)

	return errors.Join(errs...)
}
