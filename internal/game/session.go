package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/tilegrid/internal/framebuffer"
	"github.com/samdwyer/tilegrid/internal/gamedata"
	"github.com/samdwyer/tilegrid/internal/input"
	"github.com/samdwyer/tilegrid/internal/movement"
	"github.com/samdwyer/tilegrid/internal/render"
	"github.com/samdwyer/tilegrid/internal/telemetry"
	"github.com/samdwyer/tilegrid/internal/world"
)

// Session holds the entire renderer state for one run.
type Session struct {
	cfg      Config
	grid     *world.Grid
	resolver *movement.Resolver
	composer *render.Composer
	state    State

	logger logr.Logger
	status io.Writer // "Player (x, y)" lines
	span   trace.Span

	// Whether the last frame could draw the grid; logged on change only.
	gridFit bool
}

var _ input.Handler = (*Session)(nil)

// New creates a session: it loads the palette and map, builds the grid and
// starts the session trace span. Map errors wrap the world package's
// sentinel errors.
func New(ctx context.Context, cfg Config, logger logr.Logger, status io.Writer) (*Session, error) {
	tracer := telemetry.Tracer("game")
	if !cfg.Telemetry {
		tracer = telemetry.NoopTracer()
	}

	ctx, initSpan := tracer.Start(ctx, "session.init")
	defer initSpan.End()

	colors, err := gamedata.LoadPalette(cfg.PaletteFile)
	if err != nil {
		initSpan.RecordError(err)
		return nil, fmt.Errorf("load palette: %w", err)
	}

	layout := world.Layout{
		OriginX:  cfg.OriginX,
		OriginY:  cfg.OriginY,
		CellSize: cfg.CellSize,
		Palette:  colors.Grid,
	}
	grid, err := loadGrid(ctx, cfg, layout)
	if err != nil {
		initSpan.RecordError(err)
		return nil, err
	}

	var overlay *render.Overlay
	if cfg.Overlay {
		o := render.DefaultOverlay()
		o.Color = colors.Overlay
		overlay = &o
	}

	resolver := movement.NewResolver(cfg.Collision)

	x, y := grid.Position()
	initSpan.SetAttributes(
		attribute.Int("map.width", grid.Width()),
		attribute.Int("map.height", grid.Height()),
		attribute.Float64("player.start_x", x),
		attribute.Float64("player.start_y", y),
		attribute.String("movement.mode", resolver.Mode().String()),
	)
	logger.Info("session ready",
		"width", grid.Width(), "height", grid.Height(),
		"cellSize", cfg.CellSize, "collision", resolver.Mode().String())

	if status == nil {
		status = io.Discard
	}

	// Span covering the whole run; moves are recorded as events on it
	_, runSpan := tracer.Start(ctx, "session.run")

	return &Session{
		cfg:      cfg,
		grid:     grid,
		resolver: resolver,
		composer: render.NewComposer(overlay),
		state:    StateRunning,
		logger:   logger,
		status:   status,
		span:     runSpan,
		gridFit:  true,
	}, nil
}

// loadGrid builds the grid from the configured map file, the embedded map,
// or a generated layout.
func loadGrid(ctx context.Context, cfg Config, layout world.Layout) (*world.Grid, error) {
	if !cfg.Generate {
		text, err := gamedata.LoadMap(cfg.MapFile)
		if err != nil {
			return nil, err
		}
		return world.ParseContext(ctx, text, layout)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tiles, err := world.Generate(ctx, cfg.GenWidth, cfg.GenHeight, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	grid, err := world.NewGrid(tiles, layout)
	if err != nil {
		return nil, fmt.Errorf("generated map: %w", err)
	}
	return grid, nil
}

// Mode returns the session's collision mode.
func (s *Session) Mode() movement.Mode {
	return s.resolver.Mode()
}

// Grid returns the session's map.
func (s *Session) Grid() *world.Grid {
	return s.grid
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Running reports whether the frontend should keep going.
func (s *Session) Running() bool {
	return s.state == StateRunning
}

// Update applies one update's input: quit, resize notice and movement.
// It reports whether a redraw is wanted.
func (s *Session) Update(ctx context.Context, in input.State) bool {
	if s.state != StateRunning {
		return false
	}

	if in.Quit {
		s.state = StateQuit
		s.span.AddEvent("session.quit")
		s.logger.V(1).Info("quit requested")
		return false
	}

	redraw := false
	if in.Resized {
		s.logger.V(1).Info("buffer resized", "width", in.Width, "height", in.Height)
		s.span.AddEvent("buffer.resize", trace.WithAttributes(
			attribute.Int("buffer.width", in.Width),
			attribute.Int("buffer.height", in.Height),
		))
		redraw = true
	}

	if !in.Directions.Any() {
		return redraw
	}

	var dx, dy float64
	if in.Elapsed > 0 {
		dx, dy = movement.Scaled(in.Directions, s.cfg.Speed, in.Elapsed)
	} else {
		dx, dy = movement.Stepped(in.Directions, s.cfg.Step)
	}
	if dx == 0 && dy == 0 {
		return redraw
	}

	s.move(dx, dy)
	return true
}

// move resolves one delta and reports the outcome.
func (s *Session) move(dx, dy float64) {
	if !s.resolver.TryMove(s.grid, dx, dy) {
		x, y := s.grid.Position()
		s.logger.V(2).Info("move blocked", "x", x, "y", y, "dx", dx, "dy", dy)
		s.span.AddEvent("player.blocked", trace.WithAttributes(
			attribute.Float64("player.dx", dx),
			attribute.Float64("player.dy", dy),
		))
		return
	}

	x, y := s.grid.Position()
	fmt.Fprintf(s.status, "Player (%v, %v)\n", x, y)
	s.span.AddEvent("player.move", trace.WithAttributes(
		attribute.Float64("player.x", x),
		attribute.Float64("player.y", y),
	))
}

// Render paints the current frame into buf, reading its dimensions afresh.
func (s *Session) Render(buf framebuffer.Buffer) {
	frame := s.composer.Render(buf, s.grid)
	if frame.Grid != s.gridFit {
		s.gridFit = frame.Grid
		if !frame.Grid {
			s.logger.Info("map does not fit the buffer; skipping it",
				"bounds", s.grid.Bounds().String(), "buffer", buf.Bounds().String())
		} else {
			s.logger.V(1).Info("map fits the buffer again")
		}
	}
}

// Close ends the session's trace span.
func (s *Session) Close() {
	s.span.End()
}
