// Package window presents sessions in a desktop window using ebiten. The
// framebuffer always matches the window's layout size and is uploaded with
// WritePixels each frame.
package window

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/samdwyer/tilegrid/internal/framebuffer"
	"github.com/samdwyer/tilegrid/internal/input"
)

// Options configures the window.
type Options struct {
	Title         string
	Width, Height int
}

// Window adapts an input.Handler to ebiten.Game.
type Window struct {
	ctx    context.Context
	h      input.Handler
	logger logr.Logger

	buf           framebuffer.Buffer
	width, height int  // latest layout size
	dirty         bool // handler should repaint buf
	resized       bool // buf was reallocated since the last step
}

var _ ebiten.Game = (*Window)(nil)

// New creates a window driving h. The buffer starts at the requested size.
func New(ctx context.Context, h input.Handler, opts Options, logger logr.Logger) *Window {
	return &Window{
		ctx:    ctx,
		h:      h,
		logger: logger,
		buf:    framebuffer.New(opts.Width, opts.Height),
		width:  opts.Width,
		height: opts.Height,
		dirty:  true,
	}
}

// Run opens the window and blocks until the handler stops running, the
// window is closed or ctx is done.
func Run(ctx context.Context, h input.Handler, opts Options, logger logr.Logger) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.V(1).Info("opening window", "width", opts.Width, "height", opts.Height)
	if err := ebiten.RunGame(New(ctx, h, opts, logger)); err != nil {
		return err
	}
	return ctx.Err()
}

// Update polls the keyboard once per tick and forwards it to the handler.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || !w.h.Running() {
		return ebiten.Termination
	}

	return w.step(pollInput(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed, ebiten.TPS()))
}

// step applies in, reporting a buffer reallocation made since the last step.
func (w *Window) step(in input.State) error {
	w.fit(w.width, w.height)
	if w.resized {
		in.Resized = true
		in.Width, in.Height = w.buf.Width, w.buf.Height
		w.resized = false
	}

	if w.h.Update(w.ctx, in) {
		w.dirty = true
	}
	if !w.h.Running() {
		w.logger.V(1).Info("closing window")
		return ebiten.Termination
	}
	return nil
}

// Draw uploads the framebuffer, repainting it first when needed.
func (w *Window) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	screen.WritePixels(w.frame(b.Dx(), b.Dy()))
}

// frame returns the pixels for a screen of the given size. A size change
// reallocates and repaints the buffer right away so no frame goes blank.
func (w *Window) frame(width, height int) []byte {
	w.fit(width, height)
	if w.dirty {
		w.h.Render(w.buf)
		w.dirty = false
	}
	return w.buf.Pix
}

// fit reallocates the buffer when its size differs from width x height.
func (w *Window) fit(width, height int) {
	if width == w.buf.Width && height == w.buf.Height {
		return
	}
	w.buf = framebuffer.New(width, height)
	w.resized = true
	w.dirty = true
}

// Layout makes the logical screen follow the window size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.width, w.height = max(outsideWidth, 1), max(outsideHeight, 1)
	return w.width, w.height
}

// Buffer returns the current framebuffer.
func (w *Window) Buffer() framebuffer.Buffer {
	return w.buf
}

var (
	upKeys    = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	downKeys  = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	quitKeys  = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}
)

// pollInput reads held direction keys and freshly pressed quit keys. Held
// directions cover one tick at tps ticks per second.
func pollInput(pressed, justPressed func(ebiten.Key) bool, tps int) input.State {
	var in input.State
	in.Up = anyKey(pressed, upKeys)
	in.Down = anyKey(pressed, downKeys)
	in.Left = anyKey(pressed, leftKeys)
	in.Right = anyKey(pressed, rightKeys)
	in.Quit = anyKey(justPressed, quitKeys)

	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	if in.Any() {
		in.Elapsed = time.Second / time.Duration(tps)
	}
	return in
}

func anyKey(check func(ebiten.Key) bool, keys []ebiten.Key) bool {
	for _, k := range keys {
		if check(k) {
			return true
		}
	}
	return false
}
