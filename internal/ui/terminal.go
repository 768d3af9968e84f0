package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/samdwyer/tilegrid/internal/framebuffer"
	"github.com/samdwyer/tilegrid/internal/input"
)

// Run drives h from terminal events until it stops running, the screen is
// closed or ctx is done. Key presses are discrete, so Elapsed is always zero.
func Run(ctx context.Context, screen *Screen, h input.Handler, logger logr.Logger) error {
	renderer := NewRenderer(screen)

	// Wake PollEvent when ctx ends so cancellation does not wait for a key.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			if err := screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
				logger.V(1).Info("could not wake event loop", "error", err.Error())
			}
		case <-done:
		}
	}()

	width, height := renderer.BufferSize()
	buf := framebuffer.New(width, height)
	h.Render(buf)
	renderer.Render(buf)

	for h.Running() {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev := screen.PollEvent()
		if ev == nil {
			logger.V(1).Info("screen closed")
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		in := translateEvent(ev)
		if in.Resized {
			screen.Sync()
			in.Width, in.Height = renderer.BufferSize()
			buf = framebuffer.New(in.Width, in.Height)
		}

		if h.Update(ctx, in) {
			h.Render(buf)
			renderer.Render(buf)
		}
	}
	return nil
}

// translateEvent maps a terminal event to input.
func translateEvent(ev tcell.Event) input.State {
	var in input.State

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			in.Quit = true
		case tcell.KeyUp:
			in.Up = true
		case tcell.KeyDown:
			in.Down = true
		case tcell.KeyLeft:
			in.Left = true
		case tcell.KeyRight:
			in.Right = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				in.Quit = true
			case 'w', 'k':
				in.Up = true
			case 's', 'j':
				in.Down = true
			case 'a', 'h':
				in.Left = true
			case 'd', 'l':
				in.Right = true
			}
		}
	case *tcell.EventResize:
		in.Resized = true
	}

	return in
}
