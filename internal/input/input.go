// Package input defines the signals frontends deliver to a session each update.
package input

import (
	"context"
	"time"

	"github.com/samdwyer/tilegrid/internal/framebuffer"
	"github.com/samdwyer/tilegrid/internal/movement"
)

// State is one update's worth of input.
type State struct {
	movement.Directions

	// Elapsed is the time the directions were held. Zero means a discrete
	// key press that moves by a fixed step instead.
	Elapsed time.Duration

	Quit bool

	// Resized is set when the frontend reallocated its buffer.
	Resized       bool
	Width, Height int
}

// Handler is driven by a frontend: it consumes input and paints frames.
type Handler interface {
	// Update applies input and reports whether a redraw is wanted.
	Update(ctx context.Context, in State) bool
	// Render paints the current frame into buf.
	Render(buf framebuffer.Buffer)
	// Running is false once the session asked to exit.
	Running() bool
}
