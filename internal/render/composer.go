// Package render composes frames from a grid, its player marker and overlays.
package render

import (
	"github.com/samdwyer/tilegrid/internal/framebuffer"
	"github.com/samdwyer/tilegrid/internal/world"
)

// Overlay is the decorative triangle of centered scanline columns drawn over
// each frame. Column i is centered at StartX+i and is i+1 pixels tall.
type Overlay struct {
	Steps     int
	StartX    int
	HalfWidth int
	Color     framebuffer.Color
}

// DefaultOverlay returns the hundred-column red triangle.
func DefaultOverlay() Overlay {
	return Overlay{
		Steps:     100,
		StartX:    1,
		HalfWidth: 0,
		Color:     framebuffer.RGBA(0xdd, 0x40, 0x3a, 0xff),
	}
}

// Fits reports whether every column lies inside buf.
func (o Overlay) Fits(buf framebuffer.Buffer) bool {
	if o.Steps <= 0 {
		return true
	}
	left := o.StartX - o.HalfWidth
	right := o.StartX + o.Steps - 1 + o.HalfWidth
	return left >= 0 && right < buf.Width && o.Steps <= buf.Height
}

// Draw paints the overlay. Callers check Fits first.
func (o Overlay) Draw(buf framebuffer.Buffer) {
	for i := 0; i < o.Steps; i++ {
		framebuffer.FillCenteredColumn(buf, o.StartX+i, o.HalfWidth, i+1, o.Color)
	}
}

// Composer draws whole frames. It keeps no state between frames and never
// clears pixels it does not cover.
type Composer struct {
	overlay *Overlay
}

// NewComposer creates a composer. A nil overlay draws map and player only.
func NewComposer(overlay *Overlay) *Composer {
	return &Composer{overlay: overlay}
}

// Frame reports what Render managed to draw into a buffer.
type Frame struct {
	Grid    bool
	Overlay bool
}

// Render draws the grid, then the player marker, then the overlay into buf.
// Parts that do not fit the buffer's current size are skipped.
func (c *Composer) Render(buf framebuffer.Buffer, grid *world.Grid) Frame {
	var f Frame
	if grid.Fits(buf) {
		grid.Draw(buf)
		grid.DrawPlayer(buf)
		f.Grid = true
	}
	if c.overlay != nil && c.overlay.Fits(buf) {
		c.overlay.Draw(buf)
		f.Overlay = true
	}
	return f
}
