package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tilegrid/internal/framebuffer"
)

// upperHalf draws the top pixel in the foreground color and the bottom pixel
// in the background color.
const upperHalf = '▀'

// Renderer copies a framebuffer onto the terminal screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// BufferSize returns the framebuffer size matching the terminal: one pixel
// per column and two per row.
func (r *Renderer) BufferSize() (width, height int) {
	cols, rows := r.screen.Size()
	return cols, rows * 2
}

// Render draws buf onto the screen and shows it. Cells past either edge of
// the buffer are left alone.
func (r *Renderer) Render(buf framebuffer.Buffer) {
	cols, rows := r.screen.Size()
	cols = min(cols, buf.Width)
	rows = min(rows, buf.Height/2)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := buf.At(x, 2*y)
			bottom := buf.At(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(toTCell(top)).
				Background(toTCell(bottom))
			r.screen.SetContent(x, y, upperHalf, style)
		}
	}

	r.screen.Show()
}

// toTCell converts an RGBA quad to a true-color tcell color. Alpha is ignored.
func toTCell(c framebuffer.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2]))
}
