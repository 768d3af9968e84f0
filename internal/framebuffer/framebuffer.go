// Package framebuffer rasterizes solid rectangles into flat RGBA pixel buffers.
package framebuffer

import "image"

// BytesPerPixel is the size of one RGBA quad.
const BytesPerPixel = 4

// Color is an RGBA quad written verbatim into the buffer. There is no blending.
type Color [BytesPerPixel]byte

// RGBA returns a color from its components.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// Buffer is a mutable view over a row-major RGBA pixel slice.
// The view does not own Pix; frontends allocate and may replace it between frames.
type Buffer struct {
	Pix    []byte
	Width  int // pixels
	Height int // pixels
}

// New allocates a zeroed buffer of the given pixel dimensions.
func New(width, height int) Buffer {
	return Buffer{
		Pix:    make([]byte, width*height*BytesPerPixel),
		Width:  width,
		Height: height,
	}
}

// Stride returns the number of bytes in one row.
func (b Buffer) Stride() int {
	return b.Width * BytesPerPixel
}

// Bounds returns the pixel rectangle covered by the buffer.
func (b Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Offset returns the byte index of pixel (x, y).
func (b Buffer) Offset(x, y int) int {
	return y*b.Stride() + x*BytesPerPixel
}

// At returns the color stored at pixel (x, y).
func (b Buffer) At(x, y int) Color {
	var c Color
	copy(c[:], b.Pix[b.Offset(x, y):])
	return c
}

// FillRect writes a size x size block of color with its top-left pixel at (x, y).
//
// The block must lie inside the buffer. Callers derive coordinates from validated
// grid geometry, so no clipping is done here. An out-of-range block either wraps
// into the next row or panics on the slice bound.
func FillRect(b Buffer, x, y, size int, color Color) {
	fillSpan(b, x, y, size, size, color)
}

// FillCenteredColumn writes a strip 2*halfWidth+1 pixels wide and length pixels tall,
// centered horizontally on centerX and vertically within the buffer.
//
// Calling it with a growing length while shifting centerX one pixel right per call
// draws a triangular silhouette.
func FillCenteredColumn(b Buffer, centerX, halfWidth, length int, color Color) {
	top := (b.Height - length) / 2
	fillSpan(b, centerX-halfWidth, top, 2*halfWidth+1, length, color)
}

func fillSpan(b Buffer, x, y, w, h int, color Color) {
	stride := b.Stride()
	for row := 0; row < h; row++ {
		start := (y+row)*stride + x*BytesPerPixel
		line := b.Pix[start : start+w*BytesPerPixel]
		for i := 0; i < len(line); i += BytesPerPixel {
			copy(line[i:i+BytesPerPixel], color[:])
		}
	}
}
