package world

import "github.com/samdwyer/tilegrid/internal/framebuffer"

// Palette holds the colors used to draw a grid.
type Palette struct {
	Wall   framebuffer.Color
	Green  framebuffer.Color
	Blue   framebuffer.Color
	Floor  framebuffer.Color
	Marker framebuffer.Color
}

// DefaultPalette returns the built-in colors.
func DefaultPalette() Palette {
	return Palette{
		Wall:   framebuffer.RGBA(0xdd, 0x40, 0x3a, 0xff),
		Green:  framebuffer.RGBA(0x69, 0x7a, 0x21, 0xff),
		Blue:   framebuffer.RGBA(0x05, 0x29, 0x9e, 0xff),
		Floor:  framebuffer.RGBA(0x3e, 0x42, 0x4b, 0xff),
		Marker: framebuffer.RGBA(0xff, 0xff, 0xff, 0xff),
	}
}

// Layout places a grid on the framebuffer. It is fixed for the life of a grid.
type Layout struct {
	OriginX  int // pixel x of the grid's top-left corner
	OriginY  int // pixel y of the grid's top-left corner
	CellSize int // pixels per cell edge
	Palette  Palette
}
