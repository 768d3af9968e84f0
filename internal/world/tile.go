// Package world provides the tile grid, its placement on screen and map generation.
package world

import "github.com/samdwyer/tilegrid/internal/framebuffer"

// Tile represents a single map cell symbol.
type Tile rune

const (
	// TileWall represents an impassable boundary tile.
	TileWall Tile = 'r'
	// TileFloor represents the only passable tile.
	TileFloor Tile = '_'
	// TileGreen is an impassable accent tile.
	TileGreen Tile = 'g'
	// TileBlue is an impassable accent tile.
	TileBlue Tile = 'b'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// Rune returns the tile's symbol.
func (t Tile) Rune() rune {
	return rune(t)
}

// Color returns the palette color for the tile. Unknown symbols use the floor color.
func (t Tile) Color(p Palette) framebuffer.Color {
	switch t {
	case TileWall:
		return p.Wall
	case TileGreen:
		return p.Green
	case TileBlue:
		return p.Blue
	default:
		return p.Floor
	}
}
