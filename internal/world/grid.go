package world

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilegrid/internal/framebuffer"
	"github.com/samdwyer/tilegrid/internal/telemetry"
)

var (
	// ErrEmptyMap is returned when a map description has no cells.
	ErrEmptyMap = errors.New("map has no cells")
	// ErrRaggedMap is returned when map rows differ in length.
	ErrRaggedMap = errors.New("map rows have different lengths")
	// ErrCellSize is returned when the layout's cell size is not positive.
	ErrCellSize = errors.New("cell size must be positive")
	// ErrCellSymbol is returned when a cell is more than one character.
	ErrCellSymbol = errors.New("cell symbol must be a single character")
)

// Grid is a rectangular tile map placed on the framebuffer, with the player's position.
// Its shape and layout never change after Parse; only the player moves.
type Grid struct {
	tiles  [][]Tile
	width  int
	height int
	layout Layout

	// Player position in cell units. Always inside [0,width) x [0,height).
	playerX float64
	playerY float64
}

// Parse builds a grid from a textual map description. Each line is one row after
// its leading whitespace is trimmed.
func Parse(text string, layout Layout) (*Grid, error) {
	if layout.CellSize <= 0 {
		return nil, fmt.Errorf("parse map: %w (got %d)", ErrCellSize, layout.CellSize)
	}

	var rows [][]Tile
	for line := range strings.Lines(text) {
		line = strings.TrimRight(line, "\r\n")
		line = strings.TrimLeftFunc(line, unicode.IsSpace)

		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("parse map row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}

	g, err := NewGrid(rows, layout)
	if err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	return g, nil
}

// NewGrid builds a grid from rows of tiles and takes ownership of them. The
// player starts at the horizontal center of the grid, one row down from the top.
func NewGrid(rows [][]Tile, layout Layout) (*Grid, error) {
	if layout.CellSize <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrCellSize, layout.CellSize)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d: %w (got %d cells, want %d)",
				i, ErrRaggedMap, len(row), width)
		}
	}
	if width == 0 {
		return nil, ErrEmptyMap
	}

	return &Grid{
		tiles:   rows,
		width:   width,
		height:  len(rows),
		layout:  layout,
		playerX: float64(width) / 2,
		playerY: 1,
	}, nil
}

// ParseContext is Parse wrapped in a trace span.
func ParseContext(ctx context.Context, text string, layout Layout) (*Grid, error) {
	_, span := telemetry.Tracer("world").Start(ctx, "map.parse")
	defer span.End()

	g, err := Parse(text, layout)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("map.width", g.width),
		attribute.Int("map.height", g.height),
		attribute.Int("map.cell_size", layout.CellSize),
	)
	return g, nil
}

// parseRow splits a line into tiles, one per grapheme cluster.
func parseRow(line string) ([]Tile, error) {
	row := make([]Tile, 0, len(line))
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) != 1 {
			from, _ := gr.Positions()
			return nil, fmt.Errorf("column %d %q: %w", len(row), line[from:], ErrCellSymbol)
		}
		row = append(row, Tile(runes[0]))
	}
	return row, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Layout returns the grid's placement and palette.
func (g *Grid) Layout() Layout { return g.layout }

// Tile returns the tile at the given cell. Out-of-range cells read as walls.
func (g *Grid) Tile(col, row int) Tile {
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return TileWall
	}
	return g.tiles[row][col]
}

// Bounds returns the pixel rectangle the grid covers on the framebuffer.
func (g *Grid) Bounds() image.Rectangle {
	size := g.layout.CellSize
	return image.Rect(
		g.layout.OriginX,
		g.layout.OriginY,
		g.layout.OriginX+g.width*size,
		g.layout.OriginY+g.height*size,
	)
}

// Fits reports whether the whole grid can be drawn into buf.
func (g *Grid) Fits(buf framebuffer.Buffer) bool {
	return g.Bounds().In(buf.Bounds())
}

// cellAt converts a continuous position to cell indices.
func (g *Grid) cellAt(x, y float64) (col, row int, ok bool) {
	fx, fy := math.Floor(x), math.Floor(y)
	if !(fx >= 0 && fx < float64(g.width) && fy >= 0 && fy < float64(g.height)) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// IsPassable returns true if the cell containing (x, y) can be walked on.
// Positions outside the grid are never passable.
func (g *Grid) IsPassable(x, y float64) bool {
	col, row, ok := g.cellAt(x, y)
	if !ok {
		return false
	}
	return g.tiles[row][col].IsPassable()
}

// Position returns the player's position in cell units.
func (g *Grid) Position() (x, y float64) {
	return g.playerX, g.playerY
}

// Place moves the player to (x, y). Positions outside the grid are refused
// and leave the player where it was.
func (g *Grid) Place(x, y float64) bool {
	if _, _, ok := g.cellAt(x, y); !ok {
		return false
	}
	g.playerX, g.playerY = x, y
	return true
}

// Draw paints every cell as a CellSize square in its classified color.
func (g *Grid) Draw(buf framebuffer.Buffer) {
	size := g.layout.CellSize
	for row, tiles := range g.tiles {
		for col, tile := range tiles {
			framebuffer.FillRect(buf,
				g.layout.OriginX+col*size,
				g.layout.OriginY+row*size,
				size,
				tile.Color(g.layout.Palette),
			)
		}
	}
}

// PlayerPixel returns the framebuffer pixel that marks the player.
// Both axes grow the same way as the cell rows and columns drawn by Draw.
func (g *Grid) PlayerPixel() (x, y int) {
	size := g.layout.CellSize
	px := min(int(math.Floor(g.playerX*float64(size))), g.width*size-1)
	py := min(int(math.Floor(g.playerY*float64(size))), g.height*size-1)
	return g.layout.OriginX + px, g.layout.OriginY + py
}

// DrawPlayer paints the one-pixel player marker.
func (g *Grid) DrawPlayer(buf framebuffer.Buffer) {
	x, y := g.PlayerPixel()
	framebuffer.FillRect(buf, x, y, 1, g.layout.Palette.Marker)
}

// String renders the grid back to map text.
func (g *Grid) String() string {
	var sb strings.Builder
	for i, row := range g.tiles {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, t := range row {
			sb.WriteRune(t.Rune())
		}
	}
	return sb.String()
}
