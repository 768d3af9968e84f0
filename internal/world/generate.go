package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilegrid/internal/telemetry"
)

const (
	// Default generated map dimensions
	DefaultWidth  = 48
	DefaultHeight = 32

	// MinMapSize is the smallest width or height the generator accepts.
	MinMapSize = minLeafSize + 2

	// BSP parameters
	minRoomSize = 8  // Minimum room dimension
	maxRoomSize = 15 // Maximum room dimension
	minLeafSize = 10 // Minimum BSP leaf size before stopping split
)

// ErrMapTooSmall is returned when generation is asked for a map below MinMapSize.
var ErrMapTooSmall = errors.New("map too small to generate")

// Generator carves rooms and corridors out of a solid wall map.
type Generator struct {
	Width  int
	Height int
	Tiles  [][]Tile
	Rooms  []Room
	rng    *rand.Rand
}

// NewGenerator creates a generator for a map filled with walls.
// A nil rng uses a time-seeded source.
func NewGenerator(width, height int, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Generator{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		Rooms:  make([]Room, 0),
		rng:    rng,
	}
}

// Generate partitions the map, furnishes each leaf with a room, links
// sibling subtrees and digs a path from the player's spawn cell into the
// first room.
func (d *Generator) Generate(ctx context.Context) error {
	_, span := telemetry.Tracer("world").Start(ctx, "map.generate")
	defer span.End()

	if d.Width < MinMapSize || d.Height < MinMapSize {
		err := fmt.Errorf("generate %dx%d: %w (minimum %d)", d.Width, d.Height, ErrMapTooSmall, MinMapSize)
		span.RecordError(err)
		return err
	}

	began := time.Now()

	// Everything inside the outer wall
	root := &region{area: Room{X: 1, Y: 1, Width: d.Width - 2, Height: d.Height - 2}}
	d.split(root)
	d.furnish(root)
	d.link(root)

	if len(d.Rooms) > 0 {
		spawn := Room{X: d.Width / 2, Y: 1, Width: 1, Height: 1}
		d.dig(spawn, d.Rooms[0])
	}

	span.SetAttributes(
		attribute.Int("map.width", d.Width),
		attribute.Int("map.height", d.Height),
		attribute.Int("map.room_count", len(d.Rooms)),
		attribute.Int64("map.generation_ms", time.Since(began).Milliseconds()),
	)
	return nil
}

// Generate returns the tiles of a seeded layout, ready for NewGrid.
func Generate(ctx context.Context, width, height int, rng *rand.Rand) ([][]Tile, error) {
	d := NewGenerator(width, height, rng)
	if err := d.Generate(ctx); err != nil {
		return nil, err
	}
	return d.Tiles, nil
}

// region is a node of the partition tree. Leaves have no children and hold
// at most one room.
type region struct {
	area     Room
	children [2]*region
	room     *Room
}

func (r *region) leaf() bool {
	return r.children[0] == nil
}

// split cuts r in two across its longer splittable side until both sides are
// below twice the minimum leaf size.
func (d *Generator) split(r *region) {
	a := r.area
	wide := a.Width >= 2*minLeafSize
	tall := a.Height >= 2*minLeafSize

	switch {
	case wide && (a.Width > a.Height || !tall):
		cut := minLeafSize + d.rng.Intn(a.Width-2*minLeafSize+1)
		r.children[0] = &region{area: Room{X: a.X, Y: a.Y, Width: cut, Height: a.Height}}
		r.children[1] = &region{area: Room{X: a.X + cut, Y: a.Y, Width: a.Width - cut, Height: a.Height}}
	case tall:
		cut := minLeafSize + d.rng.Intn(a.Height-2*minLeafSize+1)
		r.children[0] = &region{area: Room{X: a.X, Y: a.Y, Width: a.Width, Height: cut}}
		r.children[1] = &region{area: Room{X: a.X, Y: a.Y + cut, Width: a.Width, Height: a.Height - cut}}
	default:
		return
	}

	d.split(r.children[0])
	d.split(r.children[1])
}

// furnish places a room in every leaf that can hold one, keeping a one-tile
// margin inside the leaf. Each room gets an accent pillar in its top-left
// corner, alternating green and blue.
func (d *Generator) furnish(r *region) {
	if !r.leaf() {
		d.furnish(r.children[0])
		d.furnish(r.children[1])
		return
	}

	a := r.area
	w := min(d.roomSide(a.Width), a.Width-2)
	h := min(d.roomSide(a.Height), a.Height-2)
	if w < minRoomSize || h < minRoomSize {
		return
	}

	room := Room{
		X:      a.X + 1 + d.rng.Intn(a.Width-w-1),
		Y:      a.Y + 1 + d.rng.Intn(a.Height-h-1),
		Width:  w,
		Height: h,
	}
	r.room = &room
	d.Rooms = append(d.Rooms, room)

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			d.setTile(x, y, TileFloor)
		}
	}

	accent := TileGreen
	if len(d.Rooms)%2 == 0 {
		accent = TileBlue
	}
	d.setTile(room.X, room.Y, accent)
}

// roomSide picks a room dimension for a leaf side of length n.
func (d *Generator) roomSide(n int) int {
	spread := min(maxRoomSize-minRoomSize+1, n-minRoomSize+1)
	if spread <= 0 {
		return 0
	}
	return minRoomSize + d.rng.Intn(spread)
}

// link joins the rooms of sibling subtrees bottom-up and returns the first
// room found in r's subtree, or nil.
func (d *Generator) link(r *region) *Room {
	if r.leaf() {
		return r.room
	}

	first := d.link(r.children[0])
	second := d.link(r.children[1])
	if first != nil && second != nil {
		d.dig(*first, *second)
	}
	if first != nil {
		return first
	}
	return second
}

// dig carves an L-shaped corridor between two room centers, bending at a
// randomly chosen corner.
func (d *Generator) dig(from, to Room) {
	x1, y1 := from.Center()
	x2, y2 := to.Center()

	if d.rng.Intn(2) == 0 {
		d.digLine(x1, y1, x2, y1)
		d.digLine(x2, y1, x2, y2)
	} else {
		d.digLine(x1, y1, x1, y2)
		d.digLine(x1, y2, x2, y2)
	}
}

// digLine carves floor along a horizontal or vertical line, ends included.
func (d *Generator) digLine(x1, y1, x2, y2 int) {
	dx, dy := sign(x2-x1), sign(y2-y1)
	for x, y := x1, y1; ; x, y = x+dx, y+dy {
		d.setTile(x, y, TileFloor)
		if x == x2 && y == y2 {
			return
		}
	}
}

// setTile writes a tile unless it lies on the outer wall.
func (d *Generator) setTile(x, y int, t Tile) {
	if x > 0 && x < d.Width-1 && y > 0 && y < d.Height-1 {
		d.Tiles[y][x] = t
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
