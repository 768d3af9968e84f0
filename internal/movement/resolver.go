// Package movement resolves requested player moves against grid collision.
package movement

// Mode selects how the resolver treats impassable cells.
type Mode int

const (
	// ModeCollide rejects moves whose target cell is not passable.
	ModeCollide Mode = iota
	// ModeFree skips the passability test. The grid still refuses
	// positions outside its bounds.
	ModeFree
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeCollide:
		return "collide"
	case ModeFree:
		return "free"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name back to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "collide":
		return ModeCollide, true
	case "free":
		return ModeFree, true
	default:
		return ModeCollide, false
	}
}

// Body is something with a position on a grid that can be moved.
type Body interface {
	Position() (x, y float64)
	IsPassable(x, y float64) bool
	Place(x, y float64) bool
}

// Resolver applies movement deltas to a Body.
type Resolver struct {
	mode Mode
}

// NewResolver creates a resolver in the given mode.
func NewResolver(mode Mode) *Resolver {
	return &Resolver{mode: mode}
}

// Mode returns the resolver's collision mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// TryMove moves b by (dx, dy) in one step. The move is all or nothing: if the
// target cell is rejected, neither axis changes and TryMove returns false.
func (r *Resolver) TryMove(b Body, dx, dy float64) bool {
	x, y := b.Position()
	newX, newY := x+dx, y+dy

	if r.mode == ModeCollide && !b.IsPassable(newX, newY) {
		return false
	}
	return b.Place(newX, newY)
}
