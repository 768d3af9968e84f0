// Package game owns the session: the grid, movement and frame composition
// driven by a frontend.
package game

// State represents the session's lifecycle state.
type State int

const (
	// StateRunning is the normal state: input moves the player and frames are drawn.
	StateRunning State = iota
	// StateQuit means the session asked its frontend to exit.
	StateQuit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}
