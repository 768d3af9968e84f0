package movement

import "time"

// Directions is the set of direction signals active for one update.
type Directions struct {
	Up, Down, Left, Right bool
}

// Any reports whether at least one direction is set.
func (d Directions) Any() bool {
	return d.Up || d.Down || d.Left || d.Right
}

// Vector returns the unit-free direction with y growing downward.
// Opposite directions cancel out.
func (d Directions) Vector() (x, y float64) {
	if d.Left {
		x--
	}
	if d.Right {
		x++
	}
	if d.Up {
		y--
	}
	if d.Down {
		y++
	}
	return x, y
}

// Scaled returns the delta for directions held over elapsed at speed cells per second.
func Scaled(d Directions, speed float64, elapsed time.Duration) (dx, dy float64) {
	x, y := d.Vector()
	dist := speed * elapsed.Seconds()
	return x * dist, y * dist
}

// Stepped returns the delta for one discrete press of fixed length step.
func Stepped(d Directions, step float64) (dx, dy float64) {
	x, y := d.Vector()
	return x * step, y * step
}
