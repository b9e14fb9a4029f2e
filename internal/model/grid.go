package model

// Wrap reduces x into [0, bound) on a toroidal axis.
// Works for arbitrarily negative x, not just -bound..0.
func Wrap(x, bound int) int {
	x %= bound
	if x < 0 {
		x += bound
	}
	return x
}

// Position identifies a cell on the board
type Position struct {
	X int // 0 at the left edge, increasing rightward
	Y int // 0 at the bottom edge, increasing upward
}

// Step returns the position one cell away in the given direction, unwrapped.
// Stand returns the position itself.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Offset()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Wrapped normalizes the position onto a width x height torus
func (p Position) Wrapped(width, height int) Position {
	return Position{X: Wrap(p.X, width), Y: Wrap(p.Y, height)}
}
