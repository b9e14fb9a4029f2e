package model

// Direction is the action a single cell takes for a turn
type Direction int

const (
	Stand Direction = iota
	Up
	Right
	Down
	Left
)

// Cardinals lists the four movement directions in heuristic tie-break order
var Cardinals = [4]Direction{Left, Right, Up, Down}

// Offset returns the (dx, dy) step for the direction; y grows upward
func (d Direction) Offset() (int, int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// String returns the lowercase direction name
func (d Direction) String() string {
	switch d {
	case Stand:
		return "stand"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// ParseDirection maps a direction name back to a Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "stand", "still", "none":
		return Stand, true
	case "up", "north":
		return Up, true
	case "right", "east":
		return Right, true
	case "down", "south":
		return Down, true
	case "left", "west":
		return Left, true
	default:
		return Stand, false
	}
}

// Order is one cell's action for the current turn
type Order struct {
	X         int
	Y         int
	Direction Direction
}

// Source returns the position the order is issued from
func (o Order) Source() Position {
	return Position{X: o.X, Y: o.Y}
}

// Destination returns where the order's strength lands, unwrapped.
// Stand maps to the source cell itself.
func (o Order) Destination() Position {
	return o.Source().Step(o.Direction)
}
