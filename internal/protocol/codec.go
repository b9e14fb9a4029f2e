// Package protocol speaks the line-based game protocol: production and
// frame parsing, order encoding and the per-game read/decide/write loop.
// Wire rows run top-down, so y is flipped at this boundary.
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/halitebot/internal/model"
)

// ErrMalformedFrame is returned for any input line that cannot be parsed
var ErrMalformedFrame = errors.New("malformed frame")

// Wire direction codes
const (
	wireStand = 0
	wireUp    = 1
	wireRight = 2
	wireDown  = 3
	wireLeft  = 4
)

func atoi(tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedFrame, tok)
	}
	return n, nil
}

// ParseDimensions parses the "W H" line
func ParseDimensions(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: dimensions line %q", ErrMalformedFrame, line)
	}
	width, err := atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	height, err := atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	if width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d", model.ErrInvalidDimensions, width, height)
	}
	return width, height, nil
}

// ParseProduction parses width*height production values, rows top-down
func ParseProduction(line string, width, height int) (*model.Board, error) {
	fields := strings.Fields(line)
	if len(fields) != width*height {
		return nil, fmt.Errorf("%w: %d production values, want %d", ErrMalformedFrame, len(fields), width*height)
	}

	production := make([][]int, width)
	for x := range production {
		production[x] = make([]int, height)
	}
	i := 0
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			p, err := atoi(fields[i])
			if err != nil {
				return nil, err
			}
			production[x][y] = p
			i++
		}
	}
	return model.NewBoard(production)
}

// ParseFrame parses a run-length owner section followed by width*height
// strengths. Owner 0 is unowned, playerTag is the player, anything else an
// enemy with that id.
func ParseFrame(line string, board *model.Board, playerTag int) (*model.GameState, error) {
	width, height := board.Width(), board.Height()
	total := width * height
	fields := strings.Fields(line)

	owners := make([][]int, width)
	for x := range owners {
		owners[x] = make([]int, height)
	}

	i, filled := 0, 0
	for filled < total {
		if i+1 >= len(fields) {
			return nil, fmt.Errorf("%w: owner runs cover %d of %d cells", ErrMalformedFrame, filled, total)
		}
		count, err := atoi(fields[i])
		if err != nil {
			return nil, err
		}
		owner, err := atoi(fields[i+1])
		if err != nil {
			return nil, err
		}
		i += 2
		if count < 1 || count > total-filled || owner < 0 {
			return nil, fmt.Errorf("%w: bad run (%d, %d)", ErrMalformedFrame, count, owner)
		}
		for ; count > 0; count-- {
			x, y := filled%width, height-1-filled/width
			owners[x][y] = owner
			filled++
		}
	}

	strengths := fields[i:]
	if len(strengths) != total {
		return nil, fmt.Errorf("%w: %d strengths, want %d", ErrMalformedFrame, len(strengths), total)
	}

	strengthGrid := make([][]int, width)
	for x := range strengthGrid {
		strengthGrid[x] = make([]int, height)
	}
	k := 0
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			s, err := atoi(strengths[k])
			if err != nil {
				return nil, err
			}
			strengthGrid[x][y] = s
			k++
		}
	}

	return model.NewGameStateFromOwners(board, owners, strengthGrid, playerTag)
}

// EncodeFrame is the inverse of ParseFrame for x-major owner and strength
// grids
func EncodeFrame(owners, strengths [][]int) string {
	width := len(owners)
	height := len(owners[0])

	var b strings.Builder
	run, current := 0, -1
	flush := func() {
		if run > 0 {
			fmt.Fprintf(&b, "%d %d ", run, current)
		}
	}
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			if owners[x][y] != current {
				flush()
				run, current = 0, owners[x][y]
			}
			run++
		}
	}
	flush()

	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			b.WriteString(strconv.Itoa(strengths[x][y]))
			if y != 0 || x != width-1 {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// EncodeDirection maps a direction to its wire code
func EncodeDirection(d model.Direction) int {
	switch d {
	case model.Up:
		return wireUp
	case model.Right:
		return wireRight
	case model.Down:
		return wireDown
	case model.Left:
		return wireLeft
	default:
		return wireStand
	}
}

// DecodeDirection maps a wire code back to a direction
func DecodeDirection(code int) (model.Direction, error) {
	switch code {
	case wireStand:
		return model.Stand, nil
	case wireUp:
		return model.Up, nil
	case wireRight:
		return model.Right, nil
	case wireDown:
		return model.Down, nil
	case wireLeft:
		return model.Left, nil
	default:
		return model.Stand, fmt.Errorf("%w: direction code %d", ErrMalformedFrame, code)
	}
}

// EncodeOrders renders orders as "x y d" triples on one line, y top-down
func EncodeOrders(orders []model.Order, height int) string {
	parts := make([]string, 0, 3*len(orders))
	for _, o := range orders {
		parts = append(parts,
			strconv.Itoa(o.X),
			strconv.Itoa(height-o.Y-1),
			strconv.Itoa(EncodeDirection(o.Direction)),
		)
	}
	return strings.Join(parts, " ")
}

// DecodeOrders parses an orders line back into orders
func DecodeOrders(line string, height int) ([]model.Order, error) {
	fields := strings.Fields(line)
	if len(fields)%3 != 0 {
		return nil, fmt.Errorf("%w: %d order fields", ErrMalformedFrame, len(fields))
	}
	orders := make([]model.Order, 0, len(fields)/3)
	for i := 0; i < len(fields); i += 3 {
		x, err := atoi(fields[i])
		if err != nil {
			return nil, err
		}
		y, err := atoi(fields[i+1])
		if err != nil {
			return nil, err
		}
		code, err := atoi(fields[i+2])
		if err != nil {
			return nil, err
		}
		d, err := DecodeDirection(code)
		if err != nil {
			return nil, err
		}
		orders = append(orders, model.Order{X: x, Y: height - y - 1, Direction: d})
	}
	return orders, nil
}
