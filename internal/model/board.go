package model

import "fmt"

// Board holds the static production map for one game.
// Production[x][y] uses the same coordinate convention as Position.
type Board struct {
	width      int
	height     int
	production [][]int
}

// NewBoard copies the given production grid (indexed [x][y]) into a new Board
func NewBoard(production [][]int) (*Board, error) {
	width := len(production)
	if width == 0 || len(production[0]) == 0 {
		return nil, fmt.Errorf("%w: board must be at least 1x1", ErrInvalidDimensions)
	}
	height := len(production[0])

	cells := make([][]int, width)
	for x := range production {
		if len(production[x]) != height {
			return nil, fmt.Errorf("%w: column %d has %d rows, want %d", ErrInvalidDimensions, x, len(production[x]), height)
		}
		cells[x] = make([]int, height)
		for y, p := range production[x] {
			if p < 0 {
				return nil, fmt.Errorf("%w: production %d at (%d,%d)", ErrInvalidProduction, p, x, y)
			}
			cells[x][y] = p
		}
	}

	return &Board{width: width, height: height, production: cells}, nil
}

// NewUniformBoard creates a width x height board with the same production everywhere
func NewUniformBoard(width, height, production int) (*Board, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	grid := make([][]int, width)
	for x := range grid {
		grid[x] = make([]int, height)
		for y := range grid[x] {
			grid[x][y] = production
		}
	}
	return NewBoard(grid)
}

// Width returns the number of columns
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows
func (b *Board) Height() int {
	return b.height
}

// Size returns the total number of cells
func (b *Board) Size() int {
	return b.width * b.height
}

// Production returns the production at (x, y), wrapping out-of-range coordinates
func (b *Board) Production(x, y int) int {
	return b.production[Wrap(x, b.width)][Wrap(y, b.height)]
}

// ProductionGrid returns a copy of the production values indexed [x][y]
func (b *Board) ProductionGrid() [][]int {
	grid := make([][]int, b.width)
	for x := range grid {
		grid[x] = make([]int, b.height)
		copy(grid[x], b.production[x])
	}
	return grid
}
