package model

import "fmt"

// GameState is an immutable snapshot of one turn
type GameState struct {
	board *Board
	cells [][]Cell
}

// NewGameState copies cells (indexed [x][y]) into a snapshot over board.
// Every cell is validated; the first bad one fails the whole snapshot.
func NewGameState(board *Board, cells [][]Cell) (*GameState, error) {
	if len(cells) != board.Width() {
		return nil, fmt.Errorf("%w: %d columns, board is %d wide", ErrInvalidDimensions, len(cells), board.Width())
	}
	grid := make([][]Cell, board.Width())
	for x := range cells {
		if len(cells[x]) != board.Height() {
			return nil, fmt.Errorf("%w: column %d has %d rows, board is %d high", ErrInvalidDimensions, x, len(cells[x]), board.Height())
		}
		grid[x] = make([]Cell, board.Height())
		for y, c := range cells[x] {
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			grid[x][y] = c
		}
	}
	return &GameState{board: board, cells: grid}, nil
}

// Board returns the static board the snapshot lives on
func (g *GameState) Board() *Board {
	return g.board
}

// Width returns the board width
func (g *GameState) Width() int {
	return g.board.Width()
}

// Height returns the board height
func (g *GameState) Height() int {
	return g.board.Height()
}

// Cell returns the cell at (x, y), wrapping out-of-range coordinates
func (g *GameState) Cell(x, y int) Cell {
	return g.cells[Wrap(x, g.board.Width())][Wrap(y, g.board.Height())]
}

// Neighbor returns the cell one step from (x, y) in direction d
func (g *GameState) Neighbor(x, y int, d Direction) Cell {
	dx, dy := d.Offset()
	return g.Cell(x+dx, y+dy)
}

// Production is shorthand for Board().Production(x, y)
func (g *GameState) Production(x, y int) int {
	return g.board.Production(x, y)
}

// Count returns the number of cells with the given owner
func (g *GameState) Count(owner Owner) int {
	n := 0
	for x := range g.cells {
		for y := range g.cells[x] {
			if g.cells[x][y].Owner == owner {
				n++
			}
		}
	}
	return n
}

// Cells returns a copy of the cell grid indexed [x][y]
func (g *GameState) Cells() [][]Cell {
	grid := make([][]Cell, len(g.cells))
	for x := range g.cells {
		grid[x] = make([]Cell, len(g.cells[x]))
		copy(grid[x], g.cells[x])
	}
	return grid
}

// NewGameStateFromOwners builds a snapshot from raw owner ids and strengths,
// both indexed [x][y]. Owner 0 is unowned, playerTag is the player and any
// other id is an enemy.
func NewGameStateFromOwners(board *Board, owners, strengths [][]int, playerTag int) (*GameState, error) {
	if len(owners) != board.Width() || len(strengths) != board.Width() {
		return nil, fmt.Errorf("%w: grids must have %d columns", ErrInvalidDimensions, board.Width())
	}
	cells := make([][]Cell, board.Width())
	for x := range cells {
		if len(owners[x]) != board.Height() || len(strengths[x]) != board.Height() {
			return nil, fmt.Errorf("%w: column %d must have %d rows", ErrInvalidDimensions, x, board.Height())
		}
		cells[x] = make([]Cell, board.Height())
		for y := range cells[x] {
			var (
				c   Cell
				err error
			)
			switch o := owners[x][y]; {
			case o < 0:
				err = fmt.Errorf("%w: negative owner %d at (%d,%d)", ErrInvalidCell, o, x, y)
			case o == 0:
				c, err = NewCell(OwnerUnowned, strengths[x][y], nil)
			case o == playerTag:
				c, err = NewCell(OwnerPlayer, strengths[x][y], nil)
			default:
				c, err = NewCell(OwnerEnemy, strengths[x][y], &o)
			}
			if err != nil {
				return nil, err
			}
			cells[x][y] = c
		}
	}
	return &GameState{board: board, cells: cells}, nil
}
