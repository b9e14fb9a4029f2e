package testutil

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/halitebot/internal/model"
)

// ParseCell parses a fixture token: "P<s>" player, "U<s>" unowned,
// "E<id>:<s>" enemy.
func ParseCell(token string) (model.Cell, error) {
	if len(token) < 2 {
		return model.Cell{}, fmt.Errorf("bad cell token %q", token)
	}
	switch token[0] {
	case 'P':
		s, err := strconv.Atoi(token[1:])
		if err != nil {
			return model.Cell{}, err
		}
		return model.NewCell(model.OwnerPlayer, s, nil)
	case 'U':
		s, err := strconv.Atoi(token[1:])
		if err != nil {
			return model.Cell{}, err
		}
		return model.NewCell(model.OwnerUnowned, s, nil)
	case 'E':
		idStr, sStr, ok := strings.Cut(token[1:], ":")
		if !ok {
			return model.Cell{}, fmt.Errorf("bad enemy token %q", token)
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return model.Cell{}, err
		}
		s, err := strconv.Atoi(sStr)
		if err != nil {
			return model.Cell{}, err
		}
		return model.NewCell(model.OwnerEnemy, s, &id)
	default:
		return model.Cell{}, fmt.Errorf("bad cell token %q", token)
	}
}

// State builds a GameState from rows written top-down, the way a board is
// drawn. The last row is y=0. Every cell gets the given production.
func State(t *testing.T, production int, rows ...string) *model.GameState {
	t.Helper()

	height := len(rows)
	require.NotZero(t, height, "no rows")
	width := len(strings.Fields(rows[0]))

	board, err := model.NewUniformBoard(width, height, production)
	require.NoError(t, err)
	return StateOn(t, board, rows...)
}

// StateOn is State with an explicit board
func StateOn(t *testing.T, board *model.Board, rows ...string) *model.GameState {
	t.Helper()

	require.Len(t, rows, board.Height())
	cells := make([][]model.Cell, board.Width())
	for x := range cells {
		cells[x] = make([]model.Cell, board.Height())
	}
	for r, row := range rows {
		tokens := strings.Fields(row)
		require.Len(t, tokens, board.Width(), "row %d", r)
		y := board.Height() - 1 - r
		for x, tok := range tokens {
			c, err := ParseCell(tok)
			require.NoError(t, err)
			cells[x][y] = c
		}
	}

	state, err := model.NewGameState(board, cells)
	require.NoError(t, err)
	return state
}

// Filled builds a width x height state where every cell is c
func Filled(t *testing.T, width, height, production int, c model.Cell) *model.GameState {
	t.Helper()

	board, err := model.NewUniformBoard(width, height, production)
	require.NoError(t, err)
	cells := make([][]model.Cell, width)
	for x := range cells {
		cells[x] = make([]model.Cell, height)
		for y := range cells[x] {
			cells[x][y] = c
		}
	}
	state, err := model.NewGameState(board, cells)
	require.NoError(t, err)
	return state
}

// With returns a copy of state with the cell at (x, y) replaced
func With(t *testing.T, state *model.GameState, x, y int, c model.Cell) *model.GameState {
	t.Helper()

	cells := state.Cells()
	cells[model.Wrap(x, state.Width())][model.Wrap(y, state.Height())] = c
	next, err := model.NewGameState(state.Board(), cells)
	require.NoError(t, err)
	return next
}
