package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/halitebot/internal/model"
)

func TestNewBoard_RejectsRaggedGrid(t *testing.T) {
	_, err := model.NewBoard([][]int{{1, 2}, {1}})
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)

	_, err = model.NewBoard(nil)
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)
}

func TestNewBoard_RejectsNegativeProduction(t *testing.T) {
	_, err := model.NewBoard([][]int{{1, -2}})
	assert.ErrorIs(t, err, model.ErrInvalidProduction)
}

func TestBoard_ProductionWraps(t *testing.T) {
	board, err := model.NewBoard([][]int{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, board.Width())
	assert.Equal(t, 3, board.Height())
	assert.Equal(t, 5, board.Production(1, 1))
	assert.Equal(t, 6, board.Production(-1, -1))
	assert.Equal(t, 1, board.Production(2, 3))
	assert.Equal(t, 2, board.Production(-4, 7))
}

func TestBoard_CopiesInput(t *testing.T) {
	grid := [][]int{{1, 1}, {1, 1}}
	board, err := model.NewBoard(grid)
	require.NoError(t, err)

	grid[0][0] = 9
	assert.Equal(t, 1, board.Production(0, 0))
}

func TestGameState_CellWraps(t *testing.T) {
	board, err := model.NewUniformBoard(3, 2, 1)
	require.NoError(t, err)

	cells := [][]model.Cell{
		{model.PlayerCell(1), model.UnownedCell(2)},
		{model.EnemyCell(2, 3), model.UnownedCell(4)},
		{model.UnownedCell(5), model.PlayerCell(6)},
	}
	state, err := model.NewGameState(board, cells)
	require.NoError(t, err)

	assert.Equal(t, 6, state.Cell(-1, -1).Strength)
	assert.Equal(t, 3, state.Cell(4, 2).Strength)
	assert.Equal(t, 2, state.Neighbor(0, 0, model.Down).Strength)
	assert.Equal(t, 5, state.Neighbor(0, 0, model.Left).Strength)
	assert.Equal(t, 2, state.Count(model.OwnerPlayer))
	assert.Equal(t, 1, state.Count(model.OwnerEnemy))
	assert.Equal(t, 3, state.Count(model.OwnerUnowned))
}

func TestGameState_RejectsMismatchedGrid(t *testing.T) {
	board, err := model.NewUniformBoard(2, 2, 1)
	require.NoError(t, err)

	_, err = model.NewGameState(board, [][]model.Cell{{model.PlayerCell(1), model.PlayerCell(1)}})
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)
}

func TestNewGameStateFromOwners(t *testing.T) {
	board, err := model.NewUniformBoard(2, 2, 1)
	require.NoError(t, err)

	state, err := model.NewGameStateFromOwners(board,
		[][]int{{0, 3}, {3, 7}},
		[][]int{{5, 6}, {7, 8}},
		3,
	)
	require.NoError(t, err)
	assert.Equal(t, model.UnownedCell(5), state.Cell(0, 0))
	assert.Equal(t, model.PlayerCell(6), state.Cell(0, 1))
	assert.Equal(t, model.PlayerCell(7), state.Cell(1, 0))
	assert.Equal(t, model.EnemyCell(7, 8), state.Cell(1, 1))
	assert.Equal(t, 2, state.Count(model.OwnerPlayer))
}

func TestNewGameStateFromOwners_Rejects(t *testing.T) {
	board, err := model.NewUniformBoard(2, 1, 1)
	require.NoError(t, err)

	_, err = model.NewGameStateFromOwners(board, [][]int{{0}}, [][]int{{0}, {0}}, 1)
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)
	_, err = model.NewGameStateFromOwners(board, [][]int{{0}, {0, 1}}, [][]int{{0}, {0}}, 1)
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)
	_, err = model.NewGameStateFromOwners(board, [][]int{{-1}, {0}}, [][]int{{0}, {0}}, 1)
	assert.ErrorIs(t, err, model.ErrInvalidCell)
	_, err = model.NewGameStateFromOwners(board, [][]int{{1}, {0}}, [][]int{{256}, {0}}, 1)
	assert.ErrorIs(t, err, model.ErrInvalidCell)
}

func TestGameState_RejectsInvalidCells(t *testing.T) {
	board, err := model.NewUniformBoard(2, 1, 1)
	require.NoError(t, err)

	tests := []struct {
		name string
		cell model.Cell
	}{
		{"zero value", model.Cell{}},
		{"enemy without id", model.Cell{Owner: model.OwnerEnemy, Strength: 10}},
		{"strength too high", model.Cell{Owner: model.OwnerEnemy, Strength: 999, EnemyID: 2}},
		{"negative strength", model.Cell{Owner: model.OwnerUnowned, Strength: -5}},
		{"player with enemy id", model.Cell{Owner: model.OwnerPlayer, Strength: 5, EnemyID: 7}},
		{"unknown owner", model.Cell{Owner: model.Owner(42)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewGameState(board, [][]model.Cell{{model.PlayerCell(1)}, {tt.cell}})
			require.ErrorIs(t, err, model.ErrInvalidCell)
			assert.Contains(t, err.Error(), "cell (1,0)")
		})
	}
}
