package simulator_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/simulator"
)

// newWorld builds a world from top-down rows of "N<s>" (neutral) or
// "<id>:<s>" tokens, with uniform production
func newWorld(t *testing.T, production int, rows ...string) *simulator.World {
	t.Helper()

	height := len(rows)
	width := len(strings.Fields(rows[0]))
	owners := make([][]int, width)
	strengths := make([][]int, width)
	for x := range owners {
		owners[x] = make([]int, height)
		strengths[x] = make([]int, height)
	}
	for r, row := range rows {
		y := height - 1 - r
		for x, tok := range strings.Fields(row) {
			owner, strength := simulator.Neutral, tok[1:]
			if id, s, ok := strings.Cut(tok, ":"); ok {
				var err error
				owner, err = strconv.Atoi(id)
				require.NoError(t, err)
				strength = s
			}
			s, err := strconv.Atoi(strength)
			require.NoError(t, err)
			owners[x][y] = owner
			strengths[x][y] = s
		}
	}

	board, err := model.NewUniformBoard(width, height, production)
	require.NoError(t, err)
	w, err := simulator.NewWorld(board, owners, strengths)
	require.NoError(t, err)
	return w
}

type WorldSuite struct {
	suite.Suite
}

func TestWorldSuite(t *testing.T) {
	suite.Run(t, new(WorldSuite))
}

func (s *WorldSuite) cell(w *simulator.World, x, y int) (int, int) {
	return w.Owner(x, y), w.Strength(x, y)
}

func (s *WorldSuite) TestStandAddsProduction() {
	w := newWorld(s.T(), 2,
		"N100 N100 N100",
		"N100 1:10 N100",
		"N100 N100 N100",
	)
	s.Require().NoError(w.Step(nil))

	owner, strength := s.cell(w, 1, 1)
	s.Equal(1, owner)
	s.Equal(12, strength)
	_, strength = s.cell(w, 0, 1)
	s.Equal(100, strength)
	s.Equal(1, w.Turn())
}

func (s *WorldSuite) TestCaptureLeavesVacatedCellOwned() {
	w := newWorld(s.T(), 1,
		"N100 N100 N100",
		"1:30 N10 N100",
		"N100 N100 N100",
	)
	s.Require().NoError(w.Step(map[int][]model.Order{
		1: {{X: 0, Y: 1, Direction: model.Right}},
	}))

	owner, strength := s.cell(w, 1, 1)
	s.Equal(1, owner)
	s.Equal(20, strength)

	owner, strength = s.cell(w, 0, 1)
	s.Equal(1, owner)
	s.Equal(0, strength)
}

func (s *WorldSuite) TestEqualStrengthLeavesBreach() {
	w := newWorld(s.T(), 1,
		"N100 N100 N100",
		"1:30 N30 N100",
		"N100 N100 N100",
	)
	s.Require().NoError(w.Step(map[int][]model.Order{
		1: {{X: 0, Y: 1, Direction: model.Right}},
	}))

	owner, strength := s.cell(w, 1, 1)
	s.Equal(simulator.Neutral, owner)
	s.Equal(0, strength)
}

func (s *WorldSuite) TestMergeIsCapped() {
	w := newWorld(s.T(), 0, "1:200 1:5 1:100")
	s.Require().NoError(w.Step(map[int][]model.Order{
		1: {
			{X: 0, Y: 0, Direction: model.Right},
			{X: 2, Y: 0, Direction: model.Left},
		},
	}))

	_, strength := s.cell(w, 1, 0)
	s.Equal(model.MaxStrength, strength)
	_, strength = s.cell(w, 0, 0)
	s.Equal(0, strength)
}

func (s *WorldSuite) TestAdjacentPlayersDamageEachOther() {
	w := newWorld(s.T(), 0, "1:50 2:30 N0 N0 N0")
	s.Require().NoError(w.Step(nil))

	owner, strength := s.cell(w, 0, 0)
	s.Equal(1, owner)
	s.Equal(20, strength)

	owner, strength = s.cell(w, 1, 0)
	s.Equal(simulator.Neutral, owner)
	s.Equal(0, strength)
	s.Equal([]int{1}, w.Players())
}

func (s *WorldSuite) TestNeutralDoesNotDamageNeighbors() {
	w := newWorld(s.T(), 0, "1:5 N200 N200")
	s.Require().NoError(w.Step(nil))

	owner, strength := s.cell(w, 0, 0)
	s.Equal(1, owner)
	s.Equal(5, strength)
}

func (s *WorldSuite) TestIllegalOrder() {
	w := newWorld(s.T(), 0, "1:5 2:5 N0")
	err := w.Step(map[int][]model.Order{
		1: {{X: 1, Y: 0, Direction: model.Left}},
	})
	s.ErrorIs(err, simulator.ErrIllegalOrder)
}

func (s *WorldSuite) TestViewIsPerPlayer() {
	w := newWorld(s.T(), 3, "1:5 2:7 N9")

	view, err := w.View(1)
	s.Require().NoError(err)
	s.True(view.Cell(0, 0).IsPlayer())
	s.True(view.Cell(1, 0).IsEnemy())
	s.Equal(2, view.Cell(1, 0).EnemyID)
	s.True(view.Cell(2, 0).IsUnowned())
	s.Equal(3, view.Production(2, 0))

	view, err = w.View(2)
	s.Require().NoError(err)
	s.True(view.Cell(1, 0).IsPlayer())
	s.Equal(1, view.Cell(0, 0).EnemyID)
}

func (s *WorldSuite) TestStats() {
	w := newWorld(s.T(), 2, "1:5 1:7 N9", "2:1 N0 N0")
	s.Equal(simulator.Stats{Territory: 2, Strength: 12, Production: 4}, w.Stats(1))
	s.Equal([]int{1, 2}, w.Players())
}

func (s *WorldSuite) TestNewWorldValidates() {
	board, err := model.NewUniformBoard(2, 1, 1)
	s.Require().NoError(err)

	_, err = simulator.NewWorld(board, [][]int{{0}}, [][]int{{0}})
	s.ErrorIs(err, simulator.ErrInvalidWorld)

	_, err = simulator.NewWorld(board, [][]int{{0}, {0}}, [][]int{{0}, {256}})
	s.ErrorIs(err, simulator.ErrInvalidWorld)

	_, err = simulator.NewWorld(board, [][]int{{-1}, {0}}, [][]int{{0}, {0}})
	s.ErrorIs(err, simulator.ErrInvalidWorld)
}

func TestGenerate(t *testing.T) {
	w, err := simulator.Generate(20, 20, 2, random.NewSeeded(42))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, w.Players())
	assert.Equal(t, 1, w.Owner(5, 5))
	assert.Equal(t, 2, w.Owner(15, 15))
	assert.Equal(t, simulator.StartStrength, w.Strength(5, 5))
	assert.Positive(t, w.Board().Production(5, 5))

	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			p := w.Board().Production(x, y)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, simulator.MaxGeneratedProduction)
			if w.Owner(x, y) == simulator.Neutral {
				assert.LessOrEqual(t, w.Strength(x, y), simulator.MaxNeutralStrength)
			}
		}
	}

	again, err := simulator.Generate(20, 20, 2, random.NewSeeded(42))
	require.NoError(t, err)
	assert.Equal(t, w.Board().ProductionGrid(), again.Board().ProductionGrid())
}

func TestGenerate_Invalid(t *testing.T) {
	_, err := simulator.Generate(0, 5, 1, random.NewSeeded(1))
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)

	_, err = simulator.Generate(5, 5, 0, random.NewSeeded(1))
	assert.ErrorIs(t, err, simulator.ErrInvalidWorld)

	_, err = simulator.Generate(5, 3, 4, random.NewSeeded(1))
	assert.ErrorIs(t, err, simulator.ErrInvalidWorld)
}
