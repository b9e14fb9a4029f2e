package distance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/distance"
	"github.com/mcoot/halitebot/internal/testutil"
)

func TestNew_FullyCapturedBoardIsZero(t *testing.T) {
	state := testutil.Filled(t, 4, 3, 1, model.PlayerCell(5))
	field := distance.New(state)

	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			assert.Equal(t, 0, field.Distance(x, y))
			assert.Equal(t, 0, field.Aggregate(x, y))
		}
	}
}

func TestNew_SingleHole(t *testing.T) {
	state := testutil.State(t, 1,
		"P1 P1 P1 P1 P1",
		"P1 P1 P1 P1 P1",
		"P1 P1 U0 P1 P1",
		"P1 P1 P1 P1 P1",
		"P1 P1 P1 P1 P1",
	)
	field := distance.New(state)

	assert.Equal(t, 0, field.Distance(2, 2))
	assert.Equal(t, 1, field.Distance(2, 3))
	assert.Equal(t, 1, field.Distance(1, 2))
	assert.Equal(t, 2, field.Distance(1, 1))
	// (0,0) is two steps from (2,2) in each axis, wrapping doesn't help on 5 wide
	assert.Equal(t, 4, field.Distance(0, 0))
	assert.Equal(t, 4, field.Max())
}

func TestNew_MatchesBruteForce(t *testing.T) {
	rnd := random.NewSeeded(20240101)

	for trial := 0; trial < 40; trial++ {
		state := randomState(t, rnd, 5, 5)
		field := distance.New(state)

		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				want := bruteForceDistance(state, x, y)
				require.Equal(t, want, field.Distance(x, y), "trial %d cell (%d,%d)", trial, x, y)
			}
		}
	}
}

func TestDistance_ToroidalSymmetry(t *testing.T) {
	rnd := random.NewSeeded(7)
	state := randomState(t, rnd, 6, 4)
	field := distance.New(state)

	for x := 0; x < 6; x++ {
		for y := 0; y < 4; y++ {
			for _, k := range []int{-3, -1, 1, 2} {
				for _, m := range []int{-2, 0, 5} {
					assert.Equal(t, field.Distance(x, y), field.Distance(x+k*6, y+m*4))
					assert.Equal(t, field.Aggregate(x, y), field.Aggregate(x+k*6, y+m*4))
				}
			}
		}
	}
}

func TestAggregate_IsWindowSum(t *testing.T) {
	rnd := random.NewSeeded(99)
	state := randomState(t, rnd, 7, 5)
	field := distance.New(state)

	for x := 0; x < 7; x++ {
		for y := 0; y < 5; y++ {
			sum := 0
			for a := -2; a <= 2; a++ {
				for b := -2; b <= 2; b++ {
					sum += field.Distance(x+a, y+b)
				}
			}
			assert.Equal(t, sum, field.Aggregate(x, y))
		}
	}
}

func TestAggregate_WindowLargerThanBoard(t *testing.T) {
	state := testutil.State(t, 1,
		"P1 P1",
		"P1 U0",
	)
	field := distance.New(state)

	// Around (0,0) the 5x5 window hits column 0 three times and column 1
	// twice, same for rows: (0,0)=1 x9, (0,1)=2 x6, (1,1)=1 x4, hole x6.
	assert.Equal(t, 1*9+2*6+1*4, field.Aggregate(0, 0))
}

func TestNewFromTargets(t *testing.T) {
	field := distance.NewFromTargets(6, 1, func(x, y int) bool { return x == 0 })

	assert.Equal(t, []int{0, 1, 2, 3, 2, 1}, []int{
		field.Distance(0, 0), field.Distance(1, 0), field.Distance(2, 0),
		field.Distance(3, 0), field.Distance(4, 0), field.Distance(5, 0),
	})
}

func TestNewFromTargets_NoTargets(t *testing.T) {
	field := distance.NewFromTargets(3, 3, func(x, y int) bool { return false })
	assert.Equal(t, 0, field.Max())
}

func randomState(t *testing.T, rnd random.Random, width, height int) *model.GameState {
	t.Helper()

	board, err := model.NewUniformBoard(width, height, 1)
	require.NoError(t, err)

	cells := make([][]model.Cell, width)
	for x := range cells {
		cells[x] = make([]model.Cell, height)
		for y := range cells[x] {
			switch r := rnd.Intn(10); {
			case r < 7:
				cells[x][y] = model.PlayerCell(rnd.Intn(256))
			case r < 9:
				cells[x][y] = model.UnownedCell(rnd.Intn(256))
			default:
				cells[x][y] = model.EnemyCell(2, rnd.Intn(256))
			}
		}
	}
	// Keep at least one non-player cell so the field is non-trivial
	cells[rnd.Intn(width)][rnd.Intn(height)] = model.UnownedCell(0)

	state, err := model.NewGameState(board, cells)
	require.NoError(t, err)
	return state
}

// bruteForceDistance runs a single-source BFS from (x, y) until it reaches a
// non-player cell.
func bruteForceDistance(state *model.GameState, x, y int) int {
	w, h := state.Width(), state.Height()
	seen := map[model.Position]bool{{X: x, Y: y}: true}
	queue := []model.Position{{X: x, Y: y}}
	depth := map[model.Position]int{{X: x, Y: y}: 0}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if !state.Cell(p.X, p.Y).IsPlayer() {
			return depth[p]
		}
		for _, d := range model.Cardinals {
			n := p.Step(d).Wrapped(w, h)
			if seen[n] {
				continue
			}
			seen[n] = true
			depth[n] = depth[p] + 1
			queue = append(queue, n)
		}
	}
	return 0
}
