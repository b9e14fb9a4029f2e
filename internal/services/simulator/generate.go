package simulator

import (
	"fmt"

	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
)

// Map generation parameters
const (
	// MaxGeneratedProduction bounds the production of generated cells; some
	// cells get zero
	MaxGeneratedProduction = 5
	// MaxNeutralStrength bounds the strength of generated neutral cells
	MaxNeutralStrength = 120
	// StartStrength is each player's single starting piece
	StartStrength = model.MaxStrength
)

// Generate builds a random width x height world with players starting on a
// diagonal, spaced evenly
func Generate(width, height, players int, rnd random.Random) (*World, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", model.ErrInvalidDimensions, width, height)
	}
	if players < 1 || players > width || players > height {
		return nil, fmt.Errorf("%w: %d players on %dx%d", ErrInvalidWorld, players, width, height)
	}

	production := make([][]int, width)
	owners := make([][]int, width)
	strengths := make([][]int, width)
	for x := 0; x < width; x++ {
		production[x] = make([]int, height)
		owners[x] = make([]int, height)
		strengths[x] = make([]int, height)
		for y := 0; y < height; y++ {
			production[x][y] = rnd.Intn(MaxGeneratedProduction + 1)
			strengths[x][y] = rnd.Intn(MaxNeutralStrength + 1)
		}
	}

	for i := 0; i < players; i++ {
		x, y := StartPosition(i, players, width, height)
		owners[x][y] = i + 1
		strengths[x][y] = StartStrength
		if production[x][y] == 0 {
			production[x][y] = 1
		}
	}

	board, err := model.NewBoard(production)
	if err != nil {
		return nil, err
	}
	return NewWorld(board, owners, strengths)
}

// StartPosition returns where player index i of n starts
func StartPosition(i, n, width, height int) (int, int) {
	return (2*i + 1) * width / (2 * n), (2*i + 1) * height / (2 * n)
}
