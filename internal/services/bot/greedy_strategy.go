package bot

import "github.com/mcoot/halitebot/internal/model"

// GreedyStrategy is the simpler expansion rule: attack any weaker non-owned
// neighbor, otherwise push grown interior cells toward the nearest border.
// It ignores the projector, so merges can overflow.
type GreedyStrategy struct{}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy() *GreedyStrategy {
	return &GreedyStrategy{}
}

// Decide returns the direction for the cell at (x, y)
func (s *GreedyStrategy) Decide(turn *Turn, x, y int) (model.Direction, error) {
	cell, err := requirePlayerCell(turn.State, x, y)
	if err != nil {
		return model.Stand, err
	}

	if cell.Strength == 0 {
		return model.Stand, nil
	}

	for _, d := range model.Cardinals {
		n := turn.State.Neighbor(x, y, d)
		if !n.IsPlayer() && n.Strength < cell.Strength {
			return d, nil
		}
	}

	if !allNeighborsPlayer(turn.State, x, y) {
		return model.Stand, nil
	}
	if cell.Strength < InteriorStrengthFactor*turn.State.Production(x, y) {
		return model.Stand, nil
	}

	dirs := minDistanceDirections(turn, x, y)
	return dirs[turn.Random.Intn(len(dirs))], nil
}
