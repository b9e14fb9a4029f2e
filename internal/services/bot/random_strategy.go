package bot

import "github.com/mcoot/halitebot/internal/model"

// randomChoices is Stand followed by the cardinals; Intn indexes into it
var randomChoices = [5]model.Direction{model.Stand, model.Left, model.Right, model.Up, model.Down}

// RandomStrategy moves every cell in a uniformly random direction.
// Used as a baseline opponent in simulations.
type RandomStrategy struct{}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy() *RandomStrategy {
	return &RandomStrategy{}
}

// Decide picks a random direction for any player cell
func (s *RandomStrategy) Decide(turn *Turn, x, y int) (model.Direction, error) {
	if _, err := requirePlayerCell(turn.State, x, y); err != nil {
		return model.Stand, err
	}
	return randomChoices[turn.Random.Intn(len(randomChoices))], nil
}
