package bot

import (
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/projector"
)

// Tuning constants for FrontierStrategy
const (
	// EnemyScanRadius is the half-width of the window that must be free of
	// enemy cells before a cell may hold back to rally
	EnemyScanRadius = 2
	// UnreachableTurns stands in for the turn estimate when production is 0
	UnreachableTurns = 999
	// RallyMinTurns is the estimate at which waiting is judged too slow
	RallyMinTurns = 3
	// RallyStrengthFactor: a cell rallies only with strength >= this many
	// turns of its own production
	RallyStrengthFactor = 4
	// InteriorStrengthFactor: interior cells wait until they hold this many
	// turns of production
	InteriorStrengthFactor = 5
)

// FrontierStrategy expands into neutral territory, rushes enemy borders and
// feeds interior strength outward without overflowing the 255 cap.
type FrontierStrategy struct{}

// NewFrontierStrategy creates a new FrontierStrategy
func NewFrontierStrategy() *FrontierStrategy {
	return &FrontierStrategy{}
}

// Decide evaluates the priority rules for the cell at (x, y); the first rule
// that applies wins
func (s *FrontierStrategy) Decide(turn *Turn, x, y int) (model.Direction, error) {
	cell, err := requirePlayerCell(turn.State, x, y)
	if err != nil {
		return model.Stand, err
	}

	if cell.Strength == 0 {
		return model.Stand, nil
	}

	if d, ok := cheapCapture(turn.State, x, y, cell); ok {
		return d, nil
	}

	if d, ok := s.rally(turn, x, y, cell); ok {
		return d, nil
	}

	if d, ok := engage(turn, x, y); ok {
		return d, nil
	}

	if allNeighborsPlayer(turn.State, x, y) {
		return s.interior(turn, x, y, cell), nil
	}

	return model.Stand, nil
}

// capturable reports whether the neighbor is a neutral cell the given
// strength takes this turn. Two saturated cells still count.
func capturable(strength int, neighbor model.Cell) bool {
	if !neighbor.IsUnowned() || neighbor.Strength == 0 {
		return false
	}
	return neighbor.Strength < strength ||
		strength == model.MaxStrength && neighbor.Strength == model.MaxStrength
}

func cheapCapture(state *model.GameState, x, y int, cell model.Cell) (model.Direction, bool) {
	for _, d := range model.Cardinals {
		if capturable(cell.Strength, state.Neighbor(x, y, d)) {
			return d, true
		}
	}
	return model.Stand, false
}

// rally holds a cell back, or funnels it into a border neighbor, when the
// neutral cell next to it would take several more turns to out-grow. It
// reports false when the rule does not apply and the next rule should run.
func (s *FrontierStrategy) rally(turn *Turn, x, y int, cell model.Cell) (model.Direction, bool) {
	state := turn.State

	required, found := 0, false
	for _, d := range model.Cardinals {
		n := state.Neighbor(x, y, d)
		if n.IsEnemy() {
			return model.Stand, false
		}
		if n.IsUnowned() && n.Strength > 0 && (!found || n.Strength < required) {
			required, found = n.Strength, true
		}
	}
	if !found || (x+y)%2 != 0 || enemyNearby(state, x, y) {
		return model.Stand, false
	}

	production := state.Production(x, y)
	turns := UnreachableTurns
	if production > 0 {
		turns = (required-cell.Strength)/production + 1
	}
	if turns < RallyMinTurns || cell.Strength < RallyStrengthFactor*production {
		return model.Stand, false
	}

	for _, d := range model.Cardinals {
		dx, dy := d.Offset()
		nx, ny := x+dx, y+dy
		if !state.Cell(nx, ny).IsPlayer() || turn.Field.Distance(nx, ny) != 1 {
			continue
		}
		if extra, ok := AdditionalStrengthRequired(state, nx, ny); ok && extra <= cell.Strength {
			return d, true
		}
	}
	return model.Stand, true
}

// enemyNearby scans the (2r+1)x(2r+1) window around (x, y) for enemy cells
func enemyNearby(state *model.GameState, x, y int) bool {
	for a := x - EnemyScanRadius; a <= x+EnemyScanRadius; a++ {
		for b := y - EnemyScanRadius; b <= y+EnemyScanRadius; b++ {
			if state.Cell(a, b).IsEnemy() {
				return true
			}
		}
	}
	return false
}

// engage moves into an adjacent enemy cell or an empty neutral breach,
// preferring the destination deepest in the opponent's direction
func engage(turn *Turn, x, y int) (model.Direction, bool) {
	var dirs []model.Direction
	for _, d := range model.Cardinals {
		n := turn.State.Neighbor(x, y, d)
		if n.IsEnemy() || n.IsUnowned() && n.Strength == 0 {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return model.Stand, false
	}
	return lowestAggregate(turn, x, y, dirs), true
}

// interior routes a fully surrounded cell toward the nearest border once it
// has built up enough strength, skipping destinations that would overflow
func (s *FrontierStrategy) interior(turn *Turn, x, y int, cell model.Cell) model.Direction {
	if cell.Strength < InteriorStrengthFactor*turn.State.Production(x, y) {
		return model.Stand
	}

	fits := func(d model.Direction) bool {
		dx, dy := d.Offset()
		return turn.Projector.ProjectOr(x+dx, y+dy, 0)+cell.Strength <= projector.EstimationCeiling
	}

	var nearest []model.Direction
	for _, d := range minDistanceDirections(turn, x, y) {
		if fits(d) {
			nearest = append(nearest, d)
		}
	}
	if len(nearest) > 0 {
		return lowestAggregate(turn, x, y, nearest)
	}

	var open []model.Direction
	for _, d := range model.Cardinals {
		if fits(d) {
			open = append(open, d)
		}
	}
	if turn.Projector.ProjectOr(x, y, 0)+cell.Strength <= projector.MaxCellStrength {
		return model.Stand
	}
	if len(open) > 0 {
		return open[turn.Random.Intn(len(open))]
	}
	return model.Stand
}

// AdditionalStrengthRequired returns how much more strength the player cell
// at (x, y) needs, beyond its strength plus one turn of production, to take
// its weakest neutral neighbor. It reports false when there is no neutral
// neighbor or the cell already has enough.
func AdditionalStrengthRequired(state *model.GameState, x, y int) (int, bool) {
	cell := state.Cell(x, y)
	if !cell.IsPlayer() {
		return 0, false
	}

	production := state.Production(x, y)
	amount, found := 0, false
	for _, d := range model.Cardinals {
		n := state.Neighbor(x, y, d)
		if !n.IsUnowned() {
			continue
		}
		need := n.Strength - cell.Strength - production
		if !found || need < amount {
			amount, found = need, true
		}
	}
	if !found || amount <= 0 {
		return 0, false
	}
	return amount, true
}
