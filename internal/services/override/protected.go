package override

import (
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/distance"
)

const (
	// ProtectedMinCells is the smallest board, in cells, that gets a
	// protected region
	ProtectedMinCells = 400
	// SafetyRadius is the half-width of the window used to score how well
	// guarded a candidate enemy cell is
	SafetyRadius = 2
)

// ProtectedRegion keeps the player out of the 3x3 block around one enemy
// cell picked at game start.
type ProtectedRegion struct {
	center model.Position
	width  int
	height int
}

// NewProtectedRegion picks the protected cell from the opening state: among
// all cells, the one whose 5x5 window holds the most cells of the last enemy
// seen in a column-major scan. It reports false on small boards and when no
// enemy is present.
func NewProtectedRegion(initial *model.GameState) (*ProtectedRegion, bool) {
	width, height := initial.Width(), initial.Height()
	if width*height < ProtectedMinCells {
		return nil, false
	}

	enemyID, found := 0, false
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if c := initial.Cell(x, y); c.IsEnemy() {
				enemyID, found = c.EnemyID, true
			}
		}
	}
	if !found {
		return nil, false
	}

	best, bestScore := model.Position{}, -1
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			score := 0
			for a := x - SafetyRadius; a <= x+SafetyRadius; a++ {
				for b := y - SafetyRadius; b <= y+SafetyRadius; b++ {
					if c := initial.Cell(a, b); c.IsEnemy() && c.EnemyID == enemyID {
						score++
					}
				}
			}
			if score > bestScore {
				best, bestScore = model.Position{X: x, Y: y}, score
			}
		}
	}

	return &ProtectedRegion{center: best, width: width, height: height}, true
}

// Center returns the protected cell
func (p *ProtectedRegion) Center() model.Position {
	return p.center
}

// Contains reports whether (x, y) lies in the 3x3 block around the center
func (p *ProtectedRegion) Contains(x, y int) bool {
	x, y = model.Wrap(x, p.width), model.Wrap(y, p.height)
	for a := p.center.X - 1; a <= p.center.X+1; a++ {
		for b := p.center.Y - 1; b <= p.center.Y+1; b++ {
			if model.Wrap(a, p.width) == x && model.Wrap(b, p.height) == y {
				return true
			}
		}
	}
	return false
}

// Override turns any move into the protected block into Stand
func (p *ProtectedRegion) Override(proposed model.Order, _ *model.GameState, _ *distance.Field) (model.Direction, bool) {
	if proposed.Direction == model.Stand {
		return model.Stand, false
	}
	dst := proposed.Destination()
	if p.Contains(dst.X, dst.Y) {
		return model.Stand, true
	}
	return model.Stand, false
}
