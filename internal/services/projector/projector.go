// Package projector tracks, within one turn, how much friendly strength the
// orders decided so far will put on each cell.
package projector

import (
	"fmt"

	"github.com/mcoot/halitebot/internal/model"
)

const (
	// MaxCellStrength is the game's per-cell strength cap; strength merged
	// past it is lost.
	MaxCellStrength = model.MaxStrength
	// EstimationCeiling is the looser cap used when deciding whether one more
	// cell may pile onto a destination.
	EstimationCeiling = 400
)

// Projector accumulates projected post-move strength per destination.
// A cell no order has targeted yet has no value, which is distinct from 0.
type Projector struct {
	width  int
	height int
	values [][]int
	set    [][]bool
}

// New creates an empty projector for a width x height board
func New(width, height int) *Projector {
	p := &Projector{
		width:  width,
		height: height,
		values: make([][]int, width),
		set:    make([][]bool, width),
	}
	for x := range p.values {
		p.values[x] = make([]int, height)
		p.set[x] = make([]bool, height)
	}
	return p
}

// Project returns the strength projected onto (x, y) and whether any order
// has targeted it yet this turn
func (p *Projector) Project(x, y int) (int, bool) {
	x, y = model.Wrap(x, p.width), model.Wrap(y, p.height)
	return p.values[x][y], p.set[x][y]
}

// ProjectOr returns the projected strength at (x, y) or def when nothing has
// been projected there
func (p *Projector) ProjectOr(x, y, def int) int {
	if v, ok := p.Project(x, y); ok {
		return v
	}
	return def
}

// Apply records order against the accumulator. The source cell's strength
// lands on the destination; a Stand order also adds the source production.
func (p *Projector) Apply(state *model.GameState, order model.Order) error {
	src := state.Cell(order.X, order.Y)
	if !src.IsPlayer() {
		return fmt.Errorf("%w: projecting order from (%d,%d)", model.ErrNotPlayerCell, order.X, order.Y)
	}

	dst := order.Destination().Wrapped(p.width, p.height)
	amount := src.Strength
	if order.Direction == model.Stand {
		amount += state.Production(order.X, order.Y)
	}

	p.values[dst.X][dst.Y] += amount
	p.set[dst.X][dst.Y] = true
	return nil
}

// Reset clears every projection, ready for the next turn
func (p *Projector) Reset() {
	for x := range p.values {
		clear(p.values[x])
		clear(p.set[x])
	}
}

// Overflow returns the total projected strength above MaxCellStrength,
// summed over every cell. It is the amount the decided orders will waste.
func (p *Projector) Overflow() int {
	total := 0
	for x := range p.values {
		for y, v := range p.values[x] {
			if p.set[x][y] && v > MaxCellStrength {
				total += v - MaxCellStrength
			}
		}
	}
	return total
}
