// Package distance computes, for every cell, how far it sits from the
// nearest target cell on the toroidal board. The default target set is every
// cell the player does not own, which makes the field a measure of how deep
// inside its own territory each player cell is.
package distance

import (
	"github.com/mcoot/halitebot/internal/model"
)

// AggregateRadius is the half-width of the window summed by Aggregate.
// A radius of 2 gives a 5x5 window.
const AggregateRadius = 2

// Field is a per-turn distance field. It is immutable once built except for
// the lazily cached aggregate sums.
type Field struct {
	width     int
	height    int
	dist      [][]int
	aggregate [][]int
}

// New builds the distance from every cell to the nearest non-player cell.
// A fully captured board yields an all-zero field.
func New(state *model.GameState) *Field {
	return NewFromTargets(state.Width(), state.Height(), func(x, y int) bool {
		return !state.Cell(x, y).IsPlayer()
	})
}

// NewFromTargets builds the distance from every cell to the nearest cell for
// which isTarget returns true. With no targets at all the field is all zero.
func NewFromTargets(width, height int, isTarget func(x, y int) bool) *Field {
	f := &Field{
		width:  width,
		height: height,
		dist:   make([][]int, width),
	}
	settled := make([][]bool, width)
	for x := range f.dist {
		f.dist[x] = make([]int, height)
		settled[x] = make([]bool, height)
	}

	var frontier []model.Position
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if isTarget(x, y) {
				settled[x][y] = true
				frontier = append(frontier, model.Position{X: x, Y: y})
			}
		}
	}

	// Breadth-first waves: every cell first reached in wave d+1 is adjacent
	// to a cell settled at d, which is the minimum over its settled neighbors.
	for len(frontier) > 0 {
		var next []model.Position
		for _, p := range frontier {
			d := f.dist[p.X][p.Y]
			for _, dir := range model.Cardinals {
				n := p.Step(dir).Wrapped(width, height)
				if settled[n.X][n.Y] {
					continue
				}
				settled[n.X][n.Y] = true
				f.dist[n.X][n.Y] = d + 1
				next = append(next, n)
			}
		}
		frontier = next
	}

	return f
}

// Width returns the field width
func (f *Field) Width() int {
	return f.width
}

// Height returns the field height
func (f *Field) Height() int {
	return f.height
}

// Distance returns the distance at (x, y), wrapping out-of-range coordinates
func (f *Field) Distance(x, y int) int {
	return f.dist[model.Wrap(x, f.width)][model.Wrap(y, f.height)]
}

// Aggregate returns the sum of Distance over the 5x5 window centered on
// (x, y). The window sums are computed on first use and cached.
func (f *Field) Aggregate(x, y int) int {
	if f.aggregate == nil {
		f.computeAggregate()
	}
	return f.aggregate[model.Wrap(x, f.width)][model.Wrap(y, f.height)]
}

func (f *Field) computeAggregate() {
	agg := make([][]int, f.width)
	for x := range agg {
		agg[x] = make([]int, f.height)
		for y := range agg[x] {
			sum := 0
			for a := x - AggregateRadius; a <= x+AggregateRadius; a++ {
				for b := y - AggregateRadius; b <= y+AggregateRadius; b++ {
					sum += f.Distance(a, b)
				}
			}
			agg[x][y] = sum
		}
	}
	f.aggregate = agg
}

// Max returns the largest distance in the field
func (f *Field) Max() int {
	m := 0
	for x := range f.dist {
		for _, d := range f.dist[x] {
			if d > m {
				m = d
			}
		}
	}
	return m
}
