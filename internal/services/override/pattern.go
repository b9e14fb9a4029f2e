package override

import (
	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/distance"
)

const (
	// MostlyCapturedThreshold: the pattern only steers once fewer than this
	// many unowned cells remain
	MostlyCapturedThreshold = 10
	// GlyphWidth and GlyphHeight are the size of the rendered pattern
	GlyphWidth  = 24
	GlyphHeight = 7

	// originMin keeps the glyph off the first two rows and columns
	originMin = 2
	// scoreMargin widens the scoring window around a candidate origin
	scoreMargin = 5
)

// glyph is drawn top-down; '#' marks a stroke cell the player should leave
// unowned.
var glyph = [GlyphHeight]string{
	"##########    ##########",
	"#             #         ",
	"#             #         ",
	"#    #####    #    #####",
	"#        #    #        #",
	"#        #    #        #",
	"##########    ##########",
}

// isStroke reports whether glyph offset (dx, dy), y up, is a stroke cell
func isStroke(dx, dy int) bool {
	if dx < 0 || dx >= GlyphWidth || dy < 0 || dy >= GlyphHeight {
		return false
	}
	return glyph[GlyphHeight-1-dy][dx] == '#'
}

// MostlyCaptured reports whether fewer than MostlyCapturedThreshold unowned
// cells remain
func MostlyCaptured(state *model.GameState) bool {
	return state.Count(model.OwnerUnowned) < MostlyCapturedThreshold
}

// Pattern steers captured territory so the player's cells spell out the
// glyph once the board is mostly captured. Cells inside the glyph walk
// toward its strokes, the first ring around it feeds outward and the
// second ring holds still.
type Pattern struct {
	origin model.Position
	width  int
	height int
	field  *distance.Field
	random random.Random
}

// NewPattern places the glyph at the origin with the most player cells in
// and around it, keeping clear of the protected cell. It reports false when
// the board has no room for the glyph.
func NewPattern(initial *model.GameState, protected model.Position, rnd random.Random) (*Pattern, bool) {
	width, height := initial.Width(), initial.Height()

	best, bestScore := model.Position{}, -1
	for x := originMin; x < width; x++ {
		for y := originMin; y < height; y++ {
			if x+GlyphWidth > width || y+GlyphHeight > height {
				continue
			}
			if !clearOf(x, y, protected) {
				continue
			}
			score := countPlayer(initial, x, y, x+GlyphWidth, y+GlyphHeight) +
				countPlayer(initial, x-scoreMargin, y-scoreMargin, x+GlyphWidth+scoreMargin, y+GlyphHeight+scoreMargin)
			if score > bestScore {
				best, bestScore = model.Position{X: x, Y: y}, score
			}
		}
	}
	if bestScore < 0 {
		return nil, false
	}

	p := &Pattern{
		origin: best,
		width:  width,
		height: height,
		random: rnd,
	}
	p.field = distance.NewFromTargets(width, height, func(x, y int) bool {
		return isStroke(x-p.origin.X, y-p.origin.Y)
	})
	return p, true
}

// clearOf reports whether a glyph at (x, y) keeps away from the protected cell
func clearOf(x, y int, protected model.Position) bool {
	return x >= protected.X+2 || x+GlyphWidth-1 <= protected.X-2 ||
		y >= protected.Y+2 || y+GlyphHeight-1 <= protected.Y-2
}

// countPlayer counts player cells in [x0, x1) x [y0, y1), wrapping
func countPlayer(state *model.GameState, x0, y0, x1, y1 int) int {
	n := 0
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			if state.Cell(x, y).IsPlayer() {
				n++
			}
		}
	}
	return n
}

// Origin returns the bottom-left cell of the glyph
func (p *Pattern) Origin() model.Position {
	return p.origin
}

// Field returns the distance from every cell to the nearest stroke cell
func (p *Pattern) Field() *distance.Field {
	return p.field
}

func (p *Pattern) inGlyph(x, y int) bool {
	return p.origin.X <= x && x < p.origin.X+GlyphWidth &&
		p.origin.Y <= y && y < p.origin.Y+GlyphHeight
}

// Override applies only while the board is mostly captured. aux, when
// given, replaces the pattern's own stroke field.
func (p *Pattern) Override(proposed model.Order, state *model.GameState, aux *distance.Field) (model.Direction, bool) {
	if !MostlyCaptured(state) {
		return model.Stand, false
	}
	if aux == nil {
		aux = p.field
	}

	x, y := proposed.X, proposed.Y
	ox, oy := p.origin.X, p.origin.Y

	if p.inGlyph(x, y) {
		if aux.Distance(x, y) == 0 {
			return model.Stand, true
		}
		best := -1
		var dirs []model.Direction
		for _, d := range model.Cardinals {
			dx, dy := d.Offset()
			dist := aux.Distance(x+dx, y+dy)
			switch {
			case best < 0 || dist < best:
				best = dist
				dirs = append(dirs[:0], d)
			case dist == best:
				dirs = append(dirs, d)
			}
		}
		return dirs[p.random.Intn(len(dirs))], true
	}

	spanY := oy-1 <= y && y < oy+GlyphHeight+1
	spanX := ox-1 <= x && x < ox+GlyphWidth+1

	switch {
	case x == ox-1 && spanY:
		return model.Left, true
	case x == ox+GlyphWidth && spanY:
		return model.Right, true
	case y == oy-1 && spanX:
		return model.Down, true
	case y == oy+GlyphHeight && spanX:
		return model.Up, true
	}

	switch {
	case x == ox-2 && spanY,
		x == ox+GlyphWidth+1 && spanY,
		y == oy-2 && spanX,
		y == oy+GlyphHeight+1 && spanX:
		return model.Stand, true
	}

	return model.Stand, false
}
