package override

import (
	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
)

// NewGoodGame builds the goodgame chain from the opening state: a protected
// region, then the glyph pattern placed clear of it. Either may be absent,
// leaving an empty chain.
func NewGoodGame(initial *model.GameState, rnd random.Random) *Chain {
	region, ok := NewProtectedRegion(initial)
	if !ok {
		return NewChain(nil)
	}

	chain := NewChain(nil, region)
	if pattern, ok := NewPattern(initial, region.Center(), rnd); ok {
		chain.aux = pattern.Field()
		chain.Append(pattern)
	}
	return chain
}

// ForStrategy returns the chain a named strategy runs with, plus any operator
// rules appended after it. It returns nil when there is nothing to apply.
func ForStrategy(name string, initial *model.GameState, rnd random.Random, rules []*Rule) *Chain {
	var chain *Chain
	if name == model.StrategyGoodGame {
		chain = NewGoodGame(initial, rnd)
	}
	if len(rules) == 0 {
		if chain != nil && chain.Len() == 0 {
			return nil
		}
		return chain
	}
	if chain == nil {
		chain = NewChain(nil)
	}
	for _, r := range rules {
		chain.Append(r)
	}
	return chain
}
