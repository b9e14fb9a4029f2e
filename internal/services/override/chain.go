// Package override post-processes the orders a strategy proposes. Filters
// run in a fixed sequence and the first one with an opinion replaces the
// proposed direction.
package override

import (
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/distance"
)

// Filter may replace the direction of a proposed order
type Filter interface {
	// Override returns the replacement direction and true, or false to pass
	// the order on to the next filter. aux is the chain's auxiliary distance
	// field and may be nil.
	Override(proposed model.Order, state *model.GameState, aux *distance.Field) (model.Direction, bool)
}

// FilterFunc adapts a plain function to the Filter interface
type FilterFunc func(proposed model.Order, state *model.GameState, aux *distance.Field) (model.Direction, bool)

// Override calls f
func (f FilterFunc) Override(proposed model.Order, state *model.GameState, aux *distance.Field) (model.Direction, bool) {
	return f(proposed, state, aux)
}

// Chain is an ordered list of filters sharing one auxiliary field
type Chain struct {
	filters []Filter
	aux     *distance.Field
}

// NewChain creates a chain over filters, evaluated in the order given
func NewChain(aux *distance.Field, filters ...Filter) *Chain {
	return &Chain{
		filters: filters,
		aux:     aux,
	}
}

// Append adds filters to the end of the chain
func (c *Chain) Append(filters ...Filter) {
	c.filters = append(c.filters, filters...)
}

// Len returns the number of filters
func (c *Chain) Len() int {
	return len(c.filters)
}

// Aux returns the auxiliary field handed to every filter
func (c *Chain) Aux() *distance.Field {
	return c.aux
}

// Apply runs proposed through the filters and returns the final order. A nil
// chain keeps every order.
func (c *Chain) Apply(proposed model.Order, state *model.GameState) model.Order {
	if c == nil {
		return proposed
	}
	for _, f := range c.filters {
		if d, ok := f.Override(proposed, state, c.aux); ok {
			proposed.Direction = d
			return proposed
		}
	}
	return proposed
}
