package override

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/distance"
)

// ErrInvalidRule is returned when a rule cannot be parsed or compiled
var ErrInvalidRule = errors.New("invalid override rule")

// RuleEnv is what a rule condition can see about the proposed order
type RuleEnv struct {
	X         int
	Y         int
	Direction string

	Strength   int
	Production int

	DestX        int
	DestY        int
	DestOwner    string
	DestStrength int

	Width        int
	Height       int
	PlayerCells  int
	UnownedCells int
	EnemyCells   int

	// AuxDistance is the chain's auxiliary distance at the source, or 0
	AuxDistance int
}

// Moving reports whether the proposed order leaves the cell
func (e RuleEnv) Moving() bool {
	return e.Direction != model.Stand.String()
}

// Captured returns the fraction of the board the player owns
func (e RuleEnv) Captured() float64 {
	total := e.Width * e.Height
	if total == 0 {
		return 0
	}
	return float64(e.PlayerCells) / float64(total)
}

// Rule forces Direction whenever its condition holds
type Rule struct {
	Name         string
	Direction    model.Direction
	ConditionSrc string
	program      *vm.Program
}

// NewRule compiles condition against RuleEnv
func NewRule(name string, direction model.Direction, condition string) (*Rule, error) {
	prog, err := expr.Compile(condition, expr.Env(RuleEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: compile rule %q: %v", ErrInvalidRule, name, err)
	}
	return &Rule{
		Name:         name,
		Direction:    direction,
		ConditionSrc: condition,
		program:      prog,
	}, nil
}

// ParseRule parses "direction: condition", e.g.
// "stand: DestOwner == \"enemy\" && Strength < DestStrength"
func ParseRule(spec string) (*Rule, error) {
	name, condition, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q has no direction prefix", ErrInvalidRule, spec)
	}
	name = strings.TrimSpace(strings.ToLower(name))
	direction, ok := model.ParseDirection(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidRule, name)
	}
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return nil, fmt.Errorf("%w: empty condition", ErrInvalidRule)
	}
	return NewRule(spec, direction, condition)
}

// ParseRules parses each spec in order
func ParseRules(specs []string) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(specs))
	for _, s := range specs {
		r, err := ParseRule(s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// NewRuleEnv describes proposed for rule evaluation
func NewRuleEnv(proposed model.Order, state *model.GameState, aux *distance.Field) RuleEnv {
	src := state.Cell(proposed.X, proposed.Y)
	dstPos := proposed.Destination().Wrapped(state.Width(), state.Height())
	dst := state.Cell(dstPos.X, dstPos.Y)

	env := RuleEnv{
		X:            proposed.X,
		Y:            proposed.Y,
		Direction:    proposed.Direction.String(),
		Strength:     src.Strength,
		Production:   state.Production(proposed.X, proposed.Y),
		DestX:        dstPos.X,
		DestY:        dstPos.Y,
		DestOwner:    dst.Owner.String(),
		DestStrength: dst.Strength,
		Width:        state.Width(),
		Height:       state.Height(),
		PlayerCells:  state.Count(model.OwnerPlayer),
		UnownedCells: state.Count(model.OwnerUnowned),
		EnemyCells:   state.Count(model.OwnerEnemy),
	}
	if aux != nil {
		env.AuxDistance = aux.Distance(proposed.X, proposed.Y)
	}
	return env
}

// Override forces the rule's direction when the condition is true. A
// condition that fails to evaluate passes the order on.
func (r *Rule) Override(proposed model.Order, state *model.GameState, aux *distance.Field) (model.Direction, bool) {
	result, err := vm.Run(r.program, NewRuleEnv(proposed, state, aux))
	if err != nil {
		return model.Stand, false
	}
	match, ok := result.(bool)
	if !ok || !match {
		return model.Stand, false
	}
	return r.Direction, true
}
