package model

import "fmt"

// MaxStrength is the strength ceiling of a single cell
const MaxStrength = 255

// Owner classifies who holds a cell from the bot's point of view
type Owner int

// The zero Owner is invalid, so an unset Cell never reads as player-owned
const (
	OwnerPlayer Owner = iota + 1
	OwnerUnowned
	// OwnerEnemy covers every opponent; Cell.EnemyID tells them apart
	OwnerEnemy
)

// String returns the owner name
func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerUnowned:
		return "unowned"
	case OwnerEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("owner(%d)", int(o))
	}
}

// Cell is one square of a turn snapshot
type Cell struct {
	Owner    Owner
	Strength int
	// EnemyID is only meaningful when Owner is OwnerEnemy
	EnemyID int
}

// NewCell validates and builds a cell. An enemy cell must carry a positive
// id and no other owner may carry one.
func NewCell(owner Owner, strength int, enemyID *int) (Cell, error) {
	c := Cell{Owner: owner, Strength: strength}
	switch {
	case owner == OwnerEnemy && enemyID == nil:
		return Cell{}, fmt.Errorf("%w: enemy cell without id", ErrInvalidCell)
	case owner != OwnerEnemy && enemyID != nil:
		return Cell{}, fmt.Errorf("%w: %s cell with enemy id %d", ErrInvalidCell, owner, *enemyID)
	case enemyID != nil:
		c.EnemyID = *enemyID
	}
	if err := c.Validate(); err != nil {
		return Cell{}, err
	}
	return c, nil
}

// Validate checks the owner, strength range and enemy id of a cell built
// as a literal
func (c Cell) Validate() error {
	if c.Strength < 0 || c.Strength > MaxStrength {
		return fmt.Errorf("%w: strength %d out of range", ErrInvalidCell, c.Strength)
	}
	switch c.Owner {
	case OwnerPlayer, OwnerUnowned:
		if c.EnemyID != 0 {
			return fmt.Errorf("%w: %s cell with enemy id %d", ErrInvalidCell, c.Owner, c.EnemyID)
		}
	case OwnerEnemy:
		if c.EnemyID < 1 {
			return fmt.Errorf("%w: enemy id %d", ErrInvalidCell, c.EnemyID)
		}
	default:
		return fmt.Errorf("%w: unknown owner %d", ErrInvalidCell, int(c.Owner))
	}
	return nil
}

// PlayerCell builds a player-owned cell, panicking on an out-of-range strength.
// Intended for fixtures and literals.
func PlayerCell(strength int) Cell {
	return mustCell(NewCell(OwnerPlayer, strength, nil))
}

// UnownedCell builds an unowned cell, panicking on an out-of-range strength
func UnownedCell(strength int) Cell {
	return mustCell(NewCell(OwnerUnowned, strength, nil))
}

// EnemyCell builds an enemy cell, panicking on an out-of-range strength
func EnemyCell(id, strength int) Cell {
	return mustCell(NewCell(OwnerEnemy, strength, &id))
}

func mustCell(c Cell, err error) Cell {
	if err != nil {
		panic(err)
	}
	return c
}

// IsPlayer returns true if the bot owns the cell
func (c Cell) IsPlayer() bool {
	return c.Owner == OwnerPlayer
}

// IsUnowned returns true if nobody owns the cell
func (c Cell) IsUnowned() bool {
	return c.Owner == OwnerUnowned
}

// IsEnemy returns true if an opponent owns the cell
func (c Cell) IsEnemy() bool {
	return c.Owner == OwnerEnemy
}
