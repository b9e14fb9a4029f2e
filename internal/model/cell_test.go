package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/halitebot/internal/model"
)

func TestNewCell_Valid(t *testing.T) {
	c, err := model.NewCell(model.OwnerPlayer, 10, nil)
	require.NoError(t, err)
	assert.True(t, c.IsPlayer())
	assert.Equal(t, 10, c.Strength)

	id := 3
	c, err = model.NewCell(model.OwnerEnemy, 255, &id)
	require.NoError(t, err)
	assert.True(t, c.IsEnemy())
	assert.Equal(t, 3, c.EnemyID)
}

func TestNewCell_EnemyWithoutID(t *testing.T) {
	_, err := model.NewCell(model.OwnerEnemy, 10, nil)
	assert.ErrorIs(t, err, model.ErrInvalidCell)
}

func TestNewCell_NonEnemyWithID(t *testing.T) {
	id := 2
	_, err := model.NewCell(model.OwnerUnowned, 10, &id)
	assert.ErrorIs(t, err, model.ErrInvalidCell)

	_, err = model.NewCell(model.OwnerPlayer, 10, &id)
	assert.ErrorIs(t, err, model.ErrInvalidCell)
}

func TestNewCell_StrengthOutOfRange(t *testing.T) {
	_, err := model.NewCell(model.OwnerUnowned, 256, nil)
	assert.ErrorIs(t, err, model.ErrInvalidCell)

	_, err = model.NewCell(model.OwnerUnowned, -1, nil)
	assert.ErrorIs(t, err, model.ErrInvalidCell)
}

func TestCellFixturesPanicOnBadStrength(t *testing.T) {
	assert.Panics(t, func() { model.PlayerCell(300) })
}

func TestCell_ZeroValueIsInvalid(t *testing.T) {
	var c model.Cell
	assert.False(t, c.IsPlayer())
	assert.ErrorIs(t, c.Validate(), model.ErrInvalidCell)
}

func TestNewCell_EnemyIDMustBePositive(t *testing.T) {
	id := 0
	_, err := model.NewCell(model.OwnerEnemy, 10, &id)
	assert.ErrorIs(t, err, model.ErrInvalidCell)

	assert.NoError(t, model.EnemyCell(1, 0).Validate())
}
