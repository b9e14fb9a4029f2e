package storage

import (
	"context"

	"github.com/mcoot/halitebot/internal/model"
)

// Storage persists the game sessions served over the HTTP API
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	// ListGames returns the ids of every live game in no particular order
	ListGames(ctx context.Context) ([]model.GameID, error)
}
