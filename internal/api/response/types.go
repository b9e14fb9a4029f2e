package response

import (
	"time"

	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/session"
)

// Game represents a game session in API responses
type Game struct {
	ID        string    `json:"game_id"`
	PlayerTag int       `json:"player_tag"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Strategy  string    `json:"strategy"`
	Seed      uint64    `json:"seed"`
	Turn      int       `json:"turn"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:        string(g.ID),
		PlayerTag: g.PlayerTag,
		Width:     g.Width,
		Height:    g.Height,
		Strategy:  g.Strategy,
		Seed:      g.Seed,
		Turn:      g.Turn,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// GameList is the response for listing games
type GameList struct {
	GameIDs []string `json:"game_ids"`
}

// Order is one cell's move
type Order struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
}

// Turn is the response for a played turn
type Turn struct {
	Turn   int     `json:"turn"`
	Orders []Order `json:"orders"`
}

// TurnFromResult converts a session.TurnResult
func TurnFromResult(r *session.TurnResult) Turn {
	orders := make([]Order, len(r.Orders))
	for i, o := range r.Orders {
		orders[i] = Order{X: o.X, Y: o.Y, Direction: o.Direction.String()}
	}
	return Turn{Turn: r.Turn, Orders: orders}
}

// Strategy describes one selectable strategy
type Strategy struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Strategies lists every known strategy
func Strategies() []Strategy {
	names := model.ValidStrategies()
	out := make([]Strategy, len(names))
	for i, n := range names {
		out[i] = Strategy{Name: n, DisplayName: model.StrategyDisplayName(n)}
	}
	return out
}
