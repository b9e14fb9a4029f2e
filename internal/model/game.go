package model

import "time"

// GameID uniquely identifies a game session served over the HTTP API
type GameID string

// Game is the per-game session the HTTP API keeps between turns.
// It holds only what is fixed for the game's lifetime plus a turn counter.
type Game struct {
	ID         GameID
	PlayerTag  int     // the tag the game server uses for this bot
	Width      int
	Height     int
	Production [][]int // indexed [x][y]
	Strategy   string
	Seed       uint64
	Turn       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Board rebuilds the static board for the session
func (g *Game) Board() (*Board, error) {
	return NewBoard(g.Production)
}
