package redis

import (
	"fmt"

	"github.com/mcoot/halitebot/internal/model"
)

// Key prefix for all bot session data
const keyPrefix = "halitebot"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of live game ids
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}
