package redis

import (
	"fmt"

	"github.com/mossii/statusboard/internal/model"
)

// Key prefix for all board data
const keyPrefix = "sboard"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// cellKey returns the Redis key for a StatusCell.
// The key embeds the (player, game) pair, which is what makes SET an upsert.
func cellKey(playerID model.PlayerID, gameID model.GameID) string {
	return fmt.Sprintf("%s:cell:%s:%s", keyPrefix, playerID, gameID)
}

// playerIndexKey returns the Redis key for the SET of player keys
func playerIndexKey() string {
	return keyPrefix + ":idx:players"
}

// gameIndexKey returns the Redis key for the SET of game keys
func gameIndexKey() string {
	return keyPrefix + ":idx:games"
}

// cellIndexKey returns the Redis key for the SET of cell keys
func cellIndexKey() string {
	return keyPrefix + ":idx:cells"
}
