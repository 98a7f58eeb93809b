package model

import "time"

// PlayerID uniquely identifies a player
type PlayerID string

// GameID uniquely identifies a game
type GameID string

// StatusCellID uniquely identifies a status cell
type StatusCellID string

// Status is the state a single player/game cell can be in
type Status string

// The four cell statuses, in click order
const (
	StatusWhite  Status = "white"
	StatusRed    Status = "red"
	StatusOrange Status = "orange"
	StatusGreen  Status = "green"
)

// statusCycle is the fixed click progression, wrapping after green
var statusCycle = [...]Status{StatusWhite, StatusRed, StatusOrange, StatusGreen}

// Next returns the successor status in the fixed cycle.
// Unknown values are treated as white, so they advance to red.
func (s Status) Next() Status {
	for i, cur := range statusCycle {
		if cur == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return StatusRed
}

// Valid reports whether s is one of the four known statuses
func (s Status) Valid() bool {
	for _, cur := range statusCycle {
		if cur == s {
			return true
		}
	}
	return false
}

// Player represents a tracked participant
type Player struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

// Game represents a tracked game column.
// CreatedAt is the ordering key for game listings.
type Game struct {
	ID        GameID    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusCell associates one player's status for one game.
// At most one cell may exist per (PlayerID, GameID) pair; the storage
// backend enforces this on upsert.
type StatusCell struct {
	ID       StatusCellID `json:"id"`
	PlayerID PlayerID     `json:"player_id"`
	GameID   GameID       `json:"game_id"`
	Status   Status       `json:"status"`
}
