package response

import (
	"time"

	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/services/leaderboard"
	"github.com/mossii/statusboard/internal/services/lock"
)

// Player represents a player in API responses
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:   string(p.ID),
		Name: p.Name,
	}
}

// Game represents a game in API responses
type Game struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:        string(g.ID),
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
	}
}

// StatusCell represents one cell of the board
type StatusCell struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	GameID   string `json:"game_id"`
	Status   string `json:"status"`
}

// StatusCellFromModel converts a model.StatusCell
func StatusCellFromModel(c *model.StatusCell) StatusCell {
	return StatusCell{
		ID:       string(c.ID),
		PlayerID: string(c.PlayerID),
		GameID:   string(c.GameID),
		Status:   string(c.Status),
	}
}

// LockState represents the board lock state
type LockState struct {
	Locked bool `json:"locked"`
}

// LockStateFromService converts a lock.State
func LockStateFromService(s lock.State) LockState {
	return LockState{Locked: s.Locked}
}

// Board is the full board snapshot: every player, every game, every
// non-white cell, and the current lock state
type Board struct {
	Players []Player     `json:"players"`
	Games   []Game       `json:"games"`
	Cells   []StatusCell `json:"cells"`
	Lock    LockState    `json:"lock"`
}

// BoardFromSnapshot builds a Board response from a board snapshot
func BoardFromSnapshot(players []*model.Player, games []*model.Game, cells []*model.StatusCell, lockState lock.State) Board {
	respPlayers := make([]Player, len(players))
	for i, p := range players {
		respPlayers[i] = PlayerFromModel(p)
	}
	respGames := make([]Game, len(games))
	for i, g := range games {
		respGames[i] = GameFromModel(g)
	}
	respCells := make([]StatusCell, len(cells))
	for i, c := range cells {
		respCells[i] = StatusCellFromModel(c)
	}
	return Board{
		Players: respPlayers,
		Games:   respGames,
		Cells:   respCells,
		Lock:    LockStateFromService(lockState),
	}
}

// LeaderboardEntry is one leaderboard row
type LeaderboardEntry struct {
	Player Player  `json:"player"`
	Score  float64 `json:"score"`
}

// LeaderboardFromEntries converts leaderboard entries
func LeaderboardFromEntries(entries []leaderboard.Entry) []LeaderboardEntry {
	resp := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		resp[i] = LeaderboardEntry{
			Player: PlayerFromModel(e.Player),
			Score:  e.Score,
		}
	}
	return resp
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
