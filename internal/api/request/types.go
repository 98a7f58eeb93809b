package request

// AddPlayerRequest is the request body for adding a player
type AddPlayerRequest struct {
	Name string `json:"name"`
}

// AddGameRequest is the request body for adding a game
type AddGameRequest struct {
	Name string `json:"name"`
}

// CycleCellRequest is the request body for cycling a status cell
type CycleCellRequest struct {
	PlayerID string `json:"player_id"`
	GameID   string `json:"game_id"`
}

// UnlockRequest is the request body for unlocking the board
type UnlockRequest struct {
	Passphrase string `json:"passphrase"`
}
