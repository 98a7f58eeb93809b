package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/services/lock"
)

// Event names sent to board watchers
const (
	EventPlayersChanged = "players-changed"
	EventGamesChanged   = "games-changed"
	EventCellChanged    = "cell-changed"
	EventLockChanged    = "lock-changed"
)

// Broadcaster pushes board changes to all connected SSE clients.
// Payloads carry just enough for a client to patch its view; clients
// that want the full picture refetch the board.
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastPlayerAdded announces a new player
func (b *Broadcaster) BroadcastPlayerAdded(player *model.Player) {
	b.broadcastJSON(EventPlayersChanged, map[string]any{
		"action": "added",
		"player": player,
	})
}

// BroadcastPlayerRemoved announces a player removal
func (b *Broadcaster) BroadcastPlayerRemoved(id model.PlayerID) {
	b.broadcastJSON(EventPlayersChanged, map[string]any{
		"action":    "removed",
		"player_id": id,
	})
}

// BroadcastGameAdded announces a new game
func (b *Broadcaster) BroadcastGameAdded(game *model.Game) {
	b.broadcastJSON(EventGamesChanged, map[string]any{
		"action": "added",
		"game":   game,
	})
}

// BroadcastGameRemoved announces a game removal
func (b *Broadcaster) BroadcastGameRemoved(id model.GameID) {
	b.broadcastJSON(EventGamesChanged, map[string]any{
		"action":  "removed",
		"game_id": id,
	})
}

// BroadcastCellChanged announces a cycled status cell
func (b *Broadcaster) BroadcastCellChanged(cell *model.StatusCell) {
	b.broadcastJSON(EventCellChanged, map[string]any{
		"cell": cell,
	})
}

// BroadcastLockChanged announces a lock state change
func (b *Broadcaster) BroadcastLockChanged(state lock.State) {
	b.broadcastJSON(EventLockChanged, state)
}

func (b *Broadcaster) broadcastJSON(eventName string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("event", eventName),
			slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent(eventName, string(data))
}
