package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mossii/statusboard/internal/api/request"
	"github.com/mossii/statusboard/internal/api/response"
	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/services/board"
	"github.com/mossii/statusboard/internal/services/leaderboard"
	"github.com/mossii/statusboard/internal/services/lock"
	"github.com/mossii/statusboard/internal/sse"
)

// BoardHandler handles board snapshot, cell and leaderboard endpoints
type BoardHandler struct {
	boardService       *board.Service
	leaderboardService *leaderboard.Service
	lockService        *lock.Service
	broadcaster        *sse.Broadcaster
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService *board.Service, leaderboardService *leaderboard.Service, lockService *lock.Service, broadcaster *sse.Broadcaster) *BoardHandler {
	return &BoardHandler{
		boardService:       boardService,
		leaderboardService: leaderboardService,
		lockService:        lockService,
		broadcaster:        broadcaster,
	}
}

// Get handles GET /api/v1/board
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	players, games, cells := h.boardService.Snapshot()
	response.JSON(w, http.StatusOK, response.BoardFromSnapshot(players, games, cells, h.lockService.State()))
}

// CycleCell handles POST /api/v1/board/cells/cycle
func (h *BoardHandler) CycleCell(w http.ResponseWriter, r *http.Request) {
	var req request.CycleCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid JSON body"))
		return
	}
	if req.PlayerID == "" || req.GameID == "" {
		WriteError(w, NewInvalidRequestError("player_id and game_id are required"))
		return
	}

	cell, err := h.boardService.CycleStatus(r.Context(), model.PlayerID(req.PlayerID), model.GameID(req.GameID))
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastCellChanged(cell)
	}

	response.JSON(w, http.StatusOK, response.StatusCellFromModel(cell))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *BoardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries := h.leaderboardService.Standings()
	response.JSON(w, http.StatusOK, response.LeaderboardFromEntries(entries))
}
