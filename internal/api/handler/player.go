package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mossii/statusboard/internal/api/request"
	"github.com/mossii/statusboard/internal/api/response"
	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/services/board"
	"github.com/mossii/statusboard/internal/sse"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	boardService *board.Service
	broadcaster  *sse.Broadcaster
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(boardService *board.Service, broadcaster *sse.Broadcaster) *PlayerHandler {
	return &PlayerHandler{
		boardService: boardService,
		broadcaster:  broadcaster,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players := h.boardService.Players()
	resp := make([]response.Player, len(players))
	for i, p := range players {
		resp[i] = response.PlayerFromModel(p)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Add handles POST /api/v1/players
func (h *PlayerHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid JSON body"))
		return
	}

	player, err := h.boardService.AddPlayer(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastPlayerAdded(player)
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Remove handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.boardService.RemovePlayer(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastPlayerRemoved(id)
	}

	response.NoContent(w)
}
