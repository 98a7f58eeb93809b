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

// GameHandler handles game endpoints
type GameHandler struct {
	boardService *board.Service
	broadcaster  *sse.Broadcaster
}

// NewGameHandler creates a new game handler
func NewGameHandler(boardService *board.Service, broadcaster *sse.Broadcaster) *GameHandler {
	return &GameHandler{
		boardService: boardService,
		broadcaster:  broadcaster,
	}
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games := h.boardService.Games()
	resp := make([]response.Game, len(games))
	for i, g := range games {
		resp[i] = response.GameFromModel(g)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Add handles POST /api/v1/games
func (h *GameHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid JSON body"))
		return
	}

	game, err := h.boardService.AddGame(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastGameAdded(game)
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// Remove handles DELETE /api/v1/games/{id}
func (h *GameHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	if err := h.boardService.RemoveGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastGameRemoved(id)
	}

	response.NoContent(w)
}
