package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mossii/statusboard/internal/api/request"
	"github.com/mossii/statusboard/internal/api/response"
	"github.com/mossii/statusboard/internal/services/lock"
	"github.com/mossii/statusboard/internal/sse"
)

// LockHandler handles edit lock endpoints
type LockHandler struct {
	lockService *lock.Service
	broadcaster *sse.Broadcaster
}

// NewLockHandler creates a new lock handler
func NewLockHandler(lockService *lock.Service, broadcaster *sse.Broadcaster) *LockHandler {
	return &LockHandler{
		lockService: lockService,
		broadcaster: broadcaster,
	}
}

// Get handles GET /api/v1/lock
func (h *LockHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.LockStateFromService(h.lockService.State()))
}

// Unlock handles POST /api/v1/lock/unlock
func (h *LockHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req request.UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid JSON body"))
		return
	}

	state, err := h.lockService.Unlock(req.Passphrase)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastLockChanged(state)
	}

	response.JSON(w, http.StatusOK, response.LockStateFromService(state))
}

// Toggle handles POST /api/v1/lock/toggle
func (h *LockHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	state, err := h.lockService.Toggle()
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastLockChanged(state)
	}

	response.JSON(w, http.StatusOK, response.LockStateFromService(state))
}
