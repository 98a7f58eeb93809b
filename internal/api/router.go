package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mossii/statusboard/internal/api/apierr"
	"github.com/mossii/statusboard/internal/api/handler"
	apimiddleware "github.com/mossii/statusboard/internal/api/middleware"
	"github.com/mossii/statusboard/internal/middleware"
	"github.com/mossii/statusboard/internal/services/board"
	"github.com/mossii/statusboard/internal/services/leaderboard"
	"github.com/mossii/statusboard/internal/services/lock"
	"github.com/mossii/statusboard/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	BoardService       *board.Service
	LeaderboardService *leaderboard.Service
	LockService        *lock.Service
	Hub                *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	var broadcaster *sse.Broadcaster
	if cfg.Hub != nil {
		broadcaster = sse.NewBroadcaster(cfg.Hub, cfg.Logger)
	}

	// Create handlers
	boardHandler := handler.NewBoardHandler(cfg.BoardService, cfg.LeaderboardService, cfg.LockService, broadcaster)
	playerHandler := handler.NewPlayerHandler(cfg.BoardService, broadcaster)
	gameHandler := handler.NewGameHandler(cfg.BoardService, broadcaster)
	lockHandler := handler.NewLockHandler(cfg.LockService, broadcaster)

	// Create middleware
	editLockMiddleware := apimiddleware.EditLock(cfg.LockService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, panicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Reads are never gated by the edit lock
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/board", boardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", boardHandler.Leaderboard).Methods(http.MethodGet)

	// Lock endpoints sit outside the edit lock gate so a locked board
	// can still be unlocked
	api.HandleFunc("/lock", lockHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/lock/unlock", lockHandler.Unlock).Methods(http.MethodPost)
	api.HandleFunc("/lock/toggle", lockHandler.Toggle).Methods(http.MethodPost)

	// Mutations require the board to be unlocked
	mutations := api.NewRoute().Subrouter()
	mutations.Use(editLockMiddleware)
	mutations.HandleFunc("/players", playerHandler.Add).Methods(http.MethodPost)
	mutations.HandleFunc("/players/{id}", playerHandler.Remove).Methods(http.MethodDelete)
	mutations.HandleFunc("/games", gameHandler.Add).Methods(http.MethodPost)
	mutations.HandleFunc("/games/{id}", gameHandler.Remove).Methods(http.MethodDelete)
	mutations.HandleFunc("/board/cells/cycle", boardHandler.CycleCell).Methods(http.MethodPost)

	// SSE stream for live board updates
	if cfg.Hub != nil {
		api.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
			sse.ServeSSE(w, r, cfg.Hub)
		}).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
