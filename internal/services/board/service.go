package board

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/storage"
)

// Service owns the in-memory mirror of the three board collections and
// keeps it consistent with the storage backend: every mutation is a remote
// write followed by a local patch. The mirror is never assumed consistent
// with concurrent writers; the last successful remote write wins.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu      sync.Mutex
	loaded  bool
	players []*model.Player
	games   []*model.Game
	cells   []*model.StatusCell
}

// New creates a new board service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger,
	}
}

// LoadAll replaces the local collections wholesale from storage.
// On any fetch error the mirror ends up empty but is still marked loaded,
// so the rest of the system stays interactive; the error is logged and
// returned for the caller's information.
func (s *Service) LoadAll(ctx context.Context) error {
	players, err := s.storage.ListPlayers(ctx)
	if err == nil {
		var games []*model.Game
		games, err = s.storage.ListGames(ctx)
		if err == nil {
			var cells []*model.StatusCell
			cells, err = s.storage.ListStatusCells(ctx)
			if err == nil {
				s.mu.Lock()
				s.players = players
				s.games = games
				s.cells = cells
				s.loaded = true
				s.mu.Unlock()
				return nil
			}
		}
	}

	s.logger.Error("failed to load board data", slog.Any("error", err))
	s.mu.Lock()
	s.players = nil
	s.games = nil
	s.cells = nil
	s.loaded = true
	s.mu.Unlock()
	return err
}

// Loaded reports whether the initial load has completed (successfully or not)
func (s *Service) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// AddPlayer inserts a player and seeds a white status cell for every
// existing game. A name that trims to empty is rejected before any remote
// call. If the bulk cell insert fails the player still exists both remotely
// and locally; the gap is logged and accepted, not retried.
func (s *Service) AddPlayer(ctx context.Context, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrNameRequired
	}

	player, err := s.storage.InsertPlayer(ctx, name)
	if err != nil {
		s.logger.Error("failed to add player", slog.Any("error", err))
		return nil, err
	}

	s.mu.Lock()
	s.players = append(s.players, player)
	games := make([]*model.Game, len(s.games))
	copy(games, s.games)
	s.mu.Unlock()

	if len(games) == 0 {
		return player, nil
	}

	seeds := make([]model.StatusCell, len(games))
	for i, g := range games {
		seeds[i] = model.StatusCell{
			PlayerID: player.ID,
			GameID:   g.ID,
			Status:   model.StatusWhite,
		}
	}

	created, err := s.storage.InsertStatusCells(ctx, seeds)
	if err != nil {
		s.logger.Error("player added but status cells could not be created",
			slog.String("player_id", string(player.ID)),
			slog.Any("error", err))
		return player, nil
	}

	s.mu.Lock()
	s.cells = append(s.cells, created...)
	s.mu.Unlock()

	return player, nil
}

// AddGame inserts a game and seeds a white status cell for every existing
// player, symmetric to AddPlayer.
func (s *Service) AddGame(ctx context.Context, name string) (*model.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrNameRequired
	}

	game, err := s.storage.InsertGame(ctx, name)
	if err != nil {
		s.logger.Error("failed to add game", slog.Any("error", err))
		return nil, err
	}

	s.mu.Lock()
	s.games = append(s.games, game)
	players := make([]*model.Player, len(s.players))
	copy(players, s.players)
	s.mu.Unlock()

	if len(players) == 0 {
		return game, nil
	}

	seeds := make([]model.StatusCell, len(players))
	for i, p := range players {
		seeds[i] = model.StatusCell{
			PlayerID: p.ID,
			GameID:   game.ID,
			Status:   model.StatusWhite,
		}
	}

	created, err := s.storage.InsertStatusCells(ctx, seeds)
	if err != nil {
		s.logger.Error("game added but status cells could not be created",
			slog.String("game_id", string(game.ID)),
			slog.Any("error", err))
		return game, nil
	}

	s.mu.Lock()
	s.cells = append(s.cells, created...)
	s.mu.Unlock()

	return game, nil
}

// RemovePlayer deletes a player remotely, then drops the player and all of
// its status cells from the mirror. A failed remote delete leaves local
// state untouched.
func (s *Service) RemovePlayer(ctx context.Context, id model.PlayerID) error {
	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		s.logger.Error("failed to remove player",
			slog.String("player_id", string(id)),
			slog.Any("error", err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	players := s.players[:0]
	for _, p := range s.players {
		if p.ID != id {
			players = append(players, p)
		}
	}
	s.players = players

	cells := s.cells[:0]
	for _, c := range s.cells {
		if c.PlayerID != id {
			cells = append(cells, c)
		}
	}
	s.cells = cells
	return nil
}

// RemoveGame deletes a game remotely, then drops the game and all of its
// status cells from the mirror, symmetric to RemovePlayer.
func (s *Service) RemoveGame(ctx context.Context, id model.GameID) error {
	if err := s.storage.DeleteGame(ctx, id); err != nil {
		s.logger.Error("failed to remove game",
			slog.String("game_id", string(id)),
			slog.Any("error", err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	games := s.games[:0]
	for _, g := range s.games {
		if g.ID != id {
			games = append(games, g)
		}
	}
	s.games = games

	cells := s.cells[:0]
	for _, c := range s.cells {
		if c.GameID != id {
			cells = append(cells, c)
		}
	}
	s.cells = cells
	return nil
}

// CycleStatus advances the cell for a (player, game) pair one step in the
// fixed cycle. The current status comes from the mirror (white if absent),
// the new status is upserted remotely, and on success the mirror is patched
// by removing any entry for the pair and inserting the returned row. This
// guarantees exactly one local entry per pair even if duplicates had crept
// in. On failure local state is untouched.
func (s *Service) CycleStatus(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.StatusCell, error) {
	s.mu.Lock()
	next := s.statusOfLocked(playerID, gameID).Next()
	s.mu.Unlock()

	cell, err := s.storage.UpsertStatusCell(ctx, model.StatusCell{
		PlayerID: playerID,
		GameID:   gameID,
		Status:   next,
	})
	if err != nil {
		s.logger.Error("failed to cycle status",
			slog.String("player_id", string(playerID)),
			slog.String("game_id", string(gameID)),
			slog.Any("error", err))
		return nil, err
	}

	s.mu.Lock()
	cells := s.cells[:0]
	for _, c := range s.cells {
		if !(c.PlayerID == playerID && c.GameID == gameID) {
			cells = append(cells, c)
		}
	}
	s.cells = append(cells, cell)
	s.mu.Unlock()

	return cell, nil
}

// StatusOf is the canonical read path for a cell's status.
// Pairs without a cell read as white.
func (s *Service) StatusOf(playerID model.PlayerID, gameID model.GameID) model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusOfLocked(playerID, gameID)
}

// statusOfLocked requires s.mu to be held
func (s *Service) statusOfLocked(playerID model.PlayerID, gameID model.GameID) model.Status {
	for _, c := range s.cells {
		if c.PlayerID == playerID && c.GameID == gameID {
			return c.Status
		}
	}
	return model.StatusWhite
}

// Players returns a copy of the mirrored player list
func (s *Service) Players() []*model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := make([]*model.Player, len(s.players))
	copy(players, s.players)
	return players
}

// Games returns a copy of the mirrored game list
func (s *Service) Games() []*model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]*model.Game, len(s.games))
	copy(games, s.games)
	return games
}

// Cells returns a copy of the mirrored status cell list
func (s *Service) Cells() []*model.StatusCell {
	s.mu.Lock()
	defer s.mu.Unlock()
	cells := make([]*model.StatusCell, len(s.cells))
	copy(cells, s.cells)
	return cells
}

// Snapshot returns all three collections from one consistent view of the mirror
func (s *Service) Snapshot() ([]*model.Player, []*model.Game, []*model.StatusCell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := make([]*model.Player, len(s.players))
	copy(players, s.players)
	games := make([]*model.Game, len(s.games))
	copy(games, s.games)
	cells := make([]*model.StatusCell, len(s.cells))
	copy(cells, s.cells)
	return players, games, cells
}
