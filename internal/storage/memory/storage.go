package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mossii/statusboard/internal/dependencies/clock"
	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.RWMutex
	clock clock.Clock

	players map[model.PlayerID]*model.Player
	games   []*model.Game // insertion order, which is creation order
	cells   map[cellKey]*model.StatusCell
}

type cellKey struct {
	playerID model.PlayerID
	gameID   model.GameID
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		clock:   clk,
		players: make(map[model.PlayerID]*model.Player),
		cells:   make(map[cellKey]*model.StatusCell),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})
	return players, nil
}

func (s *Storage) InsertPlayer(ctx context.Context, name string) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player := &model.Player{
		ID:   model.PlayerID(uuid.NewString()),
		Name: name,
	}
	s.players[player.ID] = player
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, id)
	for key := range s.cells {
		if key.playerID == id {
			delete(s.cells, key)
		}
	}
	return nil
}

// Game operations

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, len(s.games))
	copy(games, s.games)
	return games, nil
}

func (s *Storage) InsertGame(ctx context.Context, name string) (*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game := &model.Game{
		ID:        model.GameID(uuid.NewString()),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}
	s.games = append(s.games, game)
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, g := range s.games {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.ErrGameNotFound
	}
	s.games = append(s.games[:idx], s.games[idx+1:]...)
	for key := range s.cells {
		if key.gameID == id {
			delete(s.cells, key)
		}
	}
	return nil
}

// Status cell operations

func (s *Storage) ListStatusCells(ctx context.Context) ([]*model.StatusCell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cells := make([]*model.StatusCell, 0, len(s.cells))
	for _, c := range s.cells {
		cells = append(cells, c)
	}
	return cells, nil
}

func (s *Storage) InsertStatusCells(ctx context.Context, cells []model.StatusCell) ([]*model.StatusCell, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := make([]*model.StatusCell, 0, len(cells))
	for _, c := range cells {
		if err := s.checkReferences(c); err != nil {
			return nil, err
		}
		cell := &model.StatusCell{
			ID:       model.StatusCellID(uuid.NewString()),
			PlayerID: c.PlayerID,
			GameID:   c.GameID,
			Status:   c.Status,
		}
		s.cells[cellKey{c.PlayerID, c.GameID}] = cell
		created = append(created, cell)
	}
	return created, nil
}

func (s *Storage) UpsertStatusCell(ctx context.Context, cell model.StatusCell) (*model.StatusCell, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReferences(cell); err != nil {
		return nil, err
	}
	key := cellKey{cell.PlayerID, cell.GameID}
	if existing, ok := s.cells[key]; ok {
		updated := &model.StatusCell{
			ID:       existing.ID,
			PlayerID: cell.PlayerID,
			GameID:   cell.GameID,
			Status:   cell.Status,
		}
		s.cells[key] = updated
		return updated, nil
	}
	created := &model.StatusCell{
		ID:       model.StatusCellID(uuid.NewString()),
		PlayerID: cell.PlayerID,
		GameID:   cell.GameID,
		Status:   cell.Status,
	}
	s.cells[key] = created
	return created, nil
}

// checkReferences mirrors the relational backend's foreign key constraints.
// Caller must hold the lock.
func (s *Storage) checkReferences(cell model.StatusCell) error {
	if _, ok := s.players[cell.PlayerID]; !ok {
		return model.ErrPlayerNotFound
	}
	for _, g := range s.games {
		if g.ID == cell.GameID {
			return nil
		}
	}
	return model.ErrGameNotFound
}
