package storage

import (
	"context"

	"github.com/mossii/statusboard/internal/model"
)

// Storage defines the interface for data persistence.
//
// Backends own id generation and the one-cell-per-(player, game) invariant:
// UpsertStatusCell must insert-or-update keyed on that pair. Deleting a
// player or game must also drop every status cell referencing it.
type Storage interface {
	// Player collection
	ListPlayers(ctx context.Context) ([]*model.Player, error) // ordered by name
	InsertPlayer(ctx context.Context, name string) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Game collection
	ListGames(ctx context.Context) ([]*model.Game, error) // ordered by creation
	InsertGame(ctx context.Context, name string) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Status cell collection
	ListStatusCells(ctx context.Context) ([]*model.StatusCell, error)
	InsertStatusCells(ctx context.Context, cells []model.StatusCell) ([]*model.StatusCell, error)
	UpsertStatusCell(ctx context.Context, cell model.StatusCell) (*model.StatusCell, error)
}
