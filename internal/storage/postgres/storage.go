package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mossii/statusboard/internal/dependencies/clock"
	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/storage"
)

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	db    *sql.DB
	clock clock.Clock
}

// New opens a connection pool, verifies it, and applies the schema
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("database URL is required")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	s := &Storage{db: db, clock: clk}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	players := []*model.Player{}
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	return players, rows.Err()
}

func (s *Storage) InsertPlayer(ctx context.Context, name string) (*model.Player, error) {
	player := &model.Player{
		ID:   model.PlayerID(uuid.NewString()),
		Name: name,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, name) VALUES ($1, $2)`,
		string(player.ID), player.Name,
	)
	if err != nil {
		return nil, err
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// Game operations

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM games ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	games := []*model.Game{}
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		games = append(games, &g)
	}
	return games, rows.Err()
}

func (s *Storage) InsertGame(ctx context.Context, name string) (*model.Game, error) {
	game := &model.Game{
		ID:        model.GameID(uuid.NewString()),
		Name:      name,
		CreatedAt: s.clock.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, name, created_at) VALUES ($1, $2, $3)`,
		string(game.ID), game.Name, game.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

// Status cell operations

func (s *Storage) ListStatusCells(ctx context.Context) ([]*model.StatusCell, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, player_id, game_id, status FROM player_status`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cells := []*model.StatusCell{}
	for rows.Next() {
		var c model.StatusCell
		if err := rows.Scan(&c.ID, &c.PlayerID, &c.GameID, &c.Status); err != nil {
			return nil, err
		}
		if !c.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidStatus, c.Status)
		}
		cells = append(cells, &c)
	}
	return cells, rows.Err()
}

func (s *Storage) InsertStatusCells(ctx context.Context, cells []model.StatusCell) ([]*model.StatusCell, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	created := make([]*model.StatusCell, 0, len(cells))
	for _, c := range cells {
		cell := &model.StatusCell{
			ID:       model.StatusCellID(uuid.NewString()),
			PlayerID: c.PlayerID,
			GameID:   c.GameID,
			Status:   c.Status,
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO player_status (id, player_id, game_id, status) VALUES ($1, $2, $3, $4)`,
			string(cell.ID), string(cell.PlayerID), string(cell.GameID), string(cell.Status),
		)
		if err != nil {
			return nil, mapConstraintError(err)
		}
		created = append(created, cell)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Storage) UpsertStatusCell(ctx context.Context, cell model.StatusCell) (*model.StatusCell, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO player_status (id, player_id, game_id, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (player_id, game_id) DO UPDATE SET status = EXCLUDED.status
		 RETURNING id, player_id, game_id, status`,
		uuid.NewString(), string(cell.PlayerID), string(cell.GameID), string(cell.Status),
	)

	var result model.StatusCell
	if err := row.Scan(&result.ID, &result.PlayerID, &result.GameID, &result.Status); err != nil {
		return nil, mapConstraintError(err)
	}
	return &result, nil
}

// mapConstraintError translates foreign key violations into model errors.
// Constraint names carry the table prefix (player_status_game_id_fkey), so
// the match has to be on the column fragment, not the entity name.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		switch {
		case strings.Contains(pqErr.Constraint, "player_id"):
			return model.ErrPlayerNotFound
		case strings.Contains(pqErr.Constraint, "game_id"):
			return model.ErrGameNotFound
		}
	}
	return err
}
