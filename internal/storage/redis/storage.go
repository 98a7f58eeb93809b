package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mossii/statusboard/internal/dependencies/clock"
	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	clock  clock.Clock
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, clock: clk, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, clk clock.Clock, cfg Config) *Storage {
	return &Storage{client: client, clock: clk, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	players := []*model.Player{}
	if err := s.listInto(ctx, playerIndexKey(), func(data []byte) error {
		var p model.Player
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		players = append(players, &p)
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})
	return players, nil
}

func (s *Storage) InsertPlayer(ctx context.Context, name string) (*model.Player, error) {
	player := &model.Player{
		ID:   model.PlayerID(uuid.NewString()),
		Name: name,
	}
	data, err := json.Marshal(player)
	if err != nil {
		return nil, err
	}

	key := playerKey(player.ID)

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, playerIndexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	exists, err := s.client.Exists(ctx, playerKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPlayerNotFound
	}

	cellKeys, err := s.cellKeysMatching(ctx, fmt.Sprintf("%s:cell:%s:", keyPrefix, id))
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.SRem(ctx, playerIndexKey(), playerKey(id))
	for _, key := range cellKeys {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, cellIndexKey(), key)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Game operations

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	games := []*model.Game{}
	if err := s.listInto(ctx, gameIndexKey(), func(data []byte) error {
		var g model.Game
		if err := json.Unmarshal(data, &g); err != nil {
			return err
		}
		games = append(games, &g)
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
	return games, nil
}

func (s *Storage) InsertGame(ctx context.Context, name string) (*model.Game, error) {
	game := &model.Game{
		ID:        model.GameID(uuid.NewString()),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}
	data, err := json.Marshal(game)
	if err != nil {
		return nil, err
	}

	key := gameKey(game.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, gameIndexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	exists, err := s.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrGameNotFound
	}

	cellKeys, err := s.cellKeysMatching(ctx, ":"+string(id))
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, gameIndexKey(), gameKey(id))
	for _, key := range cellKeys {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, cellIndexKey(), key)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Status cell operations

func (s *Storage) ListStatusCells(ctx context.Context) ([]*model.StatusCell, error) {
	cells := []*model.StatusCell{}
	if err := s.listInto(ctx, cellIndexKey(), func(data []byte) error {
		var c model.StatusCell
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		if !c.Status.Valid() {
			return model.ErrInvalidStatus
		}
		cells = append(cells, &c)
		return nil
	}); err != nil {
		return nil, err
	}
	return cells, nil
}

func (s *Storage) InsertStatusCells(ctx context.Context, cells []model.StatusCell) ([]*model.StatusCell, error) {
	created := make([]*model.StatusCell, 0, len(cells))
	pipe := s.client.Pipeline()
	for _, c := range cells {
		if err := s.checkReferences(ctx, c); err != nil {
			return nil, err
		}
		cell := &model.StatusCell{
			ID:       model.StatusCellID(uuid.NewString()),
			PlayerID: c.PlayerID,
			GameID:   c.GameID,
			Status:   c.Status,
		}
		data, err := json.Marshal(cell)
		if err != nil {
			return nil, err
		}
		key := cellKey(cell.PlayerID, cell.GameID)
		pipe.Set(ctx, key, data, 0)
		pipe.SAdd(ctx, cellIndexKey(), key)
		created = append(created, cell)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Storage) UpsertStatusCell(ctx context.Context, cell model.StatusCell) (*model.StatusCell, error) {
	if err := s.checkReferences(ctx, cell); err != nil {
		return nil, err
	}

	key := cellKey(cell.PlayerID, cell.GameID)

	// Preserve the id of an existing row so the upsert updates in place
	id := model.StatusCellID(uuid.NewString())
	data, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		var existing model.StatusCell
		if err := json.Unmarshal(data, &existing); err == nil && existing.ID != "" {
			id = existing.ID
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	result := &model.StatusCell{
		ID:       id,
		PlayerID: cell.PlayerID,
		GameID:   cell.GameID,
		Status:   cell.Status,
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, payload, 0)
	pipe.SAdd(ctx, cellIndexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// listInto fetches every value referenced by an index set
func (s *Storage) listInto(ctx context.Context, indexKey string, decode func([]byte) error) error {
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return err
	}
	for _, val := range values {
		if val == nil {
			continue // index entry without a value, skip
		}
		if err := decode([]byte(val.(string))); err != nil {
			continue // skip invalid data
		}
	}
	return nil
}

// cellKeysMatching returns indexed cell keys containing the given fragment
func (s *Storage) cellKeysMatching(ctx context.Context, fragment string) ([]string, error) {
	keys, err := s.client.SMembers(ctx, cellIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	matched := make([]string, 0, len(keys))
	for _, key := range keys {
		if strings.Contains(key, fragment) {
			matched = append(matched, key)
		}
	}
	return matched, nil
}

// checkReferences mirrors the relational backend's foreign key constraints
func (s *Storage) checkReferences(ctx context.Context, cell model.StatusCell) error {
	exists, err := s.client.Exists(ctx, playerKey(cell.PlayerID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPlayerNotFound
	}
	exists, err = s.client.Exists(ctx, gameKey(cell.GameID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrGameNotFound
	}
	return nil
}
