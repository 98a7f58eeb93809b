package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mossii/statusboard/internal/dependencies/clock"
	"github.com/mossii/statusboard/internal/services/board"
	"github.com/mossii/statusboard/internal/services/leaderboard"
	"github.com/mossii/statusboard/internal/services/lock"
	"github.com/mossii/statusboard/internal/sse"
	"github.com/mossii/statusboard/internal/storage"
	"github.com/mossii/statusboard/internal/storage/memory"
	"github.com/mossii/statusboard/internal/storage/postgres"
	redisstorage "github.com/mossii/statusboard/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	BoardService       *board.Service
	LeaderboardService *leaderboard.Service
	LockService        *lock.Service
	Hub                *sse.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *postgres.Config
	// LockConfig holds edit lock settings (optional)
	// If zero value, defaults to lock.DefaultConfig()
	LockConfig lock.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := postgres.New(*cfg.PostgresConfig, clk)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	return newWithDependencies(store, clk, cfg.LockConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, lockCfg lock.Config, logger *slog.Logger) *App {
	boardService := board.New(store, logger)
	leaderboardService := leaderboard.New(boardService)
	lockService := lock.New(lockCfg)
	hub := sse.NewHub(logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		BoardService:       boardService,
		LeaderboardService: leaderboardService,
		LockService:        lockService,
		Hub:                hub,
	}
}
