package postgres

import "context"

// schema is applied on startup. ON DELETE CASCADE keeps the remote store
// responsible for dropping dependent status rows; the in-memory mirror
// filters independently.
const schema = `
CREATE TABLE IF NOT EXISTS players (
	id   UUID PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS games (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS player_status (
	id        UUID PRIMARY KEY,
	player_id UUID NOT NULL REFERENCES players (id) ON DELETE CASCADE,
	game_id   UUID NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	status    TEXT NOT NULL DEFAULT 'white',
	UNIQUE (player_id, game_id)
);
`

// migrate creates the tables if they do not exist yet
func (s *Storage) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}
