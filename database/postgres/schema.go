package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS calendar_events (
    id          INTEGER PRIMARY KEY,
    title       TEXT        NOT NULL,
    event_time  TEXT        NOT NULL,
    event_date  TEXT        NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL,
    verified    BOOLEAN     NOT NULL DEFAULT FALSE
)`,
	`CREATE TABLE IF NOT EXISTS audit_entries (
    seq          BIGSERIAL PRIMARY KEY,
    hash         CHAR(64)    NOT NULL,
    action       TEXT        NOT NULL,
    username     TEXT        NOT NULL,
    environment  TEXT        NOT NULL,
    recorded_at  TIMESTAMPTZ NOT NULL,
    entry        JSONB       NOT NULL
)`,
}

// Migrate creates the agent tables when they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}
