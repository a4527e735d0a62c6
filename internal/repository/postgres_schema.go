package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	CONSTRAINT accounts_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS restaurants (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL,
	slug            TEXT NOT NULL,
	name            TEXT NOT NULL,
	description     TEXT NOT NULL,
	address         TEXT NOT NULL,
	phone           TEXT NOT NULL,
	email           TEXT NOT NULL,
	website         TEXT NOT NULL DEFAULT '',
	logo_url        TEXT NOT NULL DEFAULT '',
	cover_image_url TEXT NOT NULL DEFAULT '',
	hours           JSONB NOT NULL DEFAULT '{}'::jsonb,
	menu            JSONB NOT NULL DEFAULT '[]'::jsonb,
	theme           JSONB NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL,
	CONSTRAINT restaurants_slug_key UNIQUE (slug)
);

CREATE INDEX IF NOT EXISTS restaurants_user_id_idx ON restaurants (user_id);
`

const (
	pgUniqueViolation  = "23505"
	accountsEmailKey   = "accounts_email_key"
	restaurantsSlugKey = "restaurants_slug_key"

	queryTimeout = 3 * time.Second
)

// EnsureSchema creates the tables used by the postgres store if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
}
