package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/storage"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/database"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the schema files for the key/value table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	getQuery    = `SELECT value FROM storefront_kv WHERE key = $1`
	upsertQuery = `INSERT INTO storefront_kv (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	deleteQuery = `DELETE FROM storefront_kv WHERE key = $1`
)

// Store implements storage.Storage on a single key/value table.
type Store struct {
	db database.DBTX
}

// New creates a PostgreSQL-backed store.
func New(db database.DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, end := database.TraceQuery(ctx, "postgresql", "GetState", getQuery)
	defer func() { end(storage.TraceError(err)) }()

	var value []byte
	if err = s.db.QueryRow(ctx, getQuery, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrKeyNotFound(key)
		}
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, end := database.TraceQuery(ctx, "postgresql", "SetState", upsertQuery)
	defer func() { end(err) }()

	if _, err = s.db.Exec(ctx, upsertQuery, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) (err error) {
	ctx, end := database.TraceQuery(ctx, "postgresql", "RemoveState", deleteQuery)
	defer func() { end(err) }()

	if _, err = s.db.Exec(ctx, deleteQuery, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
