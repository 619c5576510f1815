package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-tracker/internal/database"
	"skill-tracker/internal/storage"

	"github.com/jackc/pgx/v5"
)

// PostgresBlobRepository stores blobs in the kv_blobs table.
type PostgresBlobRepository struct {
	db database.DB
}

var _ storage.BlobStore = (*PostgresBlobRepository)(nil)

func NewPostgresBlobRepository(db database.DB) *PostgresBlobRepository {
	return &PostgresBlobRepository{db: db}
}

func (r *PostgresBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	row := r.db.QueryRow(ctx, `SELECT value FROM kv_blobs WHERE key = $1`, key)

	var value []byte
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *PostgresBlobRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO kv_blobs (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	return err
}
