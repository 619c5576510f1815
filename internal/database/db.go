package database

import (
	"context"
	"database/sql"
)

// DB is the narrow query surface repositories depend on.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	SQLDB() *sql.DB
}

type Row interface {
	Scan(dest ...any) error
}
