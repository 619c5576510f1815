// Package migrations embeds the PostgreSQL schema used by the postgres
// storage backend.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
