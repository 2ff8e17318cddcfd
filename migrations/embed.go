package migrations

import "embed"

// FS SQL-миграции схемы PostgreSQL
//
//go:embed *.sql
var FS embed.FS
