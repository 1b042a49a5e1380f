package migrations

import "embed"

// FS contains embedded SQLite migrations for the shopping list store.
//
//go:embed *.sql
var FS embed.FS
