// apps/go-server/migrations/embed.go
//
// Embedded SQLite migrations for the Bingo results database.
// Files apply in lexical order; keep the NNN_ prefix monotonic.

package migrations

import "embed"

// FS contains the embedded *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
