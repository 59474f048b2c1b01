// Package migrations embeds the run ledger schema.
package migrations

import "embed"

// FS holds the SQL migration files.
//
//go:embed *.sql
var FS embed.FS

// Initial is the name of the schema migration applied on open.
const Initial = "001_initial_schema.up.sql"
