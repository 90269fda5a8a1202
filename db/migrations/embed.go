// Package migrations embeds the SQL schema so the migration binary runs
// without a checkout of db/migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
