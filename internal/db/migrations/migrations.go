// Package migrations embeds the SQL schema migrations for the engagement
// journal.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
