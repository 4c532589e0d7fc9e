// Package migrations embeds the SQL schema of the draft store.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
