// Package migrations embeds the slot table migration scripts.
package migrations

import "embed"

// FS is the embedded filesystem.
//
//go:embed *.sql
var FS embed.FS
