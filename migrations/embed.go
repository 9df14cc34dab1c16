// Package migrations embeds the goose SQL migrations so binaries ship
// self-contained.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
