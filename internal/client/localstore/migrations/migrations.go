// Package migrations embeds the sqlite schema migrations of the client's
// local store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
