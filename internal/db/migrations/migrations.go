// Package migrations embeds the schema of the star schema tables.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
