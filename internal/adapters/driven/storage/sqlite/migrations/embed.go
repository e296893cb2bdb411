// Package migrations holds the versioned artifact schema. Files are named
// NNN_name.up.sql / NNN_name.down.sql and applied in name order.
package migrations

import "embed"

// FS is the embedded migration set.
//
//go:embed *.sql
var FS embed.FS
