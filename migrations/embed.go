// Package migrations embeds the SQL schema so binaries and tests apply the
// same files without depending on the working directory.
package migrations

import "embed"

//go:embed postgres/*.sql
var FS embed.FS

const Dir = "postgres"
