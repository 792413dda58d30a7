// Package db carries the Postgres schema for the run journal.
package db

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations is the migrations directory as a flat filesystem.
func Migrations() (fs.FS, error) {
	return fs.Sub(migrations, "migrations")
}
