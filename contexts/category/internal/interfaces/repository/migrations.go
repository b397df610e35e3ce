package repository

import (
	"embed"
	"io/fs"
)

//go:embed schema/postgres/migrations/*.sql schema/sqlite/migrations/*.sql
var schema embed.FS

// PostgresMigrations and SQLiteMigrations contain the directory migrations,
// as expected by postgres.Config and sqlite.Config.
var (
	PostgresMigrations = mustSub(schema, "schema/postgres") //nolint:gochecknoglobals // embedded files
	SQLiteMigrations   = mustSub(schema, "schema/sqlite")   //nolint:gochecknoglobals // embedded files
)

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("could not open embedded migrations: " + err.Error())
	}

	return sub
}
