package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies every *.up.sql script in lexical order. OpenSQLite calls
// it on startup, so a fresh database file is usable immediately.
func MigrateUp(db *sql.DB) error {
	scripts, err := migrationScripts(".up.sql")
	if err != nil {
		return err
	}
	return runScripts(db, scripts)
}

// MigrateDown unwinds the schema by applying *.down.sql scripts in reverse
// lexical order, mirroring the order their up counterparts ran in.
func MigrateDown(db *sql.DB) error {
	scripts, err := migrationScripts(".down.sql")
	if err != nil {
		return err
	}
	for i, j := 0, len(scripts)-1; i < j; i, j = i+1, j-1 {
		scripts[i], scripts[j] = scripts[j], scripts[i]
	}
	return runScripts(db, scripts)
}

func migrationScripts(suffix string) ([]string, error) {
	scripts, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(scripts)
	return scripts, nil
}

// runScripts executes each script inside its own transaction, so a failing
// migration never leaves a half-applied schema behind.
func runScripts(db *sql.DB, scripts []string) error {
	for _, name := range scripts {
		raw, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(raw)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}
	return nil
}
