package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"v2t/internal/app/util/files"
)

//go:embed schema.sql
var createTableSQL string

// DefaultFileName is the history database created under the data dir.
const DefaultFileName = "transcription.db"

// Open opens (creating when missing) the database at dbPath and applies the schema.
func Open(dbPath string) (*sql.DB, error) {
	if err := files.EnsureDir(filepath.Dir(dbPath)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the history table when it does not exist.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}
