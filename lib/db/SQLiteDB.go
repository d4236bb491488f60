package db

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/ether/etherpad-todolist/lib/db/migrations"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	sqlDocumentStore
	path string
}

// NewSQLiteDB opens the database at path and applies pending migrations.
// ":memory" selects a shared in-memory database.
func NewSQLiteDB(path string, logger *zap.SugaredLogger) (*SQLiteDB, error) {
	if path == ":memory" {
		path = "file::memory:?cache=shared"
	}

	sqlDb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if strings.Contains(path, ":memory:") {
		sqlDb.SetMaxOpenConns(1)
	}

	if _, err = sqlDb.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDb.Close()
		return nil, err
	}
	if _, err = sqlDb.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		sqlDb.Close()
		return nil, err
	}

	migrationManager := migrations.NewMigrationManager(sqlDb, migrations.DialectSQLite, logger)
	if err := migrationManager.Run(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteDB{
		sqlDocumentStore: sqlDocumentStore{
			sqlDB:   sqlDb,
			builder: sq.StatementBuilder,
			upsert: `ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			updated_at = CURRENT_TIMESTAMP`,
		},
		path: path,
	}, nil
}

var _ DataStore = (*SQLiteDB)(nil)
