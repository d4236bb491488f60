// Package migrations versions the document schema of the SQL data stores.
package migrations

import (
	"database/sql"
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx, dialect Dialect) error
}

type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
	DialectMySQL
)

func (d Dialect) builder() sq.StatementBuilderType {
	if d == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder
}

const versionTable = "schema_migrations"

type MigrationManager struct {
	db         *sql.DB
	dialect    Dialect
	migrations []Migration
	logger     *zap.SugaredLogger
}

func NewMigrationManager(db *sql.DB, dialect Dialect, logger *zap.SugaredLogger) *MigrationManager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	all := GetMigrations()
	slices.SortFunc(all, func(a, b Migration) int { return a.Version - b.Version })
	return &MigrationManager{
		db:         db,
		dialect:    dialect,
		migrations: all,
		logger:     logger,
	}
}

// Run applies every migration above the recorded version. Each migration and
// its version record share one transaction.
func (m *MigrationManager) Run() error {
	if err := m.ensureVersionTable(); err != nil {
		return fmt.Errorf("create %s: %w", versionTable, err)
	}

	pending, err := m.Pending()
	if err != nil {
		return err
	}
	for _, migration := range pending {
		m.logger.Infow("running migration", "version", migration.Version, "description", migration.Description)
		if err := m.apply(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}
	}
	return nil
}

// Pending lists the migrations that Run would apply.
func (m *MigrationManager) Pending() ([]Migration, error) {
	current, err := m.CurrentVersion()
	if err != nil {
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	var pending []Migration
	for _, migration := range m.migrations {
		if migration.Version > current {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

func (m *MigrationManager) apply(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	if err := migration.Up(tx, m.dialect); err != nil {
		_ = tx.Rollback()
		return err
	}

	query, args, err := m.dialect.builder().
		Insert(versionTable).
		Columns("version", "description", "applied_at").
		Values(migration.Version, migration.Description, time.Now().UTC()).
		ToSql()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(query, args...); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (m *MigrationManager) ensureVersionTable() error {
	query := `CREATE TABLE IF NOT EXISTS ` + versionTable + ` (
		version INTEGER PRIMARY KEY,
		description TEXT,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if m.dialect == DialectMySQL {
		query = `CREATE TABLE IF NOT EXISTS ` + versionTable + ` (
			version INT PRIMARY KEY,
			description VARCHAR(255),
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`
	}
	_, err := m.db.Exec(query)
	return err
}

// CurrentVersion returns the highest applied migration, 0 for a fresh database.
func (m *MigrationManager) CurrentVersion() (int, error) {
	query, args, err := m.dialect.builder().
		Select("COALESCE(MAX(version), 0)").
		From(versionTable).
		ToSql()
	if err != nil {
		return 0, err
	}
	var version int
	if err := m.db.QueryRow(query, args...).Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}
