package db

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ether/etherpad-todolist/lib/db/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type PostgresDB struct {
	sqlDocumentStore
	options PostgresOptions
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresOptions struct {
	Username string
	Password string
	Port     int
	Host     string
	Database string
}

// NewPostgresDB This function creates a new PostgresDB and returns a pointer to it.
func NewPostgresDB(options PostgresOptions, logger *zap.SugaredLogger) (*PostgresDB, error) {
	dbUrl := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", options.Username, options.Password, options.Host, options.Port, options.Database)
	sqlDb, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, err
	}

	migrationManager := migrations.NewMigrationManager(sqlDb, migrations.DialectPostgres, logger)
	if err := migrationManager.Run(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresDB{
		sqlDocumentStore: sqlDocumentStore{
			sqlDB:   sqlDb,
			builder: psql,
			upsert: `ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			updated_at = CURRENT_TIMESTAMP`,
		},
		options: options,
	}, nil
}

var _ DataStore = (*PostgresDB)(nil)
