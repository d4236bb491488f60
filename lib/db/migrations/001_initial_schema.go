package migrations

import (
	"database/sql"
)

// GetMigrations returns the document schema history.
func GetMigrations() []Migration {
	return []Migration{
		migration001InitialSchema(),
		migration002DocumentUpdatedIndex(),
	}
}

func migration001InitialSchema() Migration {
	return Migration{
		Version:     1,
		Description: "create document table",
		Up: func(tx *sql.Tx, dialect Dialect) error {
			var query string

			switch dialect {
			case DialectMySQL:
				query = `CREATE TABLE IF NOT EXISTS document (
					id VARCHAR(255) PRIMARY KEY,
					content LONGTEXT NOT NULL,
					created_at DATETIME(6) NOT NULL,
					updated_at DATETIME(6) NULL DEFAULT NULL
				)`
			case DialectPostgres:
				query = `CREATE TABLE IF NOT EXISTS document (
					id TEXT PRIMARY KEY,
					content TEXT NOT NULL,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NULL
				)`
			default:
				query = `CREATE TABLE IF NOT EXISTS document (
					id TEXT PRIMARY KEY,
					content TEXT NOT NULL,
					created_at TIMESTAMP NOT NULL,
					updated_at TIMESTAMP NULL
				)`
			}

			_, err := tx.Exec(query)
			return err
		},
	}
}
