package migrations

import (
	"database/sql"
)

func migration002DocumentUpdatedIndex() Migration {
	return Migration{
		Version:     2,
		Description: "Index documents by update time",
		Up: func(tx *sql.Tx, dialect Dialect) error {
			query := `CREATE INDEX IF NOT EXISTS idx_document_updated_at ON document (updated_at)`
			if dialect == DialectMySQL {
				query = `CREATE INDEX idx_document_updated_at ON document (updated_at)`
			}

			_, err := tx.Exec(query)
			return err
		},
	}
}
