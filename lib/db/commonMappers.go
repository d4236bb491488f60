package db

import (
	"database/sql"

	"github.com/ether/etherpad-todolist/lib/models/db"
)

type Reader interface {
	Scan(dest ...any) error
}

func ReadToDocumentDB(reader Reader) (*db.DocumentDB, error) {
	var document db.DocumentDB
	var updatedAt sql.NullTime

	if err := reader.Scan(&document.ID, &document.Content, &document.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		document.UpdatedAt = &updatedAt.Time
	}
	return &document, nil
}
