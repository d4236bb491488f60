package db

import (
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ether/etherpad-todolist/lib/models/db"
)

// sqlDocumentStore holds the document queries shared by the SQL backends.
// Dialects differ in placeholders and in their upsert clause.
type sqlDocumentStore struct {
	sqlDB   *sql.DB
	builder sq.StatementBuilderType
	upsert  string
}

func (d sqlDocumentStore) SaveDocument(docID string, content string) error {
	resultedSQL, args, err := d.builder.
		Insert("document").
		Columns("id", "content", "created_at").
		Values(docID, content, time.Now().UTC()).
		Suffix(d.upsert).
		ToSql()

	if err != nil {
		return err
	}

	_, err = d.sqlDB.Exec(resultedSQL, args...)
	return err
}

func (d sqlDocumentStore) GetDocument(docID string) (*db.DocumentDB, error) {
	resultedSQL, args, err := d.builder.
		Select("id", "content", "created_at", "updated_at").
		From("document").
		Where(sq.Eq{"id": docID}).
		ToSql()

	if err != nil {
		return nil, err
	}

	document, err := ReadToDocumentDB(d.sqlDB.QueryRow(resultedSQL, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return document, nil
}

func (d sqlDocumentStore) DoesDocumentExist(docID string) (bool, error) {
	resultedSQL, args, err := d.builder.
		Select("COUNT(*)").
		From("document").
		Where(sq.Eq{"id": docID}).
		ToSql()

	if err != nil {
		return false, err
	}

	var count int
	if err := d.sqlDB.QueryRow(resultedSQL, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d sqlDocumentStore) RemoveDocument(docID string) error {
	resultedSQL, args, err := d.builder.
		Delete("document").
		Where(sq.Eq{"id": docID}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := d.sqlDB.Exec(resultedSQL, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (d sqlDocumentStore) GetDocumentIds() ([]string, error) {
	resultedSQL, args, err := d.builder.
		Select("id").
		From("document").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := d.sqlDB.Query(resultedSQL, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docIds := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		docIds = append(docIds, id)
	}
	return docIds, rows.Err()
}

func (d sqlDocumentStore) Ping() error {
	return d.sqlDB.Ping()
}

func (d sqlDocumentStore) Close() error {
	return d.sqlDB.Close()
}
