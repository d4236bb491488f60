package db

import "github.com/ether/etherpad-todolist/lib/models/db"

type DocumentMethods interface {
	SaveDocument(docID string, content string) error
	GetDocument(docID string) (*db.DocumentDB, error)
	DoesDocumentExist(docID string) (bool, error)
	RemoveDocument(docID string) error
	GetDocumentIds() ([]string, error)
}

type DataStore interface {
	DocumentMethods
	Ping() error
	Close() error
}
