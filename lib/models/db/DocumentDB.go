package db

import "time"

// DocumentDB is the stored form of a document: its canonical data markup.
type DocumentDB struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
